package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/restomart/internal/checkout"
	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

// OrderCodeGenerator allocates the human-readable code of a new order.
type OrderCodeGenerator interface {
	Generate(ctx context.Context, key model.OrderCodeKey) (string, error)
}

// OrderValidator returns operator-facing messages for every rule an order breaks.
type OrderValidator interface {
	Validate(order model.Order) []string
}

// OrderPublisher announces committed orders to live viewers.
type OrderPublisher interface {
	Publish(ctx context.Context, order model.Order) error
}

const defaultSaveTimeout = 10 * time.Second

// OrderUseCase turns an operator's session into a committed order.
type OrderUseCase struct {
	catalog     *CatalogUseCase
	sessions    *checkout.Registry
	orders      repository.OrderRepository
	codes       OrderCodeGenerator
	validator   OrderValidator
	publisher   OrderPublisher
	logger      *slog.Logger
	loc         *time.Location
	saveTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	catalog *CatalogUseCase,
	sessions *checkout.Registry,
	orders repository.OrderRepository,
	codes OrderCodeGenerator,
	validator OrderValidator,
	publisher OrderPublisher,
	logger *slog.Logger,
	loc *time.Location,
	saveTimeout time.Duration,
) *OrderUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if saveTimeout <= 0 {
		saveTimeout = defaultSaveTimeout
	}
	return &OrderUseCase{
		catalog:     catalog,
		sessions:    sessions,
		orders:      orders,
		codes:       codes,
		validator:   validator,
		publisher:   publisher,
		logger:      logger,
		loc:         loc,
		saveTimeout: saveTimeout,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Submit commits the operator's current selection and settlement.
// On any failure the session is left as it was; on success it is cleared.
// Every check runs before a code is allocated so rejected orders leave no gap in the sequence.
func (u *OrderUseCase) Submit(ctx context.Context, operator model.Principal, override bool) (*model.Order, error) {
	session := u.sessions.Get(operator.UserID)
	selection, draft, err := session.BeginSubmit()
	if err != nil {
		return nil, err
	}
	saved := false
	defer func() { session.EndSubmit(saved) }()

	items, err := u.catalog.Available(ctx)
	if err != nil {
		return nil, err
	}

	lines, total := checkout.Derive(selection, items)
	if err := draft.Check(total, override); err != nil {
		return nil, err
	}

	createdAt := u.now().In(u.loc)
	order := model.Order{
		ID:             u.newID(),
		Client:         draft.Client,
		Fulfillment:    draft.Fulfillment,
		Classification: draft.Classification,
		Delivery:       draft.DeliveryForOrder(),
		Total:          total,
		Lines:          lines,
		Payment:        draft.PaymentRecord(total),
		CreatedBy:      operator.UserID,
		CreatedAt:      createdAt,
	}

	if msgs := u.validator.Validate(order); len(msgs) > 0 {
		return nil, &domainErrors.ValidationError{Messages: msgs}
	}

	code, err := u.codes.Generate(ctx, model.OrderCodeKey{
		Year:           createdAt.Year(),
		Sex:            draft.Client.Sex,
		Classification: draft.Classification,
	})
	if err == nil && strings.TrimSpace(code) == "" {
		err = errors.New("empty order code")
	}
	if err != nil {
		u.logger.Error("order code generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrCodeGeneration, err)
	}
	order.Code = code

	// A save that has started completes even if the caller goes away.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.saveTimeout)
	defer cancel()

	if err := u.orders.Create(saveCtx, order); err != nil {
		u.logger.Error("order save failed", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrSaveFailed, err)
	}
	saved = true

	if err := u.publisher.Publish(saveCtx, order); err != nil {
		u.logger.Warn("order publish failed", slog.String("code", code), slog.String("error", err.Error()))
	}

	u.logger.Info("order saved",
		slog.String("id", order.ID),
		slog.String("code", order.Code),
		slog.Int64("total", order.Total),
		slog.Int64("operator", operator.UserID),
	)
	return &order, nil
}
