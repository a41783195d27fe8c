package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type orderCodeRepository struct {
	storage *Storage
}

// New connects to the database. The schema is managed by migrations.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	return &Storage{pool: pool, logger: logger}, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) OrderCodes() repository.OrderCodeRepository {
	return &orderCodeRepository{storage: s}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- UserRepository implementation ---

const userColumns = `id, login, password_hash, role, level, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &role, &u.Level, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	u.Role = model.ParseRole(role)
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	u := model.User{Login: login, PasswordHash: passwordHash, Role: role}
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, string(role)).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) ListAvailable(ctx context.Context) ([]model.CatalogItem, error) {
	const query = `SELECT id, name, price, category, available, icon
                   FROM catalog_items WHERE available ORDER BY name, price`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CatalogItem
	for rows.Next() {
		var (
			it       model.CatalogItem
			category string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &category, &it.Available, &it.Icon); err != nil {
			return nil, err
		}
		it.Category = model.Category(category)
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, items []model.CatalogItem) error {
	const query = `INSERT INTO catalog_items (id, name, price, category, available, icon)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (id) DO UPDATE
                   SET name = EXCLUDED.name,
                       price = EXCLUDED.price,
                       category = EXCLUDED.category,
                       available = EXCLUDED.available,
                       icon = EXCLUDED.icon,
                       updated_at = NOW()`
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, it := range items {
			if _, err := tx.Exec(ctx, query, it.ID, it.Name, it.Price, string(it.Category), it.Available, it.Icon); err != nil {
				return fmt.Errorf("upsert catalog item %s: %w", it.ID, err)
			}
		}
		return nil
	})
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order model.Order) error {
	const insertOrder = `INSERT INTO orders (
                             id, code, client_name, client_phone, client_sex,
                             fulfillment, classification,
                             delivery_address, delivery_address_note, delivery_time, delivery_phone,
                             total, payment_settled, payment_type, cash_amount, mobile_amount, owed,
                             created_by, created_at)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	const insertLine = `INSERT INTO order_lines (order_id, position, item_id, name, quantity, unit_price)
                        VALUES ($1, $2, $3, $4, $5, $6)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertOrder,
			order.ID, order.Code, order.Client.Name, order.Client.Phone, string(order.Client.Sex),
			string(order.Fulfillment), string(order.Classification),
			order.Delivery.Address, order.Delivery.AddressNote, order.Delivery.Time, order.Delivery.Phone,
			order.Total, order.Payment.Settled, string(order.Payment.Type),
			order.Payment.CashAmount, order.Payment.MobileAmount, order.Payment.Owed,
			order.CreatedBy, order.CreatedAt,
		)
		if err != nil {
			return err
		}
		for i, line := range order.Lines {
			if _, err := tx.Exec(ctx, insertLine, order.ID, i, line.ItemID, line.Name, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error) {
	const ordersQuery = `SELECT id, code, client_name, client_phone, client_sex,
                                fulfillment, classification,
                                delivery_address, delivery_address_note, delivery_time, delivery_phone,
                                total, payment_settled, payment_type, cash_amount, mobile_amount, owed,
                                created_by, created_at
                         FROM orders
                         WHERE created_at >= $1 AND created_at < $2
                         ORDER BY created_at DESC`
	const linesQuery = `SELECT order_id, item_id, name, quantity, unit_price
                        FROM order_lines WHERE order_id = ANY($1)
                        ORDER BY order_id, position`

	rows, err := r.storage.pool.Query(ctx, ordersQuery, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.Order
		ids    []string
	)
	for rows.Next() {
		var (
			o                                model.Order
			sex, fulfillment, classification string
			paymentType                      string
		)
		if err := rows.Scan(
			&o.ID, &o.Code, &o.Client.Name, &o.Client.Phone, &sex,
			&fulfillment, &classification,
			&o.Delivery.Address, &o.Delivery.AddressNote, &o.Delivery.Time, &o.Delivery.Phone,
			&o.Total, &o.Payment.Settled, &paymentType, &o.Payment.CashAmount, &o.Payment.MobileAmount, &o.Payment.Owed,
			&o.CreatedBy, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Client.Sex = model.Sex(sex)
		o.Fulfillment = model.Fulfillment(fulfillment)
		o.Classification = model.Classification(classification)
		o.Payment.Type = model.PaymentMethod(paymentType)
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	lineRows, err := r.storage.pool.Query(ctx, linesQuery, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	lines := make(map[string][]model.LineItem, len(ids))
	for lineRows.Next() {
		var (
			orderID string
			line    model.LineItem
		)
		if err := lineRows.Scan(&orderID, &line.ItemID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines[orderID] = append(lines[orderID], line)
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Lines = lines[result[i].ID]
	}
	return result, nil
}

// --- OrderCodeRepository implementation ---

func (r *orderCodeRepository) Next(ctx context.Context, key string) (int64, error) {
	const query = `INSERT INTO order_code_counters (key, value) VALUES ($1, 1)
                   ON CONFLICT (key) DO UPDATE SET value = order_code_counters.value + 1
                   RETURNING value`
	var value int64
	if err := r.storage.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
