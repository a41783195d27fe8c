package checkout

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
)

const (
	msgDeferredContact = "Nom et numéro obligatoires pour un paiement différé"
	msgOwedContact     = "Nom et numéro obligatoires lorsqu'un reste à payer est dû"
)

// Draft is the in-progress settlement of a selection.
type Draft struct {
	Client         model.Client
	Fulfillment    model.Fulfillment
	Classification model.Classification
	Delivery       model.Delivery
	Method         model.PaymentMethod

	CashReceived   int64
	ChangeGiven    int64
	MobileReceived int64
	SplitMobile    int64
	SplitCash      int64
}

// NewDraft returns a draft with the screen defaults: on-site, for client, cash.
func NewDraft() Draft {
	return Draft{
		Fulfillment:    model.FulfillmentOnSite,
		Classification: model.ClassificationForClient,
		Method:         model.PaymentCash,
	}
}

// SettlementUpdate is a partial change of the draft. Nil fields are left untouched.
type SettlementUpdate struct {
	ClientName     *string
	ClientPhone    *string
	ClientSex      *model.Sex
	Fulfillment    *model.Fulfillment
	Classification *model.Classification

	DeliveryAddress     *string
	DeliveryAddressNote *string
	DeliveryTime        *string
	DeliveryPhone       *string

	Method *model.PaymentMethod

	CashReceived   *int64
	ChangeGiven    *int64
	MobileReceived *int64
	SplitMobile    *int64
	SplitCash      *int64
}

// SwitchMethod changes the payment method, zeroing the amounts of the previous one.
func (d *Draft) SwitchMethod(m model.PaymentMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: mode de paiement inconnu %q", domainErrors.ErrInvalidSettlement, m)
	}
	if m == d.Method {
		return nil
	}
	d.resetAmounts(d.Method)
	d.Method = m
	return nil
}

func (d *Draft) resetAmounts(m model.PaymentMethod) {
	switch m {
	case model.PaymentCash:
		d.CashReceived, d.ChangeGiven = 0, 0
	case model.PaymentMobileMoney:
		d.MobileReceived = 0
	case model.PaymentMobileMoneyCash:
		d.SplitMobile, d.SplitCash = 0, 0
	}
}

// SetCashReceived records the cash handed over and derives the change due from the total.
// The owed balance is never stored; see Owed.
func (d *Draft) SetCashReceived(received, total int64) error {
	if err := d.requireMethod(model.PaymentCash); err != nil {
		return err
	}
	if received < 0 {
		return domainErrors.ErrInvalidAmount
	}
	d.CashReceived = received
	d.ChangeGiven = max(received-total, 0)
	return nil
}

// Apply merges a partial update. The draft is left unchanged when an error is returned.
func (d *Draft) Apply(u SettlementUpdate, total int64) error {
	next := *d

	if u.ClientName != nil {
		next.Client.Name = strings.TrimSpace(*u.ClientName)
	}
	if u.ClientPhone != nil {
		next.Client.Phone = strings.TrimSpace(*u.ClientPhone)
	}
	if u.ClientSex != nil {
		switch *u.ClientSex {
		case model.SexUnknown, model.SexMale, model.SexFemale:
			next.Client.Sex = *u.ClientSex
		default:
			return fmt.Errorf("%w: sexe inconnu %q", domainErrors.ErrInvalidSettlement, *u.ClientSex)
		}
	}
	if u.Fulfillment != nil {
		switch *u.Fulfillment {
		case model.FulfillmentOnSite, model.FulfillmentToDeliver:
			next.Fulfillment = *u.Fulfillment
		default:
			return fmt.Errorf("%w: type de service inconnu %q", domainErrors.ErrInvalidSettlement, *u.Fulfillment)
		}
	}
	if u.Classification != nil {
		if !u.Classification.Valid() {
			return fmt.Errorf("%w: type de commande inconnu %q", domainErrors.ErrInvalidSettlement, *u.Classification)
		}
		next.Classification = *u.Classification
	}
	if u.DeliveryAddress != nil {
		next.Delivery.Address = strings.TrimSpace(*u.DeliveryAddress)
	}
	if u.DeliveryAddressNote != nil {
		next.Delivery.AddressNote = strings.TrimSpace(*u.DeliveryAddressNote)
	}
	if u.DeliveryTime != nil {
		next.Delivery.Time = strings.TrimSpace(*u.DeliveryTime)
	}
	if u.DeliveryPhone != nil {
		next.Delivery.Phone = strings.TrimSpace(*u.DeliveryPhone)
	}

	if u.Method != nil {
		if err := next.SwitchMethod(*u.Method); err != nil {
			return err
		}
	}

	if u.CashReceived != nil {
		if err := next.SetCashReceived(*u.CashReceived, total); err != nil {
			return err
		}
	}
	amounts := []struct {
		value  *int64
		method model.PaymentMethod
		dst    *int64
	}{
		{u.ChangeGiven, model.PaymentCash, &next.ChangeGiven},
		{u.MobileReceived, model.PaymentMobileMoney, &next.MobileReceived},
		{u.SplitMobile, model.PaymentMobileMoneyCash, &next.SplitMobile},
		{u.SplitCash, model.PaymentMobileMoneyCash, &next.SplitCash},
	}
	for _, a := range amounts {
		if a.value == nil {
			continue
		}
		if err := next.requireMethod(a.method); err != nil {
			return err
		}
		if *a.value < 0 {
			return domainErrors.ErrInvalidAmount
		}
		*a.dst = *a.value
	}

	*d = next
	return nil
}

func (d *Draft) requireMethod(m model.PaymentMethod) error {
	if d.Method != m {
		return fmt.Errorf("%w: champ réservé au paiement %s", domainErrors.ErrInvalidSettlement, m)
	}
	return nil
}

// Owed returns the balance left unpaid for the given total. For cash it is whatever the
// received amount, net of change, leaves uncovered, so it follows later selection changes.
func (d Draft) Owed(total int64) int64 {
	switch d.Method {
	case model.PaymentCash:
		return max(total-(d.CashReceived-d.ChangeGiven), 0)
	case model.PaymentDeferred:
		return total
	}
	return 0
}

// ContactRequired reports whether client name and phone are mandatory.
func (d Draft) ContactRequired(total int64) bool {
	return d.Method == model.PaymentDeferred || d.Owed(total) > 0
}

// PaymentRecord derives the settlement record for the given total.
func (d Draft) PaymentRecord(total int64) model.PaymentRecord {
	switch d.Method {
	case model.PaymentMobileMoney:
		return model.PaymentRecord{Settled: true, Type: model.PaymentMobileMoney, MobileAmount: d.MobileReceived}
	case model.PaymentMobileMoneyCash:
		return model.PaymentRecord{Settled: true, Type: model.PaymentMobileMoneyCash, MobileAmount: d.SplitMobile, CashAmount: d.SplitCash}
	case model.PaymentDeferred:
		return model.PaymentRecord{Settled: false, Type: model.PaymentDeferred, Owed: total}
	default:
		owed := d.Owed(total)
		return model.PaymentRecord{Settled: owed == 0, Type: model.PaymentCash, CashAmount: d.CashReceived, Owed: owed}
	}
}

// Warnings lists reconciliation mismatches. They never block submission.
func (d Draft) Warnings(total int64) []string {
	var out []string
	switch d.Method {
	case model.PaymentCash:
		if applied := d.CashReceived - d.ChangeGiven + d.Owed(total); applied != total {
			out = append(out, fmt.Sprintf("Reçu moins monnaie rendue plus reste dû (%d FCFA) différent du total attendu (%d FCFA)", applied, total))
		}
	case model.PaymentMobileMoney:
		if d.MobileReceived != total {
			out = append(out, fmt.Sprintf("Montant mobile money (%d FCFA) différent du total attendu (%d FCFA)", d.MobileReceived, total))
		}
	case model.PaymentMobileMoneyCash:
		if sum := d.SplitMobile + d.SplitCash; sum != total {
			out = append(out, fmt.Sprintf("Mobile money + espèces (%d FCFA) différent du total attendu (%d FCFA)", sum, total))
		}
	}
	return out
}

// Check applies the submission rules. override skips the contact requirement.
func (d Draft) Check(total int64, override bool) error {
	if total <= 0 {
		return domainErrors.ErrEmptyOrder
	}
	if override || !d.ContactRequired(total) {
		return nil
	}
	if d.Client.Name != "" && d.Client.Phone != "" {
		return nil
	}
	msg := msgOwedContact
	if d.Method == model.PaymentDeferred {
		msg = msgDeferredContact
	}
	return &domainErrors.ContactRequiredError{Message: msg}
}

// DeliveryForOrder returns the delivery fields to persist; they are blank unless delivering.
func (d Draft) DeliveryForOrder() model.Delivery {
	if d.Fulfillment != model.FulfillmentToDeliver {
		return model.Delivery{}
	}
	return d.Delivery
}
