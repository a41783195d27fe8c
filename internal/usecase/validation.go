package usecase

import (
	"strings"

	"github.com/polkiloo/restomart/internal/domain/model"
)

// RulesValidator checks the business rules an order must satisfy before it is saved.
type RulesValidator struct{}

// NewRulesValidator constructs RulesValidator.
func NewRulesValidator() *RulesValidator {
	return &RulesValidator{}
}

// Validate returns every broken rule as an operator-facing message.
func (RulesValidator) Validate(order model.Order) []string {
	var msgs []string

	if len(order.Lines) == 0 {
		msgs = append(msgs, "La commande doit contenir au moins un article")
	}

	var sum int64
	for _, line := range order.Lines {
		if line.Quantity < 1 {
			msgs = append(msgs, "Quantité invalide pour "+line.Name)
		}
		if line.UnitPrice < 0 {
			msgs = append(msgs, "Prix invalide pour "+line.Name)
		}
		sum += line.Subtotal()
	}
	if sum != order.Total {
		msgs = append(msgs, "Le total ne correspond pas aux articles")
	}

	p := order.Payment
	if p.CashAmount < 0 || p.MobileAmount < 0 {
		msgs = append(msgs, "Les montants encaissés ne peuvent pas être négatifs")
	}
	if p.Owed < 0 || p.Owed > order.Total {
		msgs = append(msgs, "Le reste à payer est invalide")
	}
	if p.Type == model.PaymentDeferred && p.Settled {
		msgs = append(msgs, "Une commande à paiement différé ne peut pas être réglée")
	}
	if p.Type == model.PaymentCash {
		// the cash handed over plus the owed balance must cover the total
		if p.CashAmount+p.Owed < order.Total {
			msgs = append(msgs, "Le montant reçu et le reste dû ne couvrent pas le total")
		}
		if p.Settled != (p.Owed == 0) {
			msgs = append(msgs, "Le statut de règlement ne correspond pas au reste dû")
		}
	}

	if order.Fulfillment == model.FulfillmentToDeliver && strings.TrimSpace(order.Delivery.Address) == "" {
		msgs = append(msgs, "Adresse de livraison obligatoire")
	}

	return msgs
}
