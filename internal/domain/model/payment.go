package model

// PaymentMethod selects how an order is settled.
type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "cash"
	PaymentMobileMoney     PaymentMethod = "mobile-money"
	PaymentMobileMoneyCash PaymentMethod = "mobile-money+cash"
	PaymentDeferred        PaymentMethod = "deferred"
)

// Valid reports whether the method is one of the known settlement methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMobileMoney, PaymentMobileMoneyCash, PaymentDeferred:
		return true
	}
	return false
}

// PaymentRecord is the settlement attached to a persisted order.
type PaymentRecord struct {
	Settled      bool
	Type         PaymentMethod
	CashAmount   int64
	MobileAmount int64
	Owed         int64
}
