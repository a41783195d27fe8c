package model

import "time"

// Fulfillment tells whether an order is consumed on site or delivered.
type Fulfillment string

const (
	FulfillmentOnSite    Fulfillment = "on-site"
	FulfillmentToDeliver Fulfillment = "to-deliver"
)

// Classification tells who the order is for and who pays.
type Classification string

const (
	ClassificationForClient    Classification = "for-client"
	ClassificationClientOffers Classification = "client-offers"
	ClassificationCompanyGift  Classification = "company-gift"
)

// Valid reports whether the classification is known.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationForClient, ClassificationClientOffers, ClassificationCompanyGift:
		return true
	}
	return false
}

// Sex of the client, used as part of the order code key. Empty means unknown.
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
)

// Client holds denormalized customer contact info.
type Client struct {
	Name  string
	Phone string
	Sex   Sex
}

// Delivery holds address fields populated only for delivered orders.
type Delivery struct {
	Address     string
	AddressNote string
	Time        string
	Phone       string
}

// LineItem is a priced (item, quantity) pair.
type LineItem struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice int64
}

// Subtotal returns quantity multiplied by unit price.
func (l LineItem) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// Order is the committed record of a quick order.
type Order struct {
	ID             string
	Code           string
	Client         Client
	Fulfillment    Fulfillment
	Classification Classification
	Delivery       Delivery
	Total          int64
	Lines          []LineItem
	Payment        PaymentRecord
	CreatedBy      int64
	CreatedAt      time.Time
}

// DaySummary aggregates the orders of one day.
type DaySummary struct {
	Orders           int
	Revenue          int64
	Cash             int64
	MobileMoney      int64
	Owed             int64
	Deliveries       int
	ByClassification map[Classification]int
}

// OrderCodeKey identifies the counter an order code is drawn from.
type OrderCodeKey struct {
	Year           int
	Sex            Sex
	Classification Classification
}
