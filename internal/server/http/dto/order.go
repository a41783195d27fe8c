package dto

import "time"

type Client struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Sex   string `json:"sex"`
}

type Delivery struct {
	Address     string `json:"address"`
	AddressNote string `json:"address_note"`
	Time        string `json:"time"`
	Phone       string `json:"phone"`
}

type LineItem struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

type Payment struct {
	Settled      bool   `json:"settled"`
	Type         string `json:"type"`
	CashAmount   int64  `json:"cash_amount"`
	MobileAmount int64  `json:"mobile_amount"`
	Owed         int64  `json:"owed"`
}

// OrderResponse describes a saved order.
type OrderResponse struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	Client         Client     `json:"client"`
	Fulfillment    string     `json:"fulfillment"`
	Classification string     `json:"classification"`
	Delivery       Delivery   `json:"delivery"`
	Total          int64      `json:"total"`
	Lines          []LineItem `json:"lines"`
	Payment        Payment    `json:"payment"`
	CreatedBy      int64      `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// FeedResponse is one state of the day's orders dataset.
type FeedResponse struct {
	Orders    []OrderResponse `json:"orders"`
	Loading   bool            `json:"loading"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// SummaryResponse aggregates the day's takings.
type SummaryResponse struct {
	Orders           int            `json:"orders"`
	Revenue          int64          `json:"revenue"`
	Cash             int64          `json:"cash"`
	MobileMoney      int64          `json:"mobile_money"`
	Owed             int64          `json:"owed"`
	Deliveries       int            `json:"deliveries"`
	ByClassification map[string]int `json:"by_classification"`
}

// ErrorResponse carries a single operator-facing message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse lists every rule an order failed.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}
