package dto

// QuantityRequest carries the digits typed on the quantity pad.
type QuantityRequest struct {
	Quantity string `json:"quantity"`
}

// SubmitRequest confirms the order. Override acknowledges missing client contact.
type SubmitRequest struct {
	Override bool `json:"override"`
}

// SettlementRequest is a partial settlement update; absent fields are unchanged.
type SettlementRequest struct {
	ClientName     *string `json:"client_name,omitempty"`
	ClientPhone    *string `json:"client_phone,omitempty"`
	ClientSex      *string `json:"client_sex,omitempty"`
	Fulfillment    *string `json:"fulfillment,omitempty"`
	Classification *string `json:"classification,omitempty"`

	DeliveryAddress     *string `json:"delivery_address,omitempty"`
	DeliveryAddressNote *string `json:"delivery_address_note,omitempty"`
	DeliveryTime        *string `json:"delivery_time,omitempty"`
	DeliveryPhone       *string `json:"delivery_phone,omitempty"`

	PaymentMethod *string `json:"payment_method,omitempty"`

	CashReceived   *int64 `json:"cash_received,omitempty"`
	ChangeGiven    *int64 `json:"change_given,omitempty"`
	MobileReceived *int64 `json:"mobile_received,omitempty"`
	SplitMobile    *int64 `json:"split_mobile,omitempty"`
	SplitCash      *int64 `json:"split_cash,omitempty"`
}

// Draft mirrors the settlement form.
type Draft struct {
	Client         Client   `json:"client"`
	Fulfillment    string   `json:"fulfillment"`
	Classification string   `json:"classification"`
	Delivery       Delivery `json:"delivery"`
	PaymentMethod  string   `json:"payment_method"`

	CashReceived   int64 `json:"cash_received"`
	ChangeGiven    int64 `json:"change_given"`
	CashOwed       int64 `json:"cash_owed"`
	MobileReceived int64 `json:"mobile_received"`
	SplitMobile    int64 `json:"split_mobile"`
	SplitCash      int64 `json:"split_cash"`
}

// CheckoutResponse is the derived state of the operator's session.
type CheckoutResponse struct {
	Lines           []LineItem `json:"lines"`
	Total           int64      `json:"total"`
	Draft           Draft      `json:"draft"`
	Payment         Payment    `json:"payment"`
	Warnings        []string   `json:"warnings"`
	ContactRequired bool       `json:"contact_required"`
	CanSubmit       bool       `json:"can_submit"`
}
