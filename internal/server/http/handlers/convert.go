package handlers

import (
	"github.com/polkiloo/restomart/internal/checkout"
	"github.com/polkiloo/restomart/internal/domain/model"
	"github.com/polkiloo/restomart/internal/feed"
	"github.com/polkiloo/restomart/internal/server/http/dto"
	"github.com/polkiloo/restomart/internal/usecase"
)

func toCatalogItems(items []model.CatalogItem) []dto.CatalogItem {
	out := make([]dto.CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CatalogItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Category: string(it.Category),
			Icon:     it.Icon,
		})
	}
	return out
}

func toLineItems(lines []model.LineItem) []dto.LineItem {
	out := make([]dto.LineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineItem{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return out
}

func toClient(c model.Client) dto.Client {
	return dto.Client{Name: c.Name, Phone: c.Phone, Sex: string(c.Sex)}
}

func toDelivery(d model.Delivery) dto.Delivery {
	return dto.Delivery{Address: d.Address, AddressNote: d.AddressNote, Time: d.Time, Phone: d.Phone}
}

func toPayment(p model.PaymentRecord) dto.Payment {
	return dto.Payment{
		Settled:      p.Settled,
		Type:         string(p.Type),
		CashAmount:   p.CashAmount,
		MobileAmount: p.MobileAmount,
		Owed:         p.Owed,
	}
}

func toDraft(d checkout.Draft, total int64) dto.Draft {
	out := dto.Draft{
		Client:         toClient(d.Client),
		Fulfillment:    string(d.Fulfillment),
		Classification: string(d.Classification),
		Delivery:       toDelivery(d.Delivery),
		PaymentMethod:  string(d.Method),
		CashReceived:   d.CashReceived,
		ChangeGiven:    d.ChangeGiven,
		MobileReceived: d.MobileReceived,
		SplitMobile:    d.SplitMobile,
		SplitCash:      d.SplitCash,
	}
	if d.Method == model.PaymentCash {
		out.CashOwed = d.Owed(total)
	}
	return out
}

func toCheckoutResponse(v *usecase.CheckoutView) dto.CheckoutResponse {
	warnings := v.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return dto.CheckoutResponse{
		Lines:           toLineItems(v.Lines),
		Total:           v.Total,
		Draft:           toDraft(v.Draft, v.Total),
		Payment:         toPayment(v.Payment),
		Warnings:        warnings,
		ContactRequired: v.ContactRequired,
		CanSubmit:       v.CanSubmit,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:             o.ID,
		Code:           o.Code,
		Client:         toClient(o.Client),
		Fulfillment:    string(o.Fulfillment),
		Classification: string(o.Classification),
		Delivery:       toDelivery(o.Delivery),
		Total:          o.Total,
		Lines:          toLineItems(o.Lines),
		Payment:        toPayment(o.Payment),
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
	}
}

func toFeedResponse(s feed.Snapshot) dto.FeedResponse {
	resp := dto.FeedResponse{
		Orders:  make([]dto.OrderResponse, 0, len(s.Orders)),
		Loading: s.Loading,
	}
	for _, o := range s.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	if s.Err != nil {
		resp.Error = "impossible de charger les commandes du jour"
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func toSummaryResponse(s model.DaySummary) dto.SummaryResponse {
	by := make(map[string]int, len(s.ByClassification))
	for k, v := range s.ByClassification {
		by[string(k)] = v
	}
	return dto.SummaryResponse{
		Orders:           s.Orders,
		Revenue:          s.Revenue,
		Cash:             s.Cash,
		MobileMoney:      s.MobileMoney,
		Owed:             s.Owed,
		Deliveries:       s.Deliveries,
		ByClassification: by,
	}
}

func toSettlementUpdate(r dto.SettlementRequest) checkout.SettlementUpdate {
	u := checkout.SettlementUpdate{
		ClientName:          r.ClientName,
		ClientPhone:         r.ClientPhone,
		DeliveryAddress:     r.DeliveryAddress,
		DeliveryAddressNote: r.DeliveryAddressNote,
		DeliveryTime:        r.DeliveryTime,
		DeliveryPhone:       r.DeliveryPhone,
		CashReceived:        r.CashReceived,
		ChangeGiven:         r.ChangeGiven,
		MobileReceived:      r.MobileReceived,
		SplitMobile:         r.SplitMobile,
		SplitCash:           r.SplitCash,
	}
	if r.ClientSex != nil {
		sex := model.Sex(*r.ClientSex)
		u.ClientSex = &sex
	}
	if r.Fulfillment != nil {
		f := model.Fulfillment(*r.Fulfillment)
		u.Fulfillment = &f
	}
	if r.Classification != nil {
		c := model.Classification(*r.Classification)
		u.Classification = &c
	}
	if r.PaymentMethod != nil {
		m := model.PaymentMethod(*r.PaymentMethod)
		u.Method = &m
	}
	return u
}
