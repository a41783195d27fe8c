package dto

// CatalogItem is an orderable menu entry or drink.
type CatalogItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

// CatalogResponse groups available items the way the ordering screen shows them.
type CatalogResponse struct {
	Menu    []CatalogItem `json:"menu"`
	Boisson []CatalogItem `json:"boisson"`
}
