package model

// Category groups catalog items on the ordering screen.
type Category string

const (
	CategoryMenu    Category = "menu"
	CategoryBoisson Category = "boisson"
)

// CatalogItem is a sellable menu or drink entry.
type CatalogItem struct {
	ID        string
	Name      string
	Price     int64
	Category  Category
	Available bool
	Icon      string
}
