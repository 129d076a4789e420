package domain

// Product is a catalog entry referenced by order items. Price is the unit
// list price; individual order lines may override it.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
}
