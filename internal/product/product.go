package product

// Product maps to the `products` table. Price is the authoritative unit price
// the checkout transaction copies into order lines; stock is the inventory
// source of truth.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
	Status      string  `json:"status"`
}

// Publication states shown in the back-office.
const (
	StatusPublished = "Publicado"
	StatusDraft     = "Borrador"
)
