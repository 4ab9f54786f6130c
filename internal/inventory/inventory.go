package inventory

// Item is the back-office stock view of a product.
type Item struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"currentQuantity"`
	StockStatus     string `json:"stockStatus"`
}

// Stock labels shown in the back-office.
const (
	StatusInStock    = "En Stock"
	StatusLowStock   = "Poco Stock"
	StatusOutOfStock = "Agotado"
)

// lowStockThreshold marks the quantity below which an item is flagged.
const lowStockThreshold = 10

// StatusFor derives the stock label from a quantity.
func StatusFor(quantity int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
