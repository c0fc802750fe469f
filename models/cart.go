package models

import "time"

// Per-line quantity bounds.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// CartLine is one cart entry. Name, price and image are snapshots taken when
// the product was added; reconciliation against a fresh catalog updates them.
type CartLine struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Image     string    `json:"image,omitempty"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color,omitempty"`
	Size      string    `json:"size,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// SameVariant reports whether two lines refer to the same product variant.
// Product id, color and size together form the merge key.
func (l CartLine) SameVariant(other CartLine) bool {
	return l.ProductID == other.ProductID && l.Color == other.Color && l.Size == other.Size
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() int {
	return l.Price * l.Quantity
}

// OrderItem is the projection of a cart line sent with an order.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int    `json:"price"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Size        string `json:"size,omitempty"`
}

// ToOrderItem converts the line for order submission.
func (l CartLine) ToOrderItem() OrderItem {
	return OrderItem{
		ProductID:   l.ProductID,
		ProductName: l.Name,
		Price:       l.Price,
		Quantity:    l.Quantity,
		Color:       l.Color,
		Size:        l.Size,
	}
}
