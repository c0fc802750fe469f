package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ProductView is a product plus its formatted price for display.
type ProductView struct {
	Product
	PriceDisplay string `json:"price_display"`
}

// CartLineView is a cart line with its position and formatted amounts.
type CartLineView struct {
	CartLine
	Index            int    `json:"index"`
	PriceDisplay     string `json:"price_display"`
	LineTotalDisplay string `json:"line_total_display"`
}

type CartView struct {
	Lines           []CartLineView `json:"lines"`
	TotalQuantity   int            `json:"total_quantity"`
	Subtotal        int            `json:"subtotal"`
	SubtotalDisplay string         `json:"subtotal_display"`
}

// FieldResult is the validation outcome for a single form field.
type FieldResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidationResult maps form field names to their validation outcome.
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Fields map[string]FieldResult `json:"fields"`
}
