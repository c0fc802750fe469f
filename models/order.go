package models

import "time"

// PaymentCashOnDelivery is the only payment method the storefront offers.
const PaymentCashOnDelivery = "cash_on_delivery"

// OrderForm carries the checkout fields as the customer submits them. The
// validate tags drive the per-field checkout validation.
type OrderForm struct {
	Name    string `json:"name" form:"name" validate:"required,min=2"`
	Phone   string `json:"phone" form:"phone" validate:"required,bd_phone"`
	Email   string `json:"email" form:"email" validate:"omitempty,email"`
	Address string `json:"address" form:"address" validate:"required,min=10"`
	Notes   string `json:"notes" form:"notes"`
}

// OrderPayload is the document posted to the sheet API. Action routes the
// request inside the sheet script.
type OrderPayload struct {
	Action        string      `json:"action"`
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email,omitempty"`
	Address       string      `json:"address"`
	DeliveryArea  string      `json:"delivery_area"`
	DeliveryFee   int         `json:"delivery_fee"`
	PaymentMethod string      `json:"payment_method"`
	Notes         string      `json:"notes,omitempty"`
	Subtotal      int         `json:"subtotal"`
	TotalAmount   int         `json:"total_amount"`
	Items         []OrderItem `json:"items"`
}

// OrderConfirmation is persisted after a successful submission so the
// thank-you view can show the order again.
type OrderConfirmation struct {
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	DeliveryArea string      `json:"delivery_area"`
	DeliveryFee  int         `json:"delivery_fee"`
	Subtotal     int         `json:"subtotal"`
	TotalAmount  int         `json:"total_amount"`
	Items        []OrderItem `json:"items"`
	Payment      string      `json:"payment_method"`
	PlacedAt     time.Time   `json:"placed_at"`
}
