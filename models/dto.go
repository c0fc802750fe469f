package models

type AddCartItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"omitempty,min=1,max=10"`
	Color     string `json:"color" form:"color"`
	Size      string `json:"size" form:"size"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" form:"quantity" binding:"required"`
}

type ThemeRequest struct {
	Theme string `json:"theme" form:"theme" binding:"required,oneof=light dark"`
}
