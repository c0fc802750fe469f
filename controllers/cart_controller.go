package controllers

import (
	"errors"
	"strconv"

	"poshak-shop/models"
	"poshak-shop/services"
	"poshak-shop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	cart    *services.CartService
	catalog *services.CatalogService
	logger  *zap.Logger
}

func NewCartController(cart *services.CartService, catalog *services.CatalogService, logger *zap.Logger) *CartController {
	return &CartController{cart: cart, catalog: catalog, logger: logger}
}

func (ctrl *CartController) cartView() models.CartView {
	lines := ctrl.cart.Lines()
	views := make([]models.CartLineView, 0, len(lines))
	subtotal := 0
	for i, line := range lines {
		views = append(views, models.CartLineView{
			CartLine:         line,
			Index:            i,
			PriceDisplay:     utils.FormatTaka(line.Price),
			LineTotalDisplay: utils.FormatTaka(line.LineTotal()),
		})
		subtotal += line.LineTotal()
	}

	quantity := 0
	for _, line := range lines {
		quantity += line.Quantity
	}

	return models.CartView{
		Lines:           views,
		TotalQuantity:   quantity,
		Subtotal:        subtotal,
		SubtotalDisplay: utils.FormatTaka(subtotal),
	}
}

func cartErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrCartIndex):
		return 404, utils.MsgBadCartIndex
	case errors.Is(err, services.ErrQuantityLimit):
		return 409, utils.MsgQuantityLimit
	case errors.Is(err, services.ErrQuantityRange):
		return 400, utils.MsgQuantityRange
	case errors.Is(err, services.ErrUnknownProduct):
		return 404, utils.MsgProductNotFound
	default:
		return 500, utils.MsgSomethingWrong
	}
}

// @Summary Get cart
// @Description Get the cart with line totals
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": utils.MsgCartFetched, "data": ctrl.cartView()})
}

// @Summary Add to cart
// @Description Add a product to the cart, merging equal variants
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body models.AddCartItemRequest true "Item to add"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadRequest})
		return
	}

	p, err := ctrl.catalog.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": utils.MsgProductNotFound})
			return
		}
		c.JSON(502, gin.H{"success": false, "message": utils.MsgProductsLoadFail})
		return
	}

	if !p.InStock {
		c.JSON(409, gin.H{"success": false, "message": utils.MsgOutOfStock})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	color := req.Color
	if color == "" {
		color = p.Color
	}
	size := req.Size
	if size == "" {
		size = p.Size
	}

	line := models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
		Quantity:  quantity,
		Color:     color,
		Size:      size,
	}
	if err := ctrl.cart.Add(line); err != nil {
		status, message := cartErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": utils.MsgAddedToCart, "data": ctrl.cartView()})
}

// @Summary Update line quantity
// @Description Set the quantity of a cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Param index path int true "Cart line index"
// @Param body body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadCartIndex})
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgQuantityRange})
		return
	}

	if err := ctrl.cart.SetQuantity(index, req.Quantity); err != nil {
		status, message := cartErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": utils.MsgCartUpdated, "data": ctrl.cartView()})
}

// @Summary Increment line quantity
// @Description Raise a cart line quantity by one
// @Tags Cart
// @Produce json
// @Param index path int true "Cart line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items/{index}/increment [post]
func (ctrl *CartController) IncrementItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadCartIndex})
		return
	}

	if err := ctrl.cart.Increment(index); err != nil {
		status, message := cartErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": utils.MsgCartUpdated, "data": ctrl.cartView()})
}

// @Summary Decrement line quantity
// @Description Lower a cart line quantity by one, removing it at one
// @Tags Cart
// @Produce json
// @Param index path int true "Cart line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index}/decrement [post]
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadCartIndex})
		return
	}

	if err := ctrl.cart.Decrement(index); err != nil {
		status, message := cartErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": utils.MsgCartUpdated, "data": ctrl.cartView()})
}

// @Summary Remove cart line
// @Description Remove the cart line at index
// @Tags Cart
// @Produce json
// @Param index path int true "Cart line index"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{index} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadCartIndex})
		return
	}

	if err := ctrl.cart.Remove(index); err != nil {
		status, message := cartErrorStatus(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": utils.MsgRemovedFromCart, "data": ctrl.cartView()})
}

// @Summary Clear cart
// @Description Remove every cart line
// @Tags Cart
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	ctrl.cart.Clear()
	c.JSON(200, gin.H{"success": true, "message": utils.MsgCartCleared, "data": ctrl.cartView()})
}
