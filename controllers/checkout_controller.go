package controllers

import (
	"errors"

	"poshak-shop/libs"
	"poshak-shop/models"
	"poshak-shop/services"
	"poshak-shop/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	logger   *zap.Logger
}

func NewCheckoutController(checkout *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{checkout: checkout, logger: logger}
}

func stepsView(progress models.CheckoutProgress) gin.H {
	steps := make([]gin.H, 0, len(models.CheckoutSteps))
	for i, label := range models.CheckoutSteps {
		number := i + 1
		steps = append(steps, gin.H{
			"number": number,
			"label":  label,
			"active": number == progress.Current,
			"done":   number < progress.Current,
		})
	}
	return gin.H{"steps": steps, "current": progress.Current, "label": progress.Label()}
}

// @Summary Get checkout steps
// @Description Get the checkout wizard steps and current position
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/steps [get]
func (ctrl *CheckoutController) GetSteps(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": utils.MsgStepsFetched, "data": stepsView(ctrl.checkout.Steps())})
}

// @Summary Advance checkout
// @Description Move the checkout wizard one step forward
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/steps/next [post]
func (ctrl *CheckoutController) NextStep(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": utils.MsgStepsFetched, "data": stepsView(ctrl.checkout.NextStep())})
}

// @Summary Step checkout back
// @Description Move the checkout wizard one step back
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/steps/prev [post]
func (ctrl *CheckoutController) PrevStep(c *gin.Context) {
	c.JSON(200, gin.H{"success": true, "message": utils.MsgStepsFetched, "data": stepsView(ctrl.checkout.PrevStep())})
}

// @Summary Quote delivery
// @Description Quote the delivery fee for an address
// @Tags Checkout
// @Produce json
// @Param address query string false "Delivery address"
// @Success 200 {object} models.Response
// @Router /checkout/quote [get]
func (ctrl *CheckoutController) GetQuote(c *gin.Context) {
	fee, area := ctrl.checkout.Quote(c.Query("address"))
	c.JSON(200, gin.H{
		"success": true, "message": utils.MsgQuoteFetched,
		"data": gin.H{
			"delivery_fee": fee,
			"fee_display":  utils.FormatTaka(fee),
			"area":         area,
			"area_label":   utils.AreaLabel(area),
		},
	})
}

// @Summary Validate order form
// @Description Check the order form field by field
// @Tags Checkout
// @Accept json
// @Produce json
// @Param body body models.OrderForm true "Order form"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/validate [post]
func (ctrl *CheckoutController) ValidateForm(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadRequest})
		return
	}

	result := ctrl.checkout.Validate(form)
	message := utils.MsgFormValid
	if !result.Valid {
		message = utils.MsgFormInvalid
	}
	c.JSON(200, gin.H{"success": true, "message": message, "data": result})
}

// @Summary Place order
// @Description Validate the form and submit the cart as an order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param body body models.OrderForm true "Order form"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"success": false, "message": utils.MsgBadRequest})
		return
	}

	conf, result, err := ctrl.checkout.Submit(c.Request.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidForm):
			c.JSON(400, gin.H{"success": false, "message": utils.MsgFormInvalid, "data": result})
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(400, gin.H{"success": false, "message": utils.MsgCartEmpty})
		case errors.Is(err, libs.ErrOrderRejected):
			c.JSON(502, gin.H{"success": false, "message": utils.MsgOrderFailed, "error": err.Error()})
		default:
			c.JSON(502, gin.H{"success": false, "message": utils.MsgOrderFailed})
		}
		return
	}

	c.JSON(201, gin.H{
		"success": true, "message": utils.MsgOrderPlaced,
		"data": gin.H{
			"order_id":         conf.OrderID,
			"subtotal":         conf.Subtotal,
			"delivery_fee":     conf.DeliveryFee,
			"delivery_area":    conf.DeliveryArea,
			"total_amount":     conf.TotalAmount,
			"subtotal_display": utils.FormatTaka(conf.Subtotal),
			"fee_display":      utils.FormatTaka(conf.DeliveryFee),
			"total_display":    utils.FormatTaka(conf.TotalAmount),
			"payment_method":   conf.Payment,
			"placed_at":        conf.PlacedAt,
		},
	})
}

// @Summary Get order confirmation
// @Description Get the stored confirmation for an order id
// @Tags Checkout
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/confirmation/{orderID} [get]
func (ctrl *CheckoutController) GetConfirmation(c *gin.Context) {
	conf, ok := ctrl.checkout.Confirmation(c.Param("orderID"))
	if !ok {
		c.JSON(404, gin.H{"success": false, "message": utils.MsgOrderNotFound})
		return
	}

	c.JSON(200, gin.H{
		"success": true, "message": utils.MsgOrderFetched,
		"data": gin.H{
			"confirmation":  conf,
			"total_display": utils.FormatTaka(conf.TotalAmount),
			"area_label":    utils.AreaLabel(conf.DeliveryArea),
		},
	})
}
