package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"poshak-shop/libs"
	"poshak-shop/models"
	"poshak-shop/repositories"
	"poshak-shop/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidForm = errors.New("order form is invalid")
)

// CheckoutService validates the order form, quotes delivery, submits orders
// to the sheet and tracks the three-step checkout progress. A nil mailer
// disables confirmation emails.
type CheckoutService struct {
	cart     *CartService
	sheets   *libs.SheetClient
	store    *repositories.LocalStore
	mailer   *models.EmailService
	validate *validator.Validate
	logger   *zap.Logger

	mu       sync.Mutex
	progress models.CheckoutProgress
}

func NewCheckoutService(cart *CartService, sheets *libs.SheetClient, store *repositories.LocalStore, mailer *models.EmailService, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		sheets:   sheets,
		store:    store,
		mailer:   mailer,
		validate: utils.NewValidator(),
		logger:   logger,
		progress: models.NewCheckoutProgress(),
	}
}

// Validate checks the order form field by field and reports a Bengali
// message for every failing field.
func (s *CheckoutService) Validate(form models.OrderForm) models.ValidationResult {
	form = trimForm(form)

	result := models.ValidationResult{
		Valid: true,
		Fields: map[string]models.FieldResult{
			"name":    {Valid: true},
			"phone":   {Valid: true},
			"address": {Valid: true},
			"email":   {Valid: true},
		},
	}

	err := s.validate.Struct(form)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.Valid = false
		return result
	}

	result.Valid = false
	for _, fe := range verrs {
		field, message := fieldMessage(fe)
		result.Fields[field] = models.FieldResult{Valid: false, Message: message}
	}
	return result
}

// Quote returns the delivery fee and area token for an address.
func (s *CheckoutService) Quote(address string) (int, string) {
	return utils.DeliveryQuote(address)
}

// Submit validates the form, builds the order payload from the current cart
// and sends it to the sheet. On success the confirmation is persisted, the
// cart cleared and the checkout moved to its final step.
func (s *CheckoutService) Submit(ctx context.Context, form models.OrderForm) (models.OrderConfirmation, models.ValidationResult, error) {
	form = trimForm(form)

	result := s.Validate(form)
	if !result.Valid {
		return models.OrderConfirmation{}, result, ErrInvalidForm
	}

	items := s.cart.OrderItems()
	if len(items) == 0 {
		return models.OrderConfirmation{}, result, ErrEmptyCart
	}

	subtotal := 0
	for _, item := range items {
		subtotal += item.Price * item.Quantity
	}
	fee, area := utils.DeliveryQuote(form.Address)

	payload := models.OrderPayload{
		Action:        "order",
		CustomerName:  form.Name,
		Phone:         form.Phone,
		Email:         form.Email,
		Address:       form.Address,
		Notes:         form.Notes,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		DeliveryArea:  area,
		TotalAmount:   subtotal + fee,
		PaymentMethod: models.PaymentCashOnDelivery,
	}

	res, err := s.sheets.SubmitOrder(ctx, payload)
	if err != nil {
		s.logger.Warn("order submission failed", zap.Error(err))
		return models.OrderConfirmation{}, result, fmt.Errorf("submit order: %w", err)
	}

	conf := models.OrderConfirmation{
		OrderID:      res.OrderID,
		CustomerName: form.Name,
		Phone:        form.Phone,
		Address:      form.Address,
		Items:        items,
		Subtotal:     subtotal,
		DeliveryFee:  res.DeliveryFee,
		DeliveryArea: area,
		TotalAmount:  res.TotalAmount,
		Payment:      models.PaymentCashOnDelivery,
		PlacedAt:     time.Now(),
	}
	s.store.SaveConfirmation(conf)
	s.cart.Clear()

	if s.mailer != nil && utils.IsValidEmail(form.Email) {
		if err := s.mailer.SendOrderConfirmationEmail(form.Email, conf); err != nil {
			s.logger.Warn("confirmation email failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.progress.Current = len(models.CheckoutSteps)
	s.mu.Unlock()

	s.logger.Info("order placed",
		zap.String("order_id", conf.OrderID),
		zap.Int("total_amount", conf.TotalAmount),
		zap.String("delivery_area", area))
	return conf, result, nil
}

// Confirmation returns the persisted confirmation when it matches orderID.
func (s *CheckoutService) Confirmation(orderID string) (models.OrderConfirmation, bool) {
	conf, ok := s.store.LoadConfirmation()
	if !ok || conf.OrderID != orderID {
		return models.OrderConfirmation{}, false
	}
	return conf, true
}

// Steps returns the current checkout progress.
func (s *CheckoutService) Steps() models.CheckoutProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *CheckoutService) NextStep() models.CheckoutProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Next()
	return s.progress
}

func (s *CheckoutService) PrevStep() models.CheckoutProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Prev()
	return s.progress
}

func (s *CheckoutService) ResetSteps() models.CheckoutProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Current = 1
	return s.progress
}

func trimForm(form models.OrderForm) models.OrderForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)
	form.Address = strings.TrimSpace(form.Address)
	form.Notes = strings.TrimSpace(form.Notes)
	return form
}

func fieldMessage(fe validator.FieldError) (string, string) {
	switch fe.StructField() {
	case "Name":
		return "name", utils.MsgNameTooShort
	case "Phone":
		return "phone", utils.MsgPhoneInvalid
	case "Address":
		return "address", utils.MsgAddressTooShort
	case "Email":
		return "email", utils.MsgEmailInvalid
	default:
		return strings.ToLower(fe.StructField()), utils.MsgFormInvalid
	}
}
