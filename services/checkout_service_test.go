package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"poshak-shop/libs"
	"poshak-shop/models"
	"poshak-shop/repositories"
	"poshak-shop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCheckout(t *testing.T, handler http.Handler) (*CheckoutService, *CartService, *repositories.LocalStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := newTestStore(t)
	cart := NewCartService(store, zap.NewNop())
	sheets := libs.NewSheetClient(server.URL, 2*time.Second, zap.NewNop())
	return NewCheckoutService(cart, sheets, store, nil, zap.NewNop()), cart, store
}

func validOrderForm() models.OrderForm {
	return models.OrderForm{
		Name:    "রহিম উদ্দিন",
		Phone:   "01712345678",
		Address: "বাসা ১২, রোড ৫, ধানমন্ডি, ঢাকা",
	}
}

func TestCheckoutValidate(t *testing.T) {
	checkout, _, _ := newTestCheckout(t, http.NotFoundHandler())

	t.Run("accepts a complete form", func(t *testing.T) {
		result := checkout.Validate(validOrderForm())
		assert.True(t, result.Valid)
		for field, fr := range result.Fields {
			assert.True(t, fr.Valid, "field %s", field)
		}
	})

	t.Run("reports every failing field in Bengali", func(t *testing.T) {
		result := checkout.Validate(models.OrderForm{
			Name:    "র",
			Phone:   "123",
			Email:   "not-an-email",
			Address: "ঢাকা",
		})

		require.False(t, result.Valid)
		assert.Equal(t, utils.MsgNameTooShort, result.Fields["name"].Message)
		assert.Equal(t, utils.MsgPhoneInvalid, result.Fields["phone"].Message)
		assert.Equal(t, utils.MsgAddressTooShort, result.Fields["address"].Message)
		assert.Equal(t, utils.MsgEmailInvalid, result.Fields["email"].Message)
	})

	t.Run("email is optional", func(t *testing.T) {
		form := validOrderForm()
		form.Email = ""
		result := checkout.Validate(form)
		assert.True(t, result.Valid)
		assert.True(t, result.Fields["email"].Valid)
	})

	t.Run("phone survives spaces and country code", func(t *testing.T) {
		form := validOrderForm()
		form.Phone = "+880 1712-345678"
		result := checkout.Validate(form)
		assert.True(t, result.Valid)
	})
}

func TestCheckoutQuote(t *testing.T) {
	checkout, _, _ := newTestCheckout(t, http.NotFoundHandler())

	fee, area := checkout.Quote("বাসা ১২, মিরপুর, ঢাকা")
	assert.Equal(t, utils.DeliveryFeeInsideDhaka, fee)
	assert.Equal(t, utils.AreaInsideDhaka, area)

	fee, area = checkout.Quote("রংপুর সদর, রংপুর")
	assert.Equal(t, utils.DeliveryFeeOutsideDhaka, fee)
	assert.Equal(t, utils.AreaOutsideDhaka, area)
}

func TestCheckoutSubmit(t *testing.T) {
	var received models.OrderPayload
	var hits atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"order_id":     "ORD-2026-001",
				"total_amount": received.TotalAmount,
				"delivery_fee": received.DeliveryFee,
			},
		})
	})
	checkout, cart, store := newTestCheckout(t, handler)

	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Name: "পাঞ্জাবি", Price: 500, Quantity: 2}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p2", Name: "শাড়ি", Price: 300, Quantity: 1}))

	conf, result, err := checkout.Submit(context.Background(), validOrderForm())
	require.NoError(t, err)
	assert.True(t, result.Valid)

	assert.Equal(t, "order", received.Action)
	assert.Equal(t, models.PaymentCashOnDelivery, received.PaymentMethod)
	assert.Equal(t, 1300, received.Subtotal)
	assert.Equal(t, utils.DeliveryFeeInsideDhaka, received.DeliveryFee)
	assert.Equal(t, 1380, received.TotalAmount)
	require.Len(t, received.Items, 2)
	assert.EqualValues(t, 1, hits.Load())

	assert.Equal(t, "ORD-2026-001", conf.OrderID)
	assert.Equal(t, 1380, conf.TotalAmount)
	assert.Equal(t, models.PaymentCashOnDelivery, conf.Payment)
	assert.False(t, conf.PlacedAt.IsZero())

	assert.True(t, cart.IsEmpty(), "submission clears the cart")
	persisted, ok := store.LoadConfirmation()
	require.True(t, ok)
	assert.Equal(t, "ORD-2026-001", persisted.OrderID)

	assert.Equal(t, len(models.CheckoutSteps), checkout.Steps().Current)

	got, ok := checkout.Confirmation("ORD-2026-001")
	require.True(t, ok)
	assert.Equal(t, conf.OrderID, got.OrderID)

	_, ok = checkout.Confirmation("ORD-9999-999")
	assert.False(t, ok)
}

func TestCheckoutSubmitInvalidFormSkipsUpstream(t *testing.T) {
	var hits atomic.Int64
	checkout, cart, _ := newTestCheckout(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 1}))

	form := validOrderForm()
	form.Phone = "123"
	_, result, err := checkout.Submit(context.Background(), form)

	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.False(t, result.Fields["phone"].Valid)
	assert.EqualValues(t, 0, hits.Load())
	assert.False(t, cart.IsEmpty(), "failed submission keeps the cart")
}

func TestCheckoutSubmitEmptyCart(t *testing.T) {
	checkout, _, _ := newTestCheckout(t, http.NotFoundHandler())

	_, _, err := checkout.Submit(context.Background(), validOrderForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutSubmitRejectionKeepsCart(t *testing.T) {
	checkout, cart, store := newTestCheckout(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "স্টক শেষ"})
	}))
	require.NoError(t, cart.Add(models.CartLine{ProductID: "p1", Price: 500, Quantity: 1}))

	_, _, err := checkout.Submit(context.Background(), validOrderForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, libs.ErrOrderRejected)

	assert.False(t, cart.IsEmpty())
	_, ok := store.LoadConfirmation()
	assert.False(t, ok)
}

func TestCheckoutSteps(t *testing.T) {
	checkout, _, _ := newTestCheckout(t, http.NotFoundHandler())

	assert.Equal(t, 1, checkout.Steps().Current)

	for i := 0; i < 5; i++ {
		checkout.NextStep()
	}
	assert.Equal(t, len(models.CheckoutSteps), checkout.Steps().Current, "next clamps at the last step")

	for i := 0; i < 5; i++ {
		checkout.PrevStep()
	}
	assert.Equal(t, 1, checkout.Steps().Current, "prev clamps at the first step")

	checkout.NextStep()
	assert.Equal(t, 1, checkout.ResetSteps().Current)
	assert.Equal(t, 1, checkout.Steps().Current)
}
