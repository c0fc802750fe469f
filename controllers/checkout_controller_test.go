package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"poshak-shop/models"
	"poshak-shop/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() models.OrderForm {
	return models.OrderForm{
		Name:    "রহিম উদ্দিন",
		Phone:   "01712345678",
		Address: "বাসা ১২, রোড ৫, ধানমন্ডি, ঢাকা",
	}
}

func TestGetQuote(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("inside dhaka", func(t *testing.T) {
		rec, parsed := doJSON(t, env.router, http.MethodGet,
			"/api/v1/checkout/quote?address="+url.QueryEscape("মিরপুর ১০, ঢাকা"), nil)
		require.Equal(t, 200, rec.Code)
		data := dataMap(t, parsed)
		assert.EqualValues(t, 80, data["delivery_fee"])
		assert.Equal(t, "৳৮০", data["fee_display"])
		assert.Equal(t, "inside_dhaka", data["area"])
		assert.Equal(t, "ঢাকার ভিতরে", data["area_label"])
	})

	t.Run("outside dhaka", func(t *testing.T) {
		rec, parsed := doJSON(t, env.router, http.MethodGet,
			"/api/v1/checkout/quote?address="+url.QueryEscape("রংপুর সদর, রংপুর"), nil)
		require.Equal(t, 200, rec.Code)
		data := dataMap(t, parsed)
		assert.EqualValues(t, 150, data["delivery_fee"])
		assert.Equal(t, "৳১৫০", data["fee_display"])
		assert.Equal(t, "outside_dhaka", data["area"])
	})

	t.Run("empty address", func(t *testing.T) {
		rec, parsed := doJSON(t, env.router, http.MethodGet, "/api/v1/checkout/quote", nil)
		require.Equal(t, 200, rec.Code)
		data := dataMap(t, parsed)
		assert.EqualValues(t, 150, data["delivery_fee"])
		assert.Equal(t, "outside", data["area"])
	})
}

func TestValidateFormEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, parsed := doJSON(t, env.router, http.MethodPost, "/api/v1/checkout/validate", validForm())
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, utils.MsgFormValid, parsed["message"])
	assert.Equal(t, true, dataMap(t, parsed)["valid"])

	form := validForm()
	form.Phone = "123"
	rec, parsed = doJSON(t, env.router, http.MethodPost, "/api/v1/checkout/validate", form)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, utils.MsgFormInvalid, parsed["message"])

	data := dataMap(t, parsed)
	assert.Equal(t, false, data["valid"])
	fields := data["fields"].(map[string]any)
	phone := fields["phone"].(map[string]any)
	assert.Equal(t, false, phone["valid"])
	assert.Equal(t, utils.MsgPhoneInvalid, phone["message"])
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	addToCart(t, env, "p1", 2)

	rec, parsed := doJSON(t, env.router, http.MethodPost, "/api/v1/checkout", validForm())
	require.Equal(t, 201, rec.Code, "checkout: %v", parsed["message"])
	assert.Equal(t, utils.MsgOrderPlaced, parsed["message"])

	data := dataMap(t, parsed)
	assert.Equal(t, "ORD-100", data["order_id"])
	assert.EqualValues(t, 2500, data["subtotal"])
	assert.EqualValues(t, 80, data["delivery_fee"])
	assert.EqualValues(t, 2580, data["total_amount"])
	assert.Equal(t, "৳২,৫৮০", data["total_display"])
	assert.Equal(t, "cash_on_delivery", data["payment_method"])

	rec, parsed = doJSON(t, env.router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, 200, rec.Code)
	assert.Empty(t, dataMap(t, parsed)["lines"], "placing the order empties the cart")

	rec, parsed = doJSON(t, env.router, http.MethodGet, "/api/v1/checkout/confirmation/ORD-100", nil)
	require.Equal(t, 200, rec.Code)
	conf := dataMap(t, parsed)["confirmation"].(map[string]any)
	assert.Equal(t, "ORD-100", conf["order_id"])
	assert.Equal(t, "রহিম উদ্দিন", conf["customer_name"])

	rec, parsed = doJSON(t, env.router, http.MethodGet, "/api/v1/checkout/confirmation/ORD-999", nil)
	require.Equal(t, 404, rec.Code)
	assert.Equal(t, utils.MsgOrderNotFound, parsed["message"])

	assert.Equal(t, 1, env.sheet.orderCount())
}

func TestCheckoutRejectsInvalidForm(t *testing.T) {
	env := newTestEnv(t, nil)
	addToCart(t, env, "p1", 1)

	form := validForm()
	form.Phone = "123"
	rec, parsed := doJSON(t, env.router, http.MethodPost, "/api/v1/checkout", form)
	require.Equal(t, 400, rec.Code)
	assert.Equal(t, utils.MsgFormInvalid, parsed["message"])

	fields := dataMap(t, parsed)["fields"].(map[string]any)
	assert.Equal(t, false, fields["phone"].(map[string]any)["valid"])

	assert.Equal(t, 0, env.sheet.orderCount(), "invalid form must not reach the sheet")

	rec, parsed = doJSON(t, env.router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, 200, rec.Code)
	assert.Len(t, dataMap(t, parsed)["lines"].([]any), 1, "cart must survive a failed checkout")
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, parsed := doJSON(t, env.router, http.MethodPost, "/api/v1/checkout", validForm())
	require.Equal(t, 400, rec.Code)
	assert.Equal(t, utils.MsgCartEmpty, parsed["message"])
}

func TestCheckoutStepsEndpoints(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, parsed := doJSON(t, env.router, http.MethodGet, "/api/v1/checkout/steps", nil)
	require.Equal(t, 200, rec.Code)
	data := dataMap(t, parsed)
	assert.EqualValues(t, 1, data["current"])
	assert.Equal(t, "তথ্য", data["label"])
	steps := data["steps"].([]any)
	require.Len(t, steps, 3)
	assert.Equal(t, true, steps[0].(map[string]any)["active"])

	for i := 0; i < 4; i++ {
		rec, parsed = doJSON(t, env.router, http.MethodPost, "/api/v1/checkout/steps/next", nil)
		require.Equal(t, 200, rec.Code)
	}
	data = dataMap(t, parsed)
	assert.EqualValues(t, 3, data["current"], "next clamps at the last step")
	assert.Equal(t, "নিশ্চিতকরণ", data["label"])
	assert.Equal(t, true, data["steps"].([]any)[1].(map[string]any)["done"])

	rec, parsed = doJSON(t, env.router, http.MethodPost, "/api/v1/checkout/steps/prev", nil)
	require.Equal(t, 200, rec.Code)
	assert.EqualValues(t, 2, dataMap(t, parsed)["current"])
	assert.Equal(t, "পর্যালোচনা", dataMap(t, parsed)["label"])
}
