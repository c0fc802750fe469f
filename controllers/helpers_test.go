package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"poshak-shop/controllers"
	"poshak-shop/libs"
	"poshak-shop/models"
	"poshak-shop/repositories"
	"poshak-shop/routes"
	"poshak-shop/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sheetStub fakes the spreadsheet API for handler tests.
type sheetStub struct {
	mu      sync.Mutex
	rows    []map[string]any
	fail    bool
	orders  int
	orderID string
}

func defaultRows() []map[string]any {
	return []map[string]any{
		{"id": "p1", "name": "পাঞ্জাবি ক্লাসিক", "price": 1250, "category": "পাঞ্জাবি", "images": "p1.jpg", "in_stock": "TRUE", "badge": "New"},
		{"id": "p2", "name": "জামদানি শাড়ি", "price": 4500, "category": "শাড়ি", "in_stock": "yes"},
		{"id": "p3", "name": "কটন টি-শার্ট", "price": 450, "category": "টি-শার্ট", "in_stock": "out of stock"},
	}
}

func (s *sheetStub) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders
}

func (s *sheetStub) setFail(fail bool) {
	s.mu.Lock()
	s.fail = fail
	s.mu.Unlock()
}

func (s *sheetStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if r.Method == http.MethodPost {
			s.orders++
			var payload models.OrderPayload
			json.NewDecoder(r.Body).Decode(&payload)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"order_id":     s.orderID,
					"total_amount": payload.TotalAmount,
					"delivery_fee": payload.DeliveryFee,
				},
			})
			return
		}

		if s.fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		switch r.URL.Query().Get("action") {
		case "products":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": s.rows})
		case "product":
			id := r.URL.Query().Get("id")
			for _, row := range s.rows {
				if row["id"] == id {
					json.NewEncoder(w).Encode(map[string]any{"success": true, "data": row})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

type testEnv struct {
	router  *gin.Engine
	store   *repositories.LocalStore
	catalog *services.CatalogService
	cart    *services.CartService
	sheet   *sheetStub
}

// newColdEnv wires the full router without the boot-time catalog fetch.
func newColdEnv(t *testing.T, cache *redis.Client) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &sheetStub{rows: defaultRows(), orderID: "ORD-100"}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	store, err := repositories.NewLocalStore(t.TempDir(), logger)
	require.NoError(t, err)

	sheets := libs.NewSheetClient(server.URL, 2*time.Second, logger)
	catalog := services.NewCatalogService(sheets, store, logger)
	cart := services.NewCartService(store, logger)
	checkout := services.NewCheckoutService(cart, sheets, store, nil, logger)
	catalog.OnUpdate(func() { cart.Reconcile(catalog.Products()) })

	router := gin.New()
	routes.SetupRoutes(router,
		controllers.NewProductController(catalog, cache, logger),
		controllers.NewCartController(cart, catalog, logger),
		controllers.NewCheckoutController(checkout, logger),
		controllers.NewPreferenceController(store, logger),
	)

	return &testEnv{router: router, store: store, catalog: catalog, cart: cart, sheet: stub}
}

func newTestEnv(t *testing.T, cache *redis.Client) *testEnv {
	t.Helper()
	env := newColdEnv(t, cache)
	_, err := env.catalog.Refresh(context.Background())
	require.NoError(t, err)
	return env
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func dataMap(t *testing.T, parsed map[string]any) map[string]any {
	t.Helper()
	data, ok := parsed["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", parsed["data"])
	return data
}

func dataList(t *testing.T, parsed map[string]any) []any {
	t.Helper()
	data, ok := parsed["data"].([]any)
	require.True(t, ok, "data is not a list: %v", parsed["data"])
	return data
}
