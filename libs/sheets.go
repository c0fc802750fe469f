package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"poshak-shop/models"

	"go.uber.org/zap"
)

// Sheet API failure modes.
var (
	ErrSheetUnavailable = errors.New("sheet api unavailable")
	ErrNotFound         = errors.New("not found in sheet")
	ErrOrderRejected    = errors.New("order rejected")
)

// OrderResult is what the sheet API acknowledges an order with.
type OrderResult struct {
	OrderID     string
	TotalAmount int
	DeliveryFee int
}

// SheetClient talks to the spreadsheet-backed storefront API. Every call is
// a single attempt; nothing here retries.
type SheetClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewSheetClient(baseURL string, timeout time.Duration, logger *zap.Logger) *SheetClient {
	return &SheetClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type productsEnvelope struct {
	Success bool                `json:"success"`
	Data    []models.RawProduct `json:"data"`
	Error   string              `json:"error"`
}

type productEnvelope struct {
	Success bool              `json:"success"`
	Data    models.RawProduct `json:"data"`
	Error   string            `json:"error"`
}

type orderEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		OrderID     string `json:"order_id"`
		TotalAmount int    `json:"total_amount"`
		DeliveryFee int    `json:"delivery_fee"`
	} `json:"data"`
	Error string `json:"error"`
}

// FetchProducts pulls every product row. The t parameter busts intermediate
// HTTP caches the way the frontend does with a timestamp query.
func (s *SheetClient) FetchProducts(ctx context.Context) ([]models.RawProduct, error) {
	endpoint, err := s.actionURL("products", "")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSheetUnavailable, resp.StatusCode)
	}

	var envelope productsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("%w: %s", ErrSheetUnavailable, envelope.Error)
	}

	s.logger.Debug("fetched products from sheet", zap.Int("rows", len(envelope.Data)))
	return envelope.Data, nil
}

// FetchProduct pulls a single row by product id.
func (s *SheetClient) FetchProduct(ctx context.Context, id string) (models.RawProduct, error) {
	endpoint, err := s.actionURL("product", id)
	if err != nil {
		return models.RawProduct{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.RawProduct{}, fmt.Errorf("build product request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return models.RawProduct{}, fmt.Errorf("%w: %v", ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.RawProduct{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return models.RawProduct{}, fmt.Errorf("%w: status %d", ErrSheetUnavailable, resp.StatusCode)
	}

	var envelope productEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.RawProduct{}, fmt.Errorf("decode product response: %w", err)
	}
	if !envelope.Success {
		return models.RawProduct{}, fmt.Errorf("%w: %s", ErrNotFound, envelope.Error)
	}

	return envelope.Data, nil
}

// SubmitOrder posts the order payload. A rejected order comes back as
// ErrOrderRejected with the upstream reason attached.
func (s *SheetClient) SubmitOrder(ctx context.Context, payload models.OrderPayload) (OrderResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OrderResult{}, fmt.Errorf("encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return OrderResult{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return OrderResult{}, fmt.Errorf("%w: %v", ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return OrderResult{}, fmt.Errorf("%w: status %d", ErrSheetUnavailable, resp.StatusCode)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return OrderResult{}, fmt.Errorf("decode order response: %w", err)
	}
	if !envelope.Success {
		return OrderResult{}, fmt.Errorf("%w: %s", ErrOrderRejected, envelope.Error)
	}

	s.logger.Info("order accepted by sheet", zap.String("order_id", envelope.Data.OrderID))
	return OrderResult{
		OrderID:     envelope.Data.OrderID,
		TotalAmount: envelope.Data.TotalAmount,
		DeliveryFee: envelope.Data.DeliveryFee,
	}, nil
}

func (s *SheetClient) actionURL(action, id string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse sheet url: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	if id != "" {
		q.Set("id", id)
	}
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
