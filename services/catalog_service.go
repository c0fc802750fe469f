package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"poshak-shop/libs"
	"poshak-shop/models"
	"poshak-shop/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrProductNotFound marks lookups for ids neither the catalog nor the sheet
// knows.
var ErrProductNotFound = errors.New("product not found")

// CatalogService owns the in-memory product catalog: a snapshot of the sheet
// refreshed at most every CatalogTTL, surviving upstream failures by serving
// the last good copy.
type CatalogService struct {
	mu         sync.RWMutex
	products   []models.Product
	categories []string
	fetchedAt  time.Time

	sheets *libs.SheetClient
	store  *repositories.LocalStore
	logger *zap.Logger
	group  singleflight.Group

	lmu       sync.Mutex
	listeners []func()
}

func NewCatalogService(sheets *libs.SheetClient, store *repositories.LocalStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{sheets: sheets, store: store, logger: logger}
}

// OnUpdate registers fn to run after every successful catalog swap.
func (s *CatalogService) OnUpdate(fn func()) {
	s.lmu.Lock()
	s.listeners = append(s.listeners, fn)
	s.lmu.Unlock()
}

// LoadCached adopts the persisted snapshot when it is still inside the cache
// window. Reports whether anything usable was loaded.
func (s *CatalogService) LoadCached() bool {
	snap := s.store.LoadCatalog()
	if !snap.Fresh(time.Now()) || len(snap.Products) == 0 {
		return false
	}

	s.mu.Lock()
	s.products = snap.Products
	s.categories = distinctCategories(snap.Products)
	s.fetchedAt = snap.FetchedAt
	s.mu.Unlock()

	s.logger.Info("catalog loaded from disk",
		zap.Int("products", len(snap.Products)),
		zap.Time("fetched_at", snap.FetchedAt))
	return true
}

// Refresh fetches the sheet and swaps the catalog. Concurrent callers share
// one upstream request and all see its result. On failure the previous
// catalog is returned alongside the error so callers can keep serving it.
func (s *CatalogService) Refresh(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.group.Do("catalog", func() (any, error) {
		raws, err := s.sheets.FetchProducts(ctx)
		if err != nil {
			return nil, err
		}
		products := models.MapProducts(raws)
		now := time.Now()

		s.mu.Lock()
		s.products = products
		s.categories = distinctCategories(products)
		s.fetchedAt = now
		s.mu.Unlock()

		s.store.SaveCatalog(models.CatalogSnapshot{Products: products, FetchedAt: now})
		s.logger.Info("catalog refreshed", zap.Int("products", len(products)))
		s.notify()
		return products, nil
	})
	if err != nil {
		s.logger.Warn("catalog refresh failed, keeping previous data", zap.Error(err))
		return s.Products(), err
	}
	return v.([]models.Product), nil
}

// EnsureFresh refreshes only when the cache window has lapsed.
func (s *CatalogService) EnsureFresh(ctx context.Context) ([]models.Product, error) {
	if s.Fresh() {
		return s.Products(), nil
	}
	return s.Refresh(ctx)
}

// Products returns the current catalog slice. Callers must not mutate it.
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Categories returns the distinct category names, sorted.
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

// Fresh reports whether the in-memory catalog is inside the cache window.
func (s *CatalogService) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < models.CatalogTTL
}

func (s *CatalogService) LastFetched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// ProductByID looks in the catalog first and falls back to a single-row
// fetch for ids the current snapshot does not carry.
func (s *CatalogService) ProductByID(ctx context.Context, id string) (models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return models.Product{}, ErrProductNotFound
	}

	s.mu.RLock()
	for _, p := range s.products {
		if p.ID == id {
			s.mu.RUnlock()
			return p, nil
		}
	}
	s.mu.RUnlock()

	raw, err := s.sheets.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, libs.ErrNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	p, ok := raw.ToProduct()
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) notify() {
	s.lmu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.lmu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func distinctCategories(products []models.Product) []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}
