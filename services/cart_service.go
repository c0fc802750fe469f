package services

import (
	"errors"
	"sync"
	"time"

	"poshak-shop/models"
	"poshak-shop/repositories"

	"go.uber.org/zap"
)

var (
	ErrCartIndex      = errors.New("cart index out of range")
	ErrQuantityLimit  = errors.New("quantity limit reached")
	ErrQuantityRange  = errors.New("quantity out of range")
	ErrUnknownProduct = errors.New("unknown product")
)

// CartService keeps the cart in memory and mirrors every mutation to disk.
// Lines with the same product, color and size merge into one entry.
type CartService struct {
	mu    sync.Mutex
	lines []models.CartLine

	store  *repositories.LocalStore
	logger *zap.Logger

	lmu       sync.Mutex
	listeners []func()
}

func NewCartService(store *repositories.LocalStore, logger *zap.Logger) *CartService {
	return &CartService{store: store, logger: logger}
}

// OnChange registers fn to run after every cart mutation.
func (s *CartService) OnChange(fn func()) {
	s.lmu.Lock()
	s.listeners = append(s.listeners, fn)
	s.lmu.Unlock()
}

// Load replaces the in-memory cart with the persisted one, dropping lines
// that fail basic sanity checks.
func (s *CartService) Load() {
	lines := sanitizeLines(s.store.LoadCart())
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	if len(lines) > 0 {
		s.logger.Info("cart loaded from disk", zap.Int("lines", len(lines)))
	}
}

// Add puts a line into the cart, merging with an existing line of the same
// variant. A zero quantity defaults to one.
func (s *CartService) Add(line models.CartLine) error {
	if line.ProductID == "" {
		return ErrUnknownProduct
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	if line.Quantity < models.MinQuantity || line.Quantity > models.MaxQuantity {
		return ErrQuantityRange
	}

	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].SameVariant(line) {
			if s.lines[i].Quantity+line.Quantity > models.MaxQuantity {
				s.mu.Unlock()
				return ErrQuantityLimit
			}
			s.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		line.AddedAt = time.Now()
		s.lines = append(s.lines, line)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Remove deletes the line at index.
func (s *CartService) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrCartIndex
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetQuantity replaces the quantity of the line at index. Values outside the
// allowed range are rejected, not clamped.
func (s *CartService) SetQuantity(index, quantity int) error {
	if quantity < models.MinQuantity || quantity > models.MaxQuantity {
		return ErrQuantityRange
	}

	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrCartIndex
	}
	s.lines[index].Quantity = quantity
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Increment raises the quantity of the line at index by one, up to the cap.
func (s *CartService) Increment(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrCartIndex
	}
	if s.lines[index].Quantity >= models.MaxQuantity {
		s.mu.Unlock()
		return ErrQuantityLimit
	}
	s.lines[index].Quantity++
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Decrement lowers the quantity of the line at index by one. At quantity one
// the line is removed instead.
func (s *CartService) Decrement(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.lines) {
		s.mu.Unlock()
		return ErrCartIndex
	}
	if s.lines[index].Quantity <= models.MinQuantity {
		s.lines = append(s.lines[:index], s.lines[index+1:]...)
	} else {
		s.lines[index].Quantity--
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Reconcile refreshes cart lines against the given catalog: names, prices
// and images follow the catalog, lines whose product disappeared are
// dropped. An empty catalog is ignored so a failed refresh never wipes the
// cart. The cart is rewritten to disk only when at least one line was
// dropped.
func (s *CartService) Reconcile(products []models.Product) {
	if len(products) == 0 {
		return
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	kept := s.lines[:0]
	dropped := 0
	for _, line := range s.lines {
		p, ok := byID[line.ProductID]
		if !ok {
			dropped++
			continue
		}
		line.Name = p.Name
		line.Price = p.Price
		line.Image = p.PrimaryImage()
		kept = append(kept, line)
	}
	s.lines = kept
	if dropped > 0 {
		s.persistLocked()
	}
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Info("cart reconciled against catalog", zap.Int("dropped", dropped))
		s.notify()
	}
}

// ReloadFromStorage re-reads the persisted cart, swapping it in only when it
// differs from the in-memory one. Used when another process rewrites the
// cart file.
func (s *CartService) ReloadFromStorage() {
	lines := sanitizeLines(s.store.LoadCart())

	s.mu.Lock()
	if equalLines(s.lines, lines) {
		s.mu.Unlock()
		return
	}
	s.lines = lines
	s.mu.Unlock()

	s.logger.Info("cart reloaded from disk", zap.Int("lines", len(lines)))
	s.notify()
}

// Lines returns a copy of the cart lines.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// TotalQuantity sums the quantities across all lines.
func (s *CartService) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums price times quantity across all lines, in Taka.
func (s *CartService) Subtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.lines)
}

// TotalWith returns the subtotal plus the given delivery fee.
func (s *CartService) TotalWith(deliveryFee int) int {
	return s.Subtotal() + deliveryFee
}

// OrderItems converts the cart into order items for submission.
func (s *CartService) OrderItems() []models.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.OrderItem, 0, len(s.lines))
	for _, line := range s.lines {
		items = append(items, line.ToOrderItem())
	}
	return items
}

func (s *CartService) persistLocked() {
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	s.store.SaveCart(lines)
}

func (s *CartService) notify() {
	s.lmu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.lmu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func sanitizeLines(lines []models.CartLine) []models.CartLine {
	clean := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		if line.Quantity < models.MinQuantity {
			line.Quantity = models.MinQuantity
		}
		if line.Quantity > models.MaxQuantity {
			line.Quantity = models.MaxQuantity
		}
		clean = append(clean, line)
	}
	return clean
}

func subtotal(lines []models.CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.LineTotal()
	}
	return total
}

func equalLines(a, b []models.CartLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ProductID != b[i].ProductID ||
			a[i].Name != b[i].Name ||
			a[i].Price != b[i].Price ||
			a[i].Image != b[i].Image ||
			a[i].Quantity != b[i].Quantity ||
			a[i].Color != b[i].Color ||
			a[i].Size != b[i].Size ||
			!a[i].AddedAt.Equal(b[i].AddedAt) {
			return false
		}
	}
	return true
}
