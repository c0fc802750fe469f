package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CatalogTTL bounds how long a catalog snapshot serves without a fresh fetch.
const CatalogTTL = 5 * time.Minute

// Badge values the storefront knows how to render. Anything else coming from
// the sheet is dropped.
var knownBadges = map[string]bool{
	"new":     true,
	"sale":    true,
	"hot":     true,
	"popular": true,
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"`
	Category    string   `json:"category,omitempty"`
	Size        string   `json:"size,omitempty"`
	Color       string   `json:"color,omitempty"`
	Images      []string `json:"images"`
	InStock     bool     `json:"in_stock"`
	Badge       string   `json:"badge,omitempty"`
}

// PrimaryImage returns the first image URL, empty when the row had none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// RawProduct mirrors one spreadsheet row as the sheet API returns it. Prices
// may arrive as numbers or numeric strings, image URLs sit comma-separated in
// a single cell, and the stock flag is free-form text.
type RawProduct struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	Size        string      `json:"size"`
	Color       string      `json:"color"`
	Images      string      `json:"images"`
	InStock     string      `json:"in_stock"`
	Badge       string      `json:"badge"`
}

// ToProduct converts a sheet row into a catalog product. The second return is
// false when the row is unusable: missing id or name, or price not positive.
func (r RawProduct) ToProduct() (Product, bool) {
	id := strings.TrimSpace(r.ID)
	name := strings.TrimSpace(r.Name)
	price := parsePrice(r.Price)
	if id == "" || name == "" || price <= 0 {
		return Product{}, false
	}
	return Product{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(r.Description),
		Price:       price,
		Category:    strings.TrimSpace(r.Category),
		Size:        strings.TrimSpace(r.Size),
		Color:       strings.TrimSpace(r.Color),
		Images:      splitImages(r.Images),
		InStock:     parseStockFlag(r.InStock),
		Badge:       normalizeBadge(r.Badge),
	}, true
}

// MapProducts converts sheet rows into catalog products, dropping rows that
// fail the validity checks.
func MapProducts(raws []RawProduct) []Product {
	products := make([]Product, 0, len(raws))
	for _, r := range raws {
		if p, ok := r.ToProduct(); ok {
			products = append(products, p)
		}
	}
	return products
}

func parsePrice(n json.Number) int {
	if v, err := n.Int64(); err == nil {
		return int(v)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

func splitImages(cell string) []string {
	parts := strings.Split(cell, ",")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	return images
}

// parseStockFlag treats anything that is not an explicit "no" as sellable,
// so rows with an empty stock cell stay visible.
func parseStockFlag(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "false", "no", "n", "0", "out", "out of stock":
		return false
	default:
		return true
	}
}

func normalizeBadge(cell string) string {
	badge := strings.ToLower(strings.TrimSpace(cell))
	if !knownBadges[badge] {
		return ""
	}
	return badge
}

// CatalogSnapshot is the persisted form of a fetched catalog.
type CatalogSnapshot struct {
	Products  []Product `json:"products"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fresh reports whether the snapshot is still inside the cache window.
func (s CatalogSnapshot) Fresh(now time.Time) bool {
	return !s.FetchedAt.IsZero() && now.Sub(s.FetchedAt) < CatalogTTL
}
