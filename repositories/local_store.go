package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"poshak-shop/models"

	"go.uber.org/zap"
)

// Storage keys, one JSON file each under the state directory.
const (
	catalogFile      = "catalog.json"
	cartFile         = "cart.json"
	confirmationFile = "confirmation.json"
	preferencesFile  = "preferences.json"
)

// LocalStore keeps the storefront's single-user state as JSON files. Reads
// never fail the caller: a missing or corrupt file reads as the zero value,
// and write failures are logged and swallowed.
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// CartPath returns the file the cart lives in, for the change watcher.
func (s *LocalStore) CartPath() string {
	return filepath.Join(s.dir, cartFile)
}

// LoadCatalog returns the persisted snapshot, zero when absent.
func (s *LocalStore) LoadCatalog() models.CatalogSnapshot {
	var snap models.CatalogSnapshot
	s.read(catalogFile, &snap)
	return snap
}

func (s *LocalStore) SaveCatalog(snap models.CatalogSnapshot) {
	s.write(catalogFile, snap)
}

func (s *LocalStore) LoadCart() []models.CartLine {
	var lines []models.CartLine
	if !s.read(cartFile, &lines) {
		return nil
	}
	return lines
}

func (s *LocalStore) SaveCart(lines []models.CartLine) {
	s.write(cartFile, lines)
}

// LoadConfirmation returns the stored order confirmation; the second return
// is false when none has been saved yet.
func (s *LocalStore) LoadConfirmation() (models.OrderConfirmation, bool) {
	var conf models.OrderConfirmation
	ok := s.read(confirmationFile, &conf)
	return conf, ok && conf.OrderID != ""
}

func (s *LocalStore) SaveConfirmation(conf models.OrderConfirmation) {
	s.write(confirmationFile, conf)
}

// LoadPreferences returns the saved preferences, falling back to defaults
// for anything missing or unrecognized.
func (s *LocalStore) LoadPreferences() models.Preferences {
	prefs := models.DefaultPreferences()
	s.read(preferencesFile, &prefs)
	if prefs.Theme != models.ThemeLight && prefs.Theme != models.ThemeDark {
		prefs.Theme = models.ThemeLight
	}
	return prefs
}

func (s *LocalStore) SavePreferences(prefs models.Preferences) {
	s.write(preferencesFile, prefs)
}

func (s *LocalStore) read(name string, v any) bool {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("state read failed", zap.String("file", name), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("state file corrupt, ignoring", zap.String("file", name), zap.Error(err))
		return false
	}
	return true
}

// write lands content through a temp file and rename so a watcher never sees
// a half-written file.
func (s *LocalStore) write(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Warn("state encode failed", zap.String("file", name), zap.Error(err))
		return
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Warn("state write failed", zap.String("file", name), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.logger.Warn("state rename failed", zap.String("file", name), zap.Error(err))
	}
}
