package services

import (
	"fmt"
	"strconv"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStoreDir             = "store.dir"
	KeyStorePath            = "store.path"
	KeySegmenterTerminators = "segmenter.terminators"
	KeyExportIndent         = "export.indent"
	KeyTUIShowCaption       = "tui.show_caption"
)

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	KeyStoreDir,
	KeyStorePath,
	KeySegmenterTerminators,
	KeyExportIndent,
	KeyTUIShowCaption,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Dir:  s.getString(KeyStoreDir, defaults.Store.Dir),
			Path: s.configStore.GetString(KeyStorePath), // Empty means one document per file
		},
		Segmenter: domain.SegmenterSettings{
			Terminators: s.getString(KeySegmenterTerminators, defaults.Segmenter.Terminators),
		},
		Export: domain.ExportSettings{
			Indent: s.getBool(KeyExportIndent, defaults.Export.Indent),
		},
		TUI: domain.TUISettings{
			ShowCaption: s.getBool(KeyTUIShowCaption, defaults.TUI.ShowCaption),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyStoreDir, settings.Store.Dir); err != nil {
		return fmt.Errorf("save store dir: %w", err)
	}
	if err := s.configStore.Set(KeyStorePath, settings.Store.Path); err != nil {
		return fmt.Errorf("save store path: %w", err)
	}
	if err := s.configStore.Set(KeySegmenterTerminators, settings.Segmenter.Terminators); err != nil {
		return fmt.Errorf("save segmenter terminators: %w", err)
	}
	if err := s.configStore.Set(KeyExportIndent, settings.Export.Indent); err != nil {
		return fmt.Errorf("save export indent: %w", err)
	}
	if err := s.configStore.Set(KeyTUIShowCaption, settings.TUI.ShowCaption); err != nil {
		return fmt.Errorf("save tui show_caption: %w", err)
	}

	return nil
}

// Set updates one setting from its string form, as typed on the command
// line. Boolean keys accept the values understood by strconv.ParseBool.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyStoreDir:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		settings.Store.Dir = value
	case KeyStorePath:
		settings.Store.Path = value
	case KeySegmenterTerminators:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		settings.Segmenter.Terminators = value
	case KeyExportIndent:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		settings.Export.Indent = b
	case KeyTUIShowCaption:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		settings.TUI.ShowCaption = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised config keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the location of the underlying config file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
