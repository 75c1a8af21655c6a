// Package settings persists the free-form preference strings: theme,
// system name and date format. Each lives under its own durable key, the
// way the original screens stored them individually.
package settings

import (
	"context"
	"log/slog"

	"github.com/am3lue/ProjectManagementSystem/internal/storage"
)

const (
	DefaultTheme      = "dark-theme"
	DefaultDateFormat = "MM/DD/YYYY"
)

type Preferences struct {
	Theme      string `json:"theme"`
	SystemName string `json:"systemName"`
	DateFormat string `json:"dateFormat"`
}

type Service struct {
	store  storage.Store
	logger *slog.Logger
}

func NewService(durable storage.Store, logger *slog.Logger) *Service {
	return &Service{store: durable, logger: logger}
}

func (s *Service) Get(ctx context.Context) Preferences {
	return Preferences{
		Theme:      s.read(ctx, storage.KeyTheme, DefaultTheme),
		SystemName: s.read(ctx, storage.KeySystemName, ""),
		DateFormat: s.read(ctx, storage.KeyDateFormat, DefaultDateFormat),
	}
}

// Save writes only the provided non-empty preferences; clearing a
// preference is not a supported operation, matching the original forms.
func (s *Service) Save(ctx context.Context, prefs Preferences) error {
	if prefs.Theme != "" {
		if err := s.store.Set(ctx, storage.KeyTheme, prefs.Theme); err != nil {
			return err
		}
	}
	if prefs.SystemName != "" {
		if err := s.store.Set(ctx, storage.KeySystemName, prefs.SystemName); err != nil {
			return err
		}
	}
	if prefs.DateFormat != "" {
		if err := s.store.Set(ctx, storage.KeyDateFormat, prefs.DateFormat); err != nil {
			return err
		}
	}
	s.logger.Info("settings saved")
	return nil
}

func (s *Service) read(ctx context.Context, key, fallback string) string {
	val, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Error("failed to read preference", "key", key, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return val
}
