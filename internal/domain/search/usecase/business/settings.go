package business

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Conte777/catalog-search-bot/config"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/consts"
	"github.com/Conte777/catalog-search-bot/internal/domain/search/deps"
)

// Settings exposes typed access to the settings store.
// Missing rows and read failures both resolve to the configured defaults.
type Settings struct {
	repo     deps.SettingsRepository
	defaults *config.SearchConfig
	logger   zerolog.Logger
}

// NewSettings creates a new Settings service
func NewSettings(repo deps.SettingsRepository, defaults *config.SearchConfig, logger zerolog.Logger) *Settings {
	return &Settings{
		repo:     repo,
		defaults: defaults,
		logger:   logger.With().Str("component", "settings").Logger(),
	}
}

// Mode returns "public" or "private"
func (s *Settings) Mode(ctx context.Context) string {
	mode := strings.ToLower(s.get(ctx, consts.SettingMode, s.defaults.DefaultMode))
	if mode != consts.ModePublic && mode != consts.ModePrivate {
		return s.defaults.DefaultMode
	}
	return mode
}

// PrivateMode reports whether the mode setting is "private"
func (s *Settings) PrivateMode(ctx context.Context) bool {
	return s.Mode(ctx) == consts.ModePrivate
}

// PrivateLink returns the join target of the private channel, empty when unset
func (s *Settings) PrivateLink(ctx context.Context) string {
	return strings.TrimSpace(s.get(ctx, consts.SettingPrivateLink, ""))
}

// AutoDelete reports whether results are deleted after AutoDeleteSeconds
func (s *Settings) AutoDelete(ctx context.Context) bool {
	return s.get(ctx, consts.SettingAutoDelete, consts.AutoDeleteOff) == consts.AutoDeleteOn
}

// AutoDeleteSeconds returns the auto delete delay, falling back to the default on garbage
func (s *Settings) AutoDeleteSeconds(ctx context.Context) int {
	raw := s.get(ctx, consts.SettingAutoDeleteTime, "")
	if raw == "" {
		return s.defaults.DefaultAutoDeleteTime
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		s.logger.Warn().Str("key", consts.SettingAutoDeleteTime).Str("value", raw).Msg("Invalid stored setting, using default")
		return s.defaults.DefaultAutoDeleteTime
	}
	return seconds
}

// NRFImage returns the "no results" image URL
func (s *Settings) NRFImage(ctx context.Context) string {
	return strings.TrimSpace(s.get(ctx, consts.SettingNRFImage, s.defaults.DefaultNRFImage))
}

// DBChannel returns the catalog source channel id, zero when unset
func (s *Settings) DBChannel(ctx context.Context) int64 {
	raw := s.get(ctx, consts.SettingDBChannel, s.defaults.DatabaseChannel)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("key", consts.SettingDBChannel).Str("value", raw).Msg("Invalid database channel id")
		return 0
	}
	return id
}

// Set upserts a setting value
func (s *Settings) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to update setting")
		return err
	}
	s.logger.Info().Str("key", key).Str("value", value).Msg("Setting updated")
	return nil
}

// Unset removes a setting so that its default applies again
func (s *Settings) Unset(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to remove setting")
		return err
	}
	s.logger.Info().Str("key", key).Msg("Setting removed")
	return nil
}

func (s *Settings) get(ctx context.Context, key, fallback string) string {
	value, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to read setting, using default")
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}
