package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRequireMotion = "extract.require_motion_flag"
	keyTailWindow    = "extract.tail_window"
	keyWorkers       = "extract.workers"
	keyOutputDir     = "extract.output_dir"
	keyRecursive     = "extract.recursive"
	keyOverwrite     = "extract.overwrite"
	keyFFmpegPath    = "frames.ffmpeg_path"
	keyFPS           = "frames.fps"
	keyFrameFormat   = "frames.format"
	keyWatchRate     = "watch.rate"
	keyWatchBurst    = "watch.burst"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyRequireMotion,
	keyTailWindow,
	keyWorkers,
	keyOutputDir,
	keyRecursive,
	keyOverwrite,
	keyFFmpegPath,
	keyFPS,
	keyFrameFormat,
	keyWatchRate,
	keyWatchBurst,
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
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Extract: domain.ExtractSettings{
			RequireMotionFlag: s.getBool(keyRequireMotion, defaults.Extract.RequireMotionFlag),
			TailWindow:        max(s.getInt(keyTailWindow, defaults.Extract.TailWindow), domain.Unbounded),
			Workers:           s.getPositiveInt(keyWorkers, defaults.Extract.Workers),
			OutputDir:         s.getString(keyOutputDir, defaults.Extract.OutputDir),
			Recursive:         s.getBool(keyRecursive, defaults.Extract.Recursive),
			Overwrite:         s.getBool(keyOverwrite, defaults.Extract.Overwrite),
		},
		Frames: domain.FrameSettings{
			FFmpegPath: s.getString(keyFFmpegPath, defaults.Frames.FFmpegPath),
			FPS:        s.getPositiveFloat(keyFPS, defaults.Frames.FPS),
			Format:     s.getFrameFormat(defaults.Frames.Format),
		},
		Watch: domain.WatchSettings{
			Rate:  s.getPositiveFloat(keyWatchRate, defaults.Watch.Rate),
			Burst: s.getPositiveInt(keyWatchBurst, defaults.Watch.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyRequireMotion, settings.Extract.RequireMotionFlag},
		{keyTailWindow, settings.Extract.TailWindow},
		{keyWorkers, settings.Extract.Workers},
		{keyOutputDir, settings.Extract.OutputDir},
		{keyRecursive, settings.Extract.Recursive},
		{keyOverwrite, settings.Extract.Overwrite},
		{keyFFmpegPath, settings.Frames.FFmpegPath},
		{keyFPS, settings.Frames.FPS},
		{keyFrameFormat, settings.Frames.Format.String()},
		{keyWatchRate, settings.Watch.Rate},
		{keyWatchBurst, settings.Watch.Burst},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetFFmpegPath updates the frame sampling executable.
func (s *SettingsService) SetFFmpegPath(path string) error {
	return s.Set(keyFFmpegPath, path)
}

// Keys returns every recognised setting key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if settings.Extract.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, keyWorkers))
	}
	if settings.Extract.TailWindow < 0 {
		errs = append(errs, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyTailWindow))
	}
	if !settings.Frames.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: frame sampling settings", domain.ErrInvalidInput))
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// parseSetting converts a string value to the type stored for key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case keyRequireMotion, keyRecursive, keyOverwrite:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return b, nil

	case keyTailWindow:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s expects a byte count (0 for unbounded), got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil

	case keyWorkers, keyWatchBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s expects a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil

	case keyFPS, keyWatchRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s expects a positive number, got %q", domain.ErrInvalidInput, key, value)
		}
		return f, nil

	case keyFrameFormat:
		format := domain.FrameFormat(strings.ToLower(value))
		if !format.IsValid() {
			return nil, fmt.Errorf("%w: %s expects jpg or png, got %q", domain.ErrInvalidInput, key, value)
		}
		return format.String(), nil

	case keyOutputDir, keyFFmpegPath:
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return value, nil

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrUnsupportedType, key)
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val < 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
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

func (s *SettingsService) getFrameFormat(defaultVal domain.FrameFormat) domain.FrameFormat {
	format := domain.FrameFormat(s.configStore.GetString(keyFrameFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
