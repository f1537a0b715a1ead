package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/jask/signboard/internal/sheet"
)

// Config holds application configuration.
type Config struct {
	Sheets SheetsConfig
	Ranges RangesConfig
	Timing TimingConfig
	Log    LogConfig
	UI     UIConfig
}

// SheetsConfig holds the data source settings.
type SheetsConfig struct {
	SheetID      string        `mapstructure:"sheet_id"`
	APIKeyEnv    string        `mapstructure:"api_key_env"`
	APIKey       string        `mapstructure:"api_key"`
	Endpoint     string        `mapstructure:"endpoint"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// RangesConfig names the sheet range for each record kind.
type RangesConfig struct {
	Images     string
	Statistics string
	Schedule   string
	Halls      string
	Notices    string
}

// TimingConfig holds the refresh and rotation intervals.
type TimingConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RefreshTimeout  time.Duration `mapstructure:"refresh_timeout"`
	ScreenInterval  time.Duration `mapstructure:"screen_interval"`
	ImageInterval   time.Duration `mapstructure:"image_interval"`
}

// LogConfig holds logger settings. The TUI owns stdout, so logs go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title    string
	Subtitle string
}

// ResolveAPIKey resolves the key, preferring the named env var over the file value.
func (s SheetsConfig) ResolveAPIKey() string {
	if s.APIKeyEnv != "" {
		if key := strings.TrimSpace(os.Getenv(s.APIKeyEnv)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(s.APIKey)
}

// Loader reads configuration and keeps the viper instance around for watching.
type Loader struct {
	v        *viper.Viper
	explicit bool
}

// NewLoader prepares a loader. Env var overrides use prefix SIGNBOARD_.
func NewLoader() *Loader {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("sheets.sheet_id", "")
	v.SetDefault("sheets.api_key_env", "SIGNBOARD_SHEETS_API_KEY")
	v.SetDefault("sheets.api_key", "")
	v.SetDefault("sheets.endpoint", "")
	v.SetDefault("sheets.fetch_timeout", 15*time.Second)
	contract := sheet.DefaultContract()
	for _, k := range sheet.Kinds() {
		v.SetDefault("ranges."+string(k), contract.Ranges[k].Range)
	}
	v.SetDefault("timing.refresh_interval", 5*time.Minute)
	v.SetDefault("timing.refresh_timeout", 60*time.Second)
	v.SetDefault("timing.screen_interval", 10*time.Second)
	v.SetDefault("timing.image_interval", 5*time.Second)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "signboard", "signboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.title", "Department of Statistics and Computer Science")
	v.SetDefault("ui.subtitle", "University of Peradeniya")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SIGNBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "signboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SIGNBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Loader{v: v, explicit: cfgPath != ""}
}

// Load reads the config file if present. A missing default file is fine; an
// explicitly selected file must exist and parse.
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (Config, error) {
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Watch calls fn with the re-read config every time the config file changes.
// Changes that fail to decode are passed to onErr and otherwise ignored.
func (l *Loader) Watch(fn func(Config), onErr func(error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		c, err := l.decode()
		if err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		fn(c)
	})
	l.v.WatchConfig()
}

// ConfigFile returns the file in use, or "" when running on defaults.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Load is a one-shot read without watching.
func Load() (Config, error) {
	return NewLoader().Load()
}

// Validate rejects settings the display cannot run with. Every range must name
// a sheet and cover the columns of the embedded range contract.
func (c Config) Validate() error {
	contract := sheet.DefaultContract()
	for _, k := range sheet.Kinds() {
		rng := c.Ranges.ByKind(k)
		if strings.TrimSpace(rng) == "" {
			return fmt.Errorf("ranges.%s must not be empty", k)
		}
		if err := contract.CheckRange(k, rng); err != nil {
			return fmt.Errorf("ranges.%s: %w", k, err)
		}
	}
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"timing.refresh_interval", c.Timing.RefreshInterval},
		{"timing.screen_interval", c.Timing.ScreenInterval},
		{"timing.image_interval", c.Timing.ImageInterval},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.d)
		}
	}
	return nil
}

// ByKind returns the configured range for one record kind.
func (r RangesConfig) ByKind(k sheet.Kind) string {
	switch k {
	case sheet.KindImages:
		return r.Images
	case sheet.KindStatistics:
		return r.Statistics
	case sheet.KindSchedule:
		return r.Schedule
	case sheet.KindHalls:
		return r.Halls
	case sheet.KindNotices:
		return r.Notices
	}
	return ""
}
