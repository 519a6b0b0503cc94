// Package config loads runtime settings from defaults, a .env file,
// CRAFTBOX_* environment variables and an optional craftbox.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. CRAFTBOX_LOG_LEVEL.
const EnvPrefix = "CRAFTBOX"

// Config holds every runtime setting.
type Config struct {
	Log       LogConfig     `mapstructure:"log"`
	Craft     CraftConfig   `mapstructure:"craft"`
	Watch     WatchConfig   `mapstructure:"watch"`
	Catalog   CatalogConfig `mapstructure:"catalog"`
	Features  FeatureConfig `mapstructure:"features"`
	Inventory []ItemStack   `mapstructure:"inventory"`
}

// ItemStack is a starting inventory entry. A list keeps item names in their
// original case; viper lower-cases map keys.
type ItemStack struct {
	Item     string `mapstructure:"item"`
	Quantity int    `mapstructure:"quantity"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // "stderr" logs to the console
}

// CraftConfig controls the game process.
type CraftConfig struct {
	DefaultDuration time.Duration `mapstructure:"duration_default"`
	QueueSize       int           `mapstructure:"queue_size"`
}

// WatchConfig controls the ready watcher.
type WatchConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	NotifyCooldown time.Duration `mapstructure:"notify_cooldown"`
	AlmostDone     time.Duration `mapstructure:"almost_done"`
	MaxEscalation  int           `mapstructure:"max_escalation"`
}

// CatalogConfig points at an optional recipe file.
type CatalogConfig struct {
	Path         string        `mapstructure:"path"`
	Watch        bool          `mapstructure:"watch"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}

// FeatureConfig lists the feature flags switched on.
type FeatureConfig struct {
	Enabled []string `mapstructure:"enabled"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "normal",
			File:  ".craftbox-logs/craftbox.log",
		},
		Craft: CraftConfig{
			DefaultDuration: 30 * time.Second,
			QueueSize:       32,
		},
		Watch: WatchConfig{
			Interval:       time.Second,
			NotifyCooldown: 30 * time.Second,
			AlmostDone:     10 * time.Second,
			MaxEscalation:  3,
		},
		Catalog: CatalogConfig{
			Watch:        true,
			SyncInterval: 2 * time.Second,
		},
		Features: FeatureConfig{
			Enabled: []string{crafting.FeatureCraftingBox},
		},
		Inventory: []ItemStack{
			{Item: "Wood", Quantity: 10},
			{Item: "Stone", Quantity: 6},
			{Item: "Wool", Quantity: 4},
			{Item: "Thread", Quantity: 4},
			{Item: "Cotton", Quantity: 2},
			{Item: "Button", Quantity: 4},
		},
	}
}

// Load reads the configuration. path names a YAML file; when empty,
// craftbox.yaml is looked up in the working directory and skipped if
// missing. A .env file in the working directory is applied first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("craftbox")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("craft.duration_default", d.Craft.DefaultDuration)
	v.SetDefault("craft.queue_size", d.Craft.QueueSize)

	v.SetDefault("watch.interval", d.Watch.Interval)
	v.SetDefault("watch.notify_cooldown", d.Watch.NotifyCooldown)
	v.SetDefault("watch.almost_done", d.Watch.AlmostDone)
	v.SetDefault("watch.max_escalation", d.Watch.MaxEscalation)

	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.watch", d.Catalog.Watch)
	v.SetDefault("catalog.sync_interval", d.Catalog.SyncInterval)

	v.SetDefault("features.enabled", d.Features.Enabled)
	v.SetDefault("inventory", d.Inventory)
}

// Validate rejects settings the process cannot run with.
func (c Config) Validate() error {
	if c.Craft.DefaultDuration <= 0 {
		return fmt.Errorf("craft.duration_default must be positive, got %s", c.Craft.DefaultDuration)
	}
	if c.Craft.QueueSize <= 0 {
		return fmt.Errorf("craft.queue_size must be positive, got %d", c.Craft.QueueSize)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}
	if c.Catalog.SyncInterval <= 0 {
		return fmt.Errorf("catalog.sync_interval must be positive, got %s", c.Catalog.SyncInterval)
	}
	for _, st := range c.Inventory {
		if st.Item == "" || st.Quantity < 0 {
			return fmt.Errorf("inventory entry %q: quantity %d", st.Item, st.Quantity)
		}
	}
	return nil
}

// StartingInventory folds the inventory list into a map.
func (c Config) StartingInventory() map[string]int {
	inv := make(map[string]int, len(c.Inventory))
	for _, st := range c.Inventory {
		inv[st.Item] += st.Quantity
	}
	return inv
}

// Flags turns features.enabled into a flag set.
func (c Config) Flags() domain.FlagSet {
	flags := make(domain.FlagSet, len(c.Features.Enabled))
	for _, k := range c.Features.Enabled {
		flags[strings.TrimSpace(k)] = true
	}
	return flags
}

// FeatureEnabled reports whether key is listed in features.enabled.
func (c Config) FeatureEnabled(key string) bool {
	for _, k := range c.Features.Enabled {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
