package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	User    UserConfig    `mapstructure:"user"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Deck    DeckConfig    `mapstructure:"deck"`
	Liked   LikedConfig   `mapstructure:"liked"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds cat API connection settings
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UserConfig identifies the subject votes and favorites are recorded under
type UserConfig struct {
	SubID string `mapstructure:"sub_id"`
}

// CacheConfig holds in-memory cache settings
type CacheConfig struct {
	VotesTTL time.Duration `mapstructure:"votes_ttl"`
}

// DeckConfig holds swipe deck settings
type DeckConfig struct {
	BatchSize       int  `mapstructure:"batch_size"`
	RefillThreshold int  `mapstructure:"refill_threshold"` // Refill when this many cards or fewer remain
	VoteOnDislike   bool `mapstructure:"vote_on_dislike"`
}

// LikedConfig holds liked-grid settings
type LikedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// MetricsConfig holds the optional Prometheus endpoint
type MetricsConfig struct {
	Listen string `mapstructure:"listen"` // e.g. "127.0.0.1:9464"; empty disables
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "https://api.thecatapi.com/v1",
			APIKey:  "",
			Timeout: 30 * time.Second,
		},
		User: UserConfig{
			SubID: "default-user",
		},
		Cache: CacheConfig{
			VotesTTL: 5 * time.Minute,
		},
		Deck: DeckConfig{
			BatchSize:       20,
			RefillThreshold: 5,
			VoteOnDislike:   false,
		},
		Liked: LikedConfig{
			PageSize: 10,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mittens", "mittens.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "mittens", "mittens.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "mittens")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "mittens")
	}
}

// envKeyReplacer maps nested keys to env names (server.api_key -> SERVER_API_KEY)
var envKeyReplacer = strings.NewReplacer(".", "_")

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from an explicit file path
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return readConfig(v)
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	return readConfig(v)
}

func readConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Environment variable overrides, e.g. MITTENS_SERVER_API_KEY
	v.SetEnvPrefix("MITTENS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.api_key", cfg.Server.APIKey)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("user.sub_id", cfg.User.SubID)
	v.SetDefault("cache.votes_ttl", cfg.Cache.VotesTTL)
	v.SetDefault("deck.batch_size", cfg.Deck.BatchSize)
	v.SetDefault("deck.refill_threshold", cfg.Deck.RefillThreshold)
	v.SetDefault("deck.vote_on_dislike", cfg.Deck.VoteOnDislike)
	v.SetDefault("liked.page_size", cfg.Liked.PageSize)
	v.SetDefault("metrics.listen", cfg.Metrics.Listen)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects values the services cannot work with
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if strings.TrimSpace(c.User.SubID) == "" {
		return fmt.Errorf("user.sub_id must not be empty")
	}
	if c.Deck.BatchSize <= 0 {
		return fmt.Errorf("deck.batch_size must be positive, got %d", c.Deck.BatchSize)
	}
	if c.Deck.RefillThreshold < 0 {
		return fmt.Errorf("deck.refill_threshold must not be negative, got %d", c.Deck.RefillThreshold)
	}
	if c.Liked.PageSize <= 0 {
		return fmt.Errorf("liked.page_size must be positive, got %d", c.Liked.PageSize)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.Server.APIKey != ""
}

// SaveConfig writes cfg to the default config file
func SaveConfig(cfg *Config) error {
	return saveConfigTo(cfg, defaultConfigPath())
}

func saveConfigTo(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.api_key", cfg.Server.APIKey)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("user.sub_id", cfg.User.SubID)
	v.Set("cache.votes_ttl", cfg.Cache.VotesTTL.String())
	v.Set("deck.batch_size", cfg.Deck.BatchSize)
	v.Set("deck.refill_threshold", cfg.Deck.RefillThreshold)
	v.Set("deck.vote_on_dislike", cfg.Deck.VoteOnDislike)
	v.Set("liked.page_size", cfg.Liked.PageSize)
	v.Set("metrics.listen", cfg.Metrics.Listen)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
