package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Joke     JokeConfig     `mapstructure:"joke"`
	UI       UIConfig       `mapstructure:"ui"`
	Password PasswordConfig `mapstructure:"password"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// WeatherConfig points the weather card at an OpenWeatherMap compatible API.
type WeatherConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// JokeConfig points the joke widget at the joke API.
type JokeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme          string `mapstructure:"theme"`
	Clock24h       bool   `mapstructure:"clock_24h"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// PasswordConfig holds generator defaults.
type PasswordConfig struct {
	Length  int  `mapstructure:"length"`
	Symbols bool `mapstructure:"symbols"`
}

// LogConfig controls the zap logger. The TUI owns stdout, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Load reads configuration from file and env. Env var overrides use prefix WIDGETBOX_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("WIDGETBOX_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "widgetbox"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WIDGETBOX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path that does not exist surfaces as an fs error
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.UI.Theme = NormalizeTheme(c.UI.Theme)
	return c, nil
}

func setDefaults(v *viper.Viper) {
	share := filepath.Join(homeDir(), ".local", "share", "widgetbox")
	v.SetDefault("database.path", filepath.Join(share, "widgetbox.db"))
	v.SetDefault("weather.base_url", "https://api.openweathermap.org")
	v.SetDefault("weather.api_key_env", "OPENWEATHER_API_KEY")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.timeout", "8s")
	v.SetDefault("joke.base_url", "https://official-joke-api.appspot.com")
	v.SetDefault("joke.timeout", "8s")
	v.SetDefault("ui.theme", ThemeDark)
	v.SetDefault("ui.clock_24h", true)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("password.length", 16)
	v.SetDefault("password.symbols", true)
	v.SetDefault("log.path", filepath.Join(share, "widgetbox.log"))
	v.SetDefault("log.level", "info")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The TUI uses it to persist the theme toggle.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("weather.base_url", cfg.Weather.BaseURL)
	v.Set("weather.api_key_env", cfg.Weather.APIKeyEnv)
	v.Set("weather.api_key", cfg.Weather.APIKey)
	v.Set("weather.timeout", cfg.Weather.Timeout.String())
	v.Set("joke.base_url", cfg.Joke.BaseURL)
	v.Set("joke.timeout", cfg.Joke.Timeout.String())
	v.Set("ui.theme", NormalizeTheme(cfg.UI.Theme))
	v.Set("ui.clock_24h", cfg.UI.Clock24h)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("password.length", cfg.Password.Length)
	v.Set("password.symbols", cfg.Password.Symbols)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the config file location Save writes to.
func Path() string {
	if p := os.Getenv("WIDGETBOX_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "widgetbox", "config.toml")
}

// WeatherAPIKey resolves the key from the configured env var first, then the file.
func (c Config) WeatherAPIKey() string {
	if env := strings.TrimSpace(c.Weather.APIKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.Weather.APIKey)
}

// NormalizeTheme maps anything but "light" to the dark theme.
func NormalizeTheme(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
