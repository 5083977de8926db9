// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cryptofolio/internal/marketdata/coincap"
	"cryptofolio/internal/service"
	"cryptofolio/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort         string                  `yaml:"server_port"`
	LogLevel           string                  `yaml:"log_level"`
	DB                 db.Config               `yaml:"db"`
	AutoMigrate        bool                    `yaml:"auto_migrate"`
	CoinCap            coincap.Config          `yaml:"coincap"`
	Dashboard          service.DashboardConfig `yaml:"dashboard"`
	CORSAllowedOrigins []string                `yaml:"cors_allowed_origins"`
}

// Default returns the configuration used for local development.
func Default() *AppConfig {
	return &AppConfig{
		ServerPort: "8080",
		LogLevel:   "info",
		DB: db.Config{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "password",
			DBName:   "cryptofolio",
			SSLMode:  "disable",
		},
		AutoMigrate: true,
		CoinCap: coincap.Config{
			BaseURL: coincap.DefaultBaseURL,
			Timeout: coincap.DefaultTimeout,
		},
		Dashboard: service.DashboardConfig{
			ChartAssetID: service.DefaultChartAssetID,
			ChartDays:    service.DefaultChartDays,
			MoversLimit:  service.DefaultMoversLimit,
		},
		CORSAllowedOrigins: []string{"*"},
	}
}

// LoadConfig loads configuration from, in increasing precedence: built-in
// defaults, the YAML file named by CONFIG_FILE, and environment variables
// (a .env file in the working directory is loaded into the environment first).
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) error {
	setString("SERVER_PORT", &cfg.ServerPort)
	setString("LOG_LEVEL", &cfg.LogLevel)

	setString("DB_HOST", &cfg.DB.Host)
	if err := setInt("DB_PORT", &cfg.DB.Port); err != nil {
		return err
	}
	setString("DB_USER", &cfg.DB.User)
	setString("DB_PASSWORD", &cfg.DB.Password)
	setString("DB_NAME", &cfg.DB.DBName)
	setString("DB_SSLMODE", &cfg.DB.SSLMode)
	if err := setBool("DB_AUTO_MIGRATE", &cfg.AutoMigrate); err != nil {
		return err
	}

	setString("COINCAP_BASE_URL", &cfg.CoinCap.BaseURL)
	setString("COINCAP_API_KEY", &cfg.CoinCap.APIKey)
	if err := setDuration("COINCAP_TIMEOUT", &cfg.CoinCap.Timeout); err != nil {
		return err
	}

	setString("CHART_ASSET_ID", &cfg.Dashboard.ChartAssetID)
	if err := setInt("CHART_DAYS", &cfg.Dashboard.ChartDays); err != nil {
		return err
	}
	if err := setInt("MOVERS_LIMIT", &cfg.Dashboard.MoversLimit); err != nil {
		return err
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.ServerPort == "" {
		return errors.New("invalid config: server port is empty")
	}
	if c.DB.Port <= 0 {
		return fmt.Errorf("invalid config: DB port %d", c.DB.Port)
	}
	if c.CoinCap.Timeout <= 0 {
		return fmt.Errorf("invalid config: CoinCap timeout %s", c.CoinCap.Timeout)
	}
	if c.Dashboard.ChartDays <= 0 {
		return fmt.Errorf("invalid config: chart days %d", c.Dashboard.ChartDays)
	}
	if c.Dashboard.MoversLimit < 1 || c.Dashboard.MoversLimit > 20 {
		return fmt.Errorf("invalid config: movers limit %d must be between 1 and 20", c.Dashboard.MoversLimit)
	}
	return nil
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
