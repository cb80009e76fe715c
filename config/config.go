package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ErrAuthWithoutSecret авторизация включена, а ключ подписи токенов не задан
var ErrAuthWithoutSecret = errors.New("AUTH_ENABLED=true requires JWT_SECRET")

// Config содержит настройки приложения
type Config struct {
	Port        string `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"` // PostgreSQL; пусто - используем SQLite
	SQLitePath  string `mapstructure:"sqlite_path"`
	CORSOrigins string `mapstructure:"cors_origins"`

	AuthEnabled     bool   `mapstructure:"auth_enabled"`
	JWTSecret       string `mapstructure:"jwt_secret"`
	OperatorKeyHash string `mapstructure:"operator_key_hash"` // bcrypt-хэш ключа оператора

	DeadStockDays      int  `mapstructure:"dead_stock_days"`
	BurnRateWindowDays int  `mapstructure:"burn_rate_window_days"`
	MetricsEnabled     bool `mapstructure:"metrics_enabled"`
}

var keys = map[string]interface{}{
	"port":                  "5000",
	"database_url":          "",
	"sqlite_path":           "database/inventory.db",
	"cors_origins":          "*",
	"auth_enabled":          false,
	"jwt_secret":            "",
	"operator_key_hash":     "",
	"dead_stock_days":       30,
	"burn_rate_window_days": 7,
	"metrics_enabled":       true,
}

// Load читает конфигурацию из .env, необязательного файла CONFIG_FILE и переменных окружения
func Load() (*Config, error) {
	// .env не обязателен
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env не прочитан: %v", err)
	}

	v := viper.New()
	for key, def := range keys {
		v.SetDefault(key, def)
		// PORT, DATABASE_URL и т.д.
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DeadStockDays <= 0 {
		cfg.DeadStockDays = 30
	}
	if cfg.BurnRateWindowDays <= 0 {
		cfg.BurnRateWindowDays = 7
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, ErrAuthWithoutSecret
	}
	if cfg.DatabaseURL == "" {
		log.Printf("Используется SQLite: %s", cfg.SQLitePath)
	}

	return &cfg, nil
}
