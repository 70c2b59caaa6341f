package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string // empty selects the private in-memory store
	RedisURL            string // empty disables traffic counters
	FrontendURLEndsWith string
	AllowedOrigins      []string
	DevPassword         string
	HealthAdminKey      string
	LogLevel            string
	ValuationMode       string  // "hash" (default) or "random"
	ValuationMaxNoise   float64 // fraction, e.g. 0.10 for up to 10%
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VALUATION_MODE", "hash")
	v.SetDefault("VALUATION_MAX_NOISE", 0.10)

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		Port:                v.GetString("PORT"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		AllowedOrigins:      splitList(v.GetString("ALLOWED_ORIGINS")),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		ValuationMode:       strings.ToLower(v.GetString("VALUATION_MODE")),
		ValuationMaxNoise:   v.GetFloat64("VALUATION_MAX_NOISE"),
	}
	if cfg.ValuationMaxNoise < 0 || cfg.ValuationMaxNoise > 1 {
		return nil, fmt.Errorf("VALUATION_MAX_NOISE must be between 0 and 1, got %v", cfg.ValuationMaxNoise)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
