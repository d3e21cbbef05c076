package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config agrupa todo lo configurable por entorno.
// DBDSN vacío => repos in-memory (modo dev). JWTSecret vacío => sin verifier,
// se acepta X-Debug-User-ID.
type Config struct {
	AppName   string `mapstructure:"APP_NAME"`
	Port      int    `mapstructure:"PORT"`
	DBDSN     string `mapstructure:"DB_DSN"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "pet-care-tracker")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	for _, key := range []string{"APP_NAME", "PORT", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "JWT_SECRET"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	return cfg, nil
}
