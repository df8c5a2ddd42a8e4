package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Supabase Supabase `mapstructure:"supabase"`
	Journal  Journal  `mapstructure:"journal"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// Supabase holds the configuration for the Supabase storage and auth APIs.
type Supabase struct {
	URL            string  `mapstructure:"url"`
	AnonKey        string  `mapstructure:"anonKey"`
	Bucket         string  `mapstructure:"bucket"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Journal holds the configuration for the journal logic.
type Journal struct {
	MaxLeverage int `mapstructure:"max_leverage"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("supabase.rate_limit", 10) // requests per second
	viper.SetDefault("supabase.rate_limit_burst", 5)
	viper.SetDefault("supabase.bucket", "trade_images")
	viper.SetDefault("journal.max_leverage", 125)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
