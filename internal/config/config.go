package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	DatabaseDSN    string `mapstructure:"DATABASE_DSN"`
	LogQueries     bool   `mapstructure:"LOG_QUERIES"`
	Timezone       string `mapstructure:"TIMEZONE"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_PATH", "trips.db")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("LOG_QUERIES", false)
	viper.SetDefault("TIMEZONE", "UTC")

	viper.BindEnv("DATABASE_DRIVER")
	viper.BindEnv("DATABASE_PATH")
	viper.BindEnv("DATABASE_DSN")
	viper.BindEnv("LOG_QUERIES")
	viper.BindEnv("TIMEZONE")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
