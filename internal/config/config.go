package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env              string `envconfig:"env" default:"development"`
	Port             int    `envconfig:"port" default:"8080"`
	DatabaseDriver   string `envconfig:"database_driver" default:"sqlite"`
	DatabaseURL      string `envconfig:"database_url" default:"smart_rubbish.db"`
	SessionSecret    string `envconfig:"session_secret" default:"secret_key_change_me"`
	StorageNamespace string `envconfig:"storage_namespace" default:"smart_rubbish"`
	StorageQuota     int    `envconfig:"storage_quota_bytes" default:"5242880"`
	CacheSize        int    `envconfig:"cache_size" default:"64"`
	Timezone         string `envconfig:"timezone" default:"Australia/Sydney"`
	AdminsFile       string `envconfig:"admins_file"`
	SentryDSN        string `envconfig:"sentry_dsn"`
	GeocoderURL      string `envconfig:"geocoder_url" default:"https://nominatim.openstreetmap.org/reverse"`
	GeocoderEnabled  bool   `envconfig:"geocoder_enabled" default:"false"`
}

func Load() (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("rubbish", c); err != nil {
		return nil, err
	}
	return c, nil
}

// Location resolves the report timezone, falling back to UTC when the zone database lacks it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
