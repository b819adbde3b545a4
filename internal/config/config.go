package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	DatabaseURL      string        `envconfig:"DATABASE_URL"`
	DataDir          string        `envconfig:"DATA_DIR" default:"./data/drawings"`
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins   string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	AutosaveInterval time.Duration `envconfig:"AUTOSAVE_INTERVAL" default:"30s"`
	MDNSAdvertise    bool          `envconfig:"MDNS_ADVERTISE" default:"false"`
	MDNSService      string        `envconfig:"MDNS_SERVICE" default:"_simpledraw._tcp"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into its non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsePostgres reports whether snapshots go to Postgres instead of DataDir.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
