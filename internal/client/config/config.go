package config

import (
	"time"

	"github.com/dmitrijs2005/gobarber/internal/common"
)

// Config holds runtime settings for the GoBarber CLI.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	APIBaseURL     string
	StorageBackend string
	SQLiteDSN      string
	RedisAddr      string
	RedisDB        int
	KeyPrefix      string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3333"
	c.StorageBackend = "sqlite"
	c.SQLiteDSN = "gobarber_data/session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.KeyPrefix = common.DefaultKeyPrefix
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (a .env file is loaded first when present), a JSON or YAML
// file and command-line flags. Later sources take precedence over earlier
// ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
