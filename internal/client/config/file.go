package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gobarber/internal/flagx"
	"github.com/dmitrijs2005/gobarber/internal/timex"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// It relies on timex.Duration so the timeout can be written either as a
// string like "5s" or as integer nanoseconds. Empty fields leave the
// current value alone.
type FileConfig struct {
	APIBaseURL     string         `json:"api_url" yaml:"api_url"`
	StorageBackend string         `json:"storage" yaml:"storage"`
	SQLiteDSN      string         `json:"sqlite_dsn" yaml:"sqlite_dsn"`
	RedisAddr      string         `json:"redis_addr" yaml:"redis_addr"`
	RedisDB        *int           `json:"redis_db" yaml:"redis_db"`
	KeyPrefix      string         `json:"key_prefix" yaml:"key_prefix"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are decoded as YAML, anything else
// as JSON. Read and decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	overlay(&cfg.APIBaseURL, fc.APIBaseURL)
	overlay(&cfg.StorageBackend, fc.StorageBackend)
	overlay(&cfg.SQLiteDSN, fc.SQLiteDSN)
	overlay(&cfg.RedisAddr, fc.RedisAddr)
	overlay(&cfg.KeyPrefix, fc.KeyPrefix)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.LogFormat, fc.LogFormat)
	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
