package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GOBARBER_"

// parseEnv loads envFiles (".env" when none are given) into the process
// environment and overlays Config with the GOBARBER_* variables. Variables
// already set in the environment win over the files. Missing files are
// ignored; malformed files and values panic.
//
//	GOBARBER_API_URL          APIBaseURL
//	GOBARBER_STORAGE          StorageBackend
//	GOBARBER_SQLITE_DSN       SQLiteDSN
//	GOBARBER_REDIS_ADDR       RedisAddr
//	GOBARBER_REDIS_DB         RedisDB
//	GOBARBER_KEY_PREFIX       KeyPrefix
//	GOBARBER_REQUEST_TIMEOUT  RequestTimeout ("5s", "1m")
//	GOBARBER_LOG_LEVEL        LogLevel
//	GOBARBER_LOG_FORMAT       LogFormat
func parseEnv(cfg *Config, envFiles ...string) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	setString(&cfg.APIBaseURL, "API_URL")
	setString(&cfg.StorageBackend, "STORAGE")
	setString(&cfg.SQLiteDSN, "SQLITE_DSN")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.KeyPrefix, "KEY_PREFIX")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	if v, ok := os.LookupEnv(envPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = db
	}
	if v, ok := os.LookupEnv(envPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
		*dst = v
	}
}
