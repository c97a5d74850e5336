// Package config loads runtime configuration for the GoBarber CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with GOBARBER_, after loading a .env
//     file from the working directory when one exists (see parseEnv).
//  3. Optional JSON or YAML file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	api_url: http://localhost:3333
//	storage: redis
//	redis_addr: 127.0.0.1:6379
//	request_timeout: 10s
package config
