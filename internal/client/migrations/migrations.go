// Package migrations embeds the goose migrations for the local SQLite
// storage file.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
