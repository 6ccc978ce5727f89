// Package migrations embeds the goose SQL files for the blob backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
