// Package migrations embeds the goose SQL migrations for the catalog
// snapshot schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
