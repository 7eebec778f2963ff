// Package migrations embeds the snapshot store schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
