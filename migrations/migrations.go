// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the binary expects.
const Version = 2
