// Package liftplan carries assets that ship inside the binary.
package liftplan

import "embed"

// MigrationsFS holds the schema migrations so the server can migrate
// without a migrations directory on disk next to the binary.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
