// Package schema provides embedded JSON schemas for the unc task catalog.
package schema

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS
