// Package locales embeds the user-facing message catalog.
package locales

import "embed"

// FS holds one YAML file per language at its root.
//
//go:embed *.yaml
var FS embed.FS
