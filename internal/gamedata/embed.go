// Package gamedata provides the embedded skill, item and unit definitions
// and registries for looking them up.
package gamedata

import "embed"

// dataFS embeds skills.json, items.json and units.json at build time.
//
//go:embed *.json
var dataFS embed.FS
