// Package gamedata provides the embedded business, stage and upgrade catalogs.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
