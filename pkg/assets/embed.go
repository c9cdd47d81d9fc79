package assets

import (
	_ "embed"
)

// SeveritiesYAML embeds the canonical severity taxonomy. The labels are part
// of the dataset schema and are fixed at build time.
//
//go:embed severities.yml
var SeveritiesYAML []byte
