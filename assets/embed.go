package assets

import (
	_ "embed"
)

// SoundsYAML is the built-in alarm sound catalog.
//
//go:embed sounds.yaml
var SoundsYAML []byte
