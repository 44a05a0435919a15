// Package config embeds the scene files shipped with the coverage tool.
package config

import _ "embed"

// SceneDefaults holds scene.defaults.json, the built-in six-camera scene.
//
//go:embed scene.defaults.json
var SceneDefaults []byte
