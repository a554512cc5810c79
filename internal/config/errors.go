// Package config loads the base configuration document and the optional
// project overlay, deep-merges them, and normalizes the result into the
// canonical document the rest of rulekit consumes.
package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrConfigMissing indicates the base configuration document was not found.
	ErrConfigMissing = errors.New("config: base configuration document not found")

	// ErrConfigParse indicates the base configuration document is not valid YAML.
	ErrConfigParse = errors.New("config: invalid YAML in base configuration")

	// ErrOverlayParse indicates a present overlay document is not valid YAML.
	// An overlay, once detected present, is never partially trusted.
	ErrOverlayParse = errors.New("config: invalid YAML in overlay configuration")
)
