// Package validation provides advisory input validation for settings fields.
//
// These checks mirror the edit-time validators on the launcher's settings
// page. They gate what the edit surface accepts; the settings layer itself
// stores whatever it is given.
package validation

import "regexp"

var (
	// Endpoint overrides. Plain http is accepted here; the settings layer
	// rewrites it to https when the value is applied.
	overrideURLPattern = regexp.MustCompile(`^https?://.+$`)

	// MSA client IDs are UUIDv4: version nibble 4, variant nibble 8-b.
	clientIDPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	// CurseForge keys are 60-character bcrypt-style tokens.
	flameKeyPattern = regexp.MustCompile(`^\$2[ayb]\$.{56}$`)
)

// OverrideURL reports whether s is acceptable as an endpoint override.
// Empty means "no override" and is always acceptable.
func OverrideURL(s string) bool {
	return s == "" || overrideURLPattern.MatchString(s)
}

// ClientID reports whether s is acceptable as an MSA client-ID override.
func ClientID(s string) bool {
	return s == "" || clientIDPattern.MatchString(s)
}

// FlameKey reports whether s is acceptable as a CurseForge API key override.
func FlameKey(s string) bool {
	return s == "" || flameKeyPattern.MatchString(s)
}
