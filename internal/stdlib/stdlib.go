// Package stdlib embeds the calculator's function reference.
package stdlib

import _ "embed"

// Functions is the reference printed by `calc functions`.
//
//go:embed FUNCTIONS.md
var Functions string
