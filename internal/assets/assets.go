// Package assets embeds the support headers generated sources depend on.
package assets

import "embed"

// Headers holds headers/*.h. The generated source includes BufAttributes.h
// for ALIGNMENT_ATTRIBUTE.
//
//go:embed headers/*.h
var Headers embed.FS

// HeadersDir is the root of Headers.
const HeadersDir = "headers"
