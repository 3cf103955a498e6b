// Package schemas embeds the default schema directory: one `<version>.idd`
// file per supported version.
package schemas

import "embed"

// FS holds the embedded schema files at its root.
//
//go:embed *.idd
var FS embed.FS
