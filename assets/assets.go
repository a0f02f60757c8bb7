// Package assets embeds the default asset definitions shipped with the game.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed defs/*.yaml
var embedded embed.FS

// DefsDir is the directory inside FS holding the definition files
const DefsDir = "defs"

// FS returns the embedded definitions
func FS() fs.FS {
	return embedded
}
