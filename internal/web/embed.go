package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var assets embed.FS

// assetDir returns the embedded directory dir as its own file system root.
func assetDir(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		// dir is a compile time constant matching the embed pattern
		panic(err)
	}

	return sub
}
