package catalog

import (
	"embed"
	"io/fs"
)

//go:embed defaults/*
var embeddedCatalog embed.FS

// EmbeddedFS returns the bundled catalog. Callers may pass this filesystem to
// LoadFS to use the default table.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "defaults")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Default loads the bundled catalog.
func Default() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
