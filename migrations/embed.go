// Package migrations embeds the SQL schemas for the local storage file and
// the stub backend database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed local/*.sql stub/*.sql
var files embed.FS

// Local returns the schema of the client's local storage file.
func Local() fs.FS {
	sub, err := fs.Sub(files, "local")
	if err != nil {
		panic(err)
	}
	return sub
}

// Stub returns the schema of the stub backend database.
func Stub() fs.FS {
	sub, err := fs.Sub(files, "stub")
	if err != nil {
		panic(err)
	}
	return sub
}
