// Package web holds the assets served under /static.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var static embed.FS

// StaticFS returns the embedded static directory.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
