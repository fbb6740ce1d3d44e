// Package web holds the browser UI served by the relay.
package web

import "embed"

//go:embed static
var Static embed.FS
