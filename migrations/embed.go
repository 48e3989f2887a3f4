// Package migrations embeds the goose SQL migrations so both the server
// startup path and the test helper can apply them without locating files on
// disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
