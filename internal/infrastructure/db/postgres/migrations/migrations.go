// Package migrations embeds the goose SQL migrations for the Credential and Profile stores.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
