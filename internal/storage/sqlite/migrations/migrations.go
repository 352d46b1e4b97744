// Package migrations embeds the goose SQL migrations that bootstrap the
// relational backend schema. Goose records applied versions in the
// database, so each step runs at most once even across reopenings.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
