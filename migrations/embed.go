package migrations

import "embed"

// Files holds the picker_sessions schema, applied in version order by
// db.OpenSQLite.
//
//go:embed *.sql
var Files embed.FS
