// Package all wires all built-in storage backends into the storage factory.
//
// Importing it for side effects registers the "postgres", "mssql" and
// "sqlite" repositories and their DDL bootstrappers:
//
//	import _ "salesmart/internal/storage/all"
package all

import (
	_ "salesmart/internal/storage/mssql"
	_ "salesmart/internal/storage/postgres"
	_ "salesmart/internal/storage/sqlite"
)
