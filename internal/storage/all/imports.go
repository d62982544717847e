// Package all registers every storage backend via blank imports. Commands
// import this package once to make the factory complete.
package all

import (
	_ "github.com/deekonger/powerwatch/internal/storage/mssql"
	_ "github.com/deekonger/powerwatch/internal/storage/postgres"
	_ "github.com/deekonger/powerwatch/internal/storage/sqlite"
)
