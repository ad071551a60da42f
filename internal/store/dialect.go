package store

import (
	"strconv"
	"strings"

	"lyricsync/internal/config"
)

type dialect string

const (
	dialectSQLite   dialect = config.DriverSQLite
	dialectPostgres dialect = config.DriverPostgres
)

func dialectFor(driver string) dialect {
	if driver == config.DriverPostgres {
		return dialectPostgres
	}
	return dialectSQLite
}

// rebind rewrites ? placeholders into the dialect's form. Queries in this
// package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (d dialect) schema() string {
	if d == dialectPostgres {
		return schemaPostgres
	}
	return schemaSQLite
}
