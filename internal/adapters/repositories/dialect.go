package repositories

import (
	"strconv"
	"strings"
)

// Dialect selects the placeholder syntax of the target database.
type Dialect int

const (
	DialectSqlite Dialect = iota
	DialectPostgres
)

// DialectForDriver maps a database/sql driver name to its dialect.
func DialectForDriver(driver string) Dialect {
	if driver == "pgx" || driver == "postgres" {
		return DialectPostgres
	}
	return DialectSqlite
}

// rebind rewrites ? placeholders as $1..$n for Postgres.
// Queries in this package never contain literal question marks.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
