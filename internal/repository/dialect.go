package repository

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the differences between the supported SQL drivers.
type Dialect struct {
	Driver string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
	schema   string
}

var (
	PostgresDialect = Dialect{
		Driver:   "postgres",
		numbered: true,
		schema: `
CREATE TABLE IF NOT EXISTS products (
	id          SERIAL PRIMARY KEY,
	name        TEXT NULL,
	price       NUMERIC NOT NULL,
	description TEXT NULL
)`,
	}

	// Price is kept as TEXT so decimals round-trip exactly. AUTOINCREMENT
	// stops SQLite from handing out the id of a deleted row again.
	SQLiteDialect = Dialect{
		Driver: "sqlite3",
		schema: `
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NULL,
	price       TEXT NOT NULL,
	description TEXT NULL
)`,
	}
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case PostgresDialect.Driver:
		return PostgresDialect, nil
	case SQLiteDialect.Driver:
		return SQLiteDialect, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
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
