package source

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-browse/pkg/browse"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

// Database exposes a SQLite file as a Browsable: its tables are groups and
// each table's columns are nodes. Listings are queried live so concurrent
// writers are visible on the next refresh.
type Database struct {
	db   *sql.DB
	path string
}

// OpenDatabase opens a SQLite file for browsing.
func OpenDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Database{db: db, path: path}, nil
}

// Close releases the database handle.
func (d *Database) Close() error {
	return d.db.Close()
}

// Path implements browse.PathProvider.
func (d *Database) Path() string { return d.path }

// RootPath implements browse.RootPathProvider.
func (d *Database) RootPath() string { return d.path }

// ListGroups returns the table names.
func (d *Database) ListGroups() []string {
	rows, err := d.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return out
		}
		out = append(out, name)
	}
	return out
}

// ListNodes returns nil; a database root has only tables.
func (d *Database) ListNodes() []string { return nil }

// Get fetches a table by name.
func (d *Database) Get(name string) (any, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("lookup table %q: %w", name, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("table %q: %w", name, browse.ErrNotFound)
	}
	return &Table{db: d.db, name: name, path: d.path + "/" + name}, nil
}

// Table is one table of a Database: columns are nodes, fetching a column
// yields its values.
type Table struct {
	db   *sql.DB
	name string
	path string
}

// Path implements browse.PathProvider.
func (t *Table) Path() string { return t.path }

// ListGroups returns nil; tables have no sub-containers.
func (t *Table) ListGroups() []string { return nil }

// ListNodes returns the column names in schema order.
func (t *Table) ListNodes() []string {
	rows, err := t.db.Query(fmt.Sprintf(`PRAGMA table_info(%q)`, t.name))
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return out
		}
		out = append(out, name)
	}
	return out
}

// Get fetches a column's values. Numeric columns come back as a 1-D
// wrap.Array, text columns as []string, mixed content as []any.
func (t *Table) Get(name string) (any, error) {
	found := false
	for _, col := range t.ListNodes() {
		if col == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("column %q: %w", name, browse.ErrNotFound)
	}

	rows, err := t.db.Query(fmt.Sprintf(`SELECT %q FROM %q`, name, t.name))
	if err != nil {
		return nil, fmt.Errorf("read column %q: %w", name, err)
	}
	defer rows.Close()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("read column %q: %w", name, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read column %q: %w", name, err)
	}
	return columnValue(values), nil
}

// columnValue narrows a scanned column to its natural representation.
func columnValue(values []any) any {
	numeric := make([]float64, 0, len(values))
	text := make([]string, 0, len(values))
	allNumeric, allText := true, true
	for _, v := range values {
		switch x := v.(type) {
		case int64:
			numeric = append(numeric, float64(x))
			allText = false
		case float64:
			numeric = append(numeric, x)
			allText = false
		case string:
			text = append(text, x)
			allNumeric = false
		case []byte:
			text = append(text, string(x))
			allNumeric = false
		default:
			allNumeric = false
			allText = false
		}
	}
	switch {
	case allNumeric && len(numeric) > 0:
		arr, err := wrap.NewArray([]int{len(numeric)}, numeric)
		if err == nil {
			return arr
		}
		return values
	case allText && len(text) > 0:
		return text
	default:
		return values
	}
}
