package sqldata

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// CreateTable creates name with an autoincrement ID primary key plus
// the given columns. Go map iteration order is randomized, so the
// columns are declared in sorted-name order; callers must not depend on
// column position.
func (db *DB) CreateTable(name string, columns map[string]DataType) *Error {
	names := make([]string, 0, len(columns))
	for col := range columns {
		names = append(names, col)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (ID INTEGER PRIMARY KEY AUTOINCREMENT", EscapeIdentifier(name))
	for _, col := range names {
		fmt.Fprintf(&b, ", %s %s", EscapeIdentifier(col), columns[col].declaration())
	}
	b.WriteString(")")
	return db.ExecuteChange(b.String())
}

// DeleteTable drops the named table.
func (db *DB) DeleteTable(name string) *Error {
	return db.ExecuteChange("DROP TABLE " + EscapeIdentifier(name))
}

// CreateIndex creates an index named name over the given columns of
// table. At least one column is required.
func (db *DB) CreateIndex(name string, columns []string, table string, unique bool) *Error {
	if len(columns) == 0 {
		log.Printf("sqldata: createIndex %s: no columns provided", name)
		return codeError(ErrIndexNoColumns)
	}
	escaped := make([]string, len(columns))
	for i, col := range columns {
		escaped[i] = EscapeIdentifier(col)
	}
	stmt := "CREATE "
	if unique {
		stmt += "UNIQUE "
	}
	stmt += fmt.Sprintf("INDEX %s ON %s (%s)",
		EscapeIdentifier(name), EscapeIdentifier(table), strings.Join(escaped, ", "))
	return db.ExecuteChange(stmt)
}

// RemoveIndex drops the named index.
func (db *DB) RemoveIndex(name string) *Error {
	return db.ExecuteChange("DROP INDEX " + EscapeIdentifier(name))
}

// ExistingTables lists the tables recorded in the engine's catalog.
func (db *DB) ExistingTables() ([]string, *Error) {
	return db.catalogNames(
		"SELECT name FROM sqlite_master WHERE type = 'table'", ErrTableNameNotText)
}

// ExistingIndexes lists every named index recorded in the catalog.
func (db *DB) ExistingIndexes() ([]string, *Error) {
	return db.catalogNames(
		"SELECT name FROM sqlite_master WHERE type = 'index'", ErrIndexNameNotText)
}

// ExistingIndexesForTable lists the indexes owned by the named table.
func (db *DB) ExistingIndexesForTable(table string) ([]string, *Error) {
	query, err := db.esc.bind([]any{table},
		"SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?")
	if err != nil {
		return nil, err
	}
	return db.catalogNames(query, ErrIndexNameNotText)
}

// catalogNames extracts the name column of a catalog query. A row whose
// name cannot be read as text fails the whole call with failCode.
func (db *DB) catalogNames(query string, failCode int) ([]string, *Error) {
	rows, err := db.ExecuteQuery(query)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name, ok := row["name"].Text()
		if !ok {
			return nil, codeError(failCode)
		}
		names = append(names, name)
	}
	return names, nil
}
