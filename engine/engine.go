// Package engine is the boundary to the embedded SQLite engine. The
// rest of the module talks to the engine exclusively through the Conn
// interface: raw statement text in, raw column values and declared-type
// metadata out. Two interchangeable drivers back the implementation,
// selected at build time (see driver_cgo.go and driver_nocgo.go).
package engine

// AccessMode selects how a connection opens the database file.
type AccessMode int

const (
	// ReadOnly opens an existing database for reading only.
	ReadOnly AccessMode = iota
	// ReadWrite opens an existing database for reading and writing.
	ReadWrite
	// ReadWriteCreate opens for reading and writing, creating the
	// database file if it does not exist.
	ReadWriteCreate
)

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return "read-write-create"
	}
}

// modeName is the SQLite URI "mode" parameter for the access mode.
func modeName(m AccessMode) string {
	switch m {
	case ReadOnly:
		return "ro"
	case ReadWrite:
		return "rw"
	default:
		return "rwc"
	}
}

// Column describes one result column. DeclType is the column type
// string declared in the original CREATE TABLE, empty for computed or
// expression columns.
type Column struct {
	Name     string
	DeclType string
}

// Conn is one physical engine connection. Statements are executed as
// literal SQL text; there is no parameter binding at this boundary.
type Conn interface {
	// Exec runs a statement that returns no rows.
	Exec(query string) error
	// Query runs a statement and materializes every result row as the
	// driver's raw column values.
	Query(query string) ([]Column, [][]any, error)
	// Close releases the physical connection.
	Close() error
}
