package sqldata

import (
	"log"

	"sqldata/engine"
	"sqldata/imagestore"
)

// DB is the public face of the access layer: one shared instance per
// database file, safe for use from concurrent goroutines. See the
// package documentation for the scheduling and binding rules.
type DB struct {
	conn  *connection
	sched *scheduler
	esc   escaper
}

// New opens an access layer for the database file at path. The file is
// created lazily the first time an operation opens the connection.
func New(path string) *DB {
	return NewWithStore(path, nil)
}

// NewWithStore additionally wires an image store, used when binding
// Image values and when resolving image-path columns.
func NewWithStore(path string, store *imagestore.Store) *DB {
	return &DB{
		conn:  newConnection(path),
		sched: newScheduler(),
		esc:   escaper{store: store},
	}
}

// DatabasePath returns the configured database file path.
func (db *DB) DatabasePath() string {
	return db.conn.path
}

// Shutdown stops the serial worker. The DB must not be used afterwards.
func (db *DB) Shutdown() {
	db.sched.stop()
}

// run dispatches fn per the scheduling rule and returns its error.
func (db *DB) run(fn func() *Error) *Error {
	var ferr *Error
	db.sched.run(db.conn, func() { ferr = fn() })
	return ferr
}

// ExecuteChange runs a single INSERT, UPDATE, DELETE or DDL statement.
// Optional args bind into the template's ? and i? markers; binding
// failures are reported before anything touches the connection.
func (db *DB) ExecuteChange(query string, args ...any) *Error {
	if len(args) > 0 {
		bound, err := db.esc.bind(args, query)
		if err != nil {
			log.Printf("sqldata: executeChange bind failed: code %d", err.Code)
			return err
		}
		query = bound
	}
	return db.run(func() *Error {
		if err := db.conn.openPlain(); err != nil {
			return err
		}
		defer db.conn.closePlain()
		return db.conn.exec(query)
	})
}

// ExecuteMultipleChanges runs the statements in order on one open
// connection, stopping at the first failure and logging which list
// index failed.
func (db *DB) ExecuteMultipleChanges(queries []string) *Error {
	return db.run(func() *Error {
		if err := db.conn.openPlain(); err != nil {
			return err
		}
		defer db.conn.closePlain()
		for i, q := range queries {
			if err := db.conn.exec(q); err != nil {
				log.Printf("sqldata: executeMultipleChanges failed at index %d: code %d", i, err.Code)
				return err
			}
		}
		return nil
	})
}

// ExecuteQuery runs a SELECT and decodes every result row. Optional
// args bind the same way as for ExecuteChange.
func (db *DB) ExecuteQuery(query string, args ...any) ([]Row, *Error) {
	if len(args) > 0 {
		bound, err := db.esc.bind(args, query)
		if err != nil {
			log.Printf("sqldata: executeQuery bind failed: code %d", err.Code)
			return nil, err
		}
		query = bound
	}
	var rows []Row
	err := db.run(func() *Error {
		if err := db.conn.openPlain(); err != nil {
			return err
		}
		defer db.conn.closePlain()
		cols, raw, qerr := db.conn.query(query)
		if qerr != nil {
			return qerr
		}
		rows = decodeRows(cols, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecuteWithConnection opens a custom connection with the requested
// access mode, runs body, and closes it again. Database calls made from
// the body run synchronously on the custom connection.
func (db *DB) ExecuteWithConnection(mode engine.AccessMode, body func()) *Error {
	return db.run(func() *Error {
		if err := db.conn.openCustom(mode); err != nil {
			return err
		}
		body()
		return db.conn.closeCustom()
	})
}

// EscapeValue renders v as a SQL literal using the same rules as
// argument binding.
func (db *DB) EscapeValue(v any) string {
	return db.esc.value(v)
}

// EscapeIdentifier is the identifier-quoting counterpart of
// EscapeValue; it is also available as the package-level function of
// the same name.
func (db *DB) EscapeIdentifier(name string) string {
	return EscapeIdentifier(name)
}

// LastInsertedRowID reports the rowid of the most recent insert on the
// shared connection. Outside a transaction, savepoint or custom
// connection the surrounding open/close cycle resets it, and a
// concurrent caller's statement may shadow this caller's own; read it
// inside a scope when that matters.
func (db *DB) LastInsertedRowID() (int64, *Error) {
	return db.scalarInt("SELECT last_insert_rowid()")
}

// NumberOfRowsModified reports the row count affected by the most
// recent statement, with the same consistency caveat as
// LastInsertedRowID.
func (db *DB) NumberOfRowsModified() (int64, *Error) {
	return db.scalarInt("SELECT changes()")
}

func (db *DB) scalarInt(query string) (int64, *Error) {
	var n int64
	err := db.run(func() *Error {
		if err := db.conn.openPlain(); err != nil {
			return err
		}
		defer db.conn.closePlain()
		cols, raw, qerr := db.conn.query(query)
		if qerr != nil {
			return qerr
		}
		if len(raw) == 1 && len(cols) == 1 {
			if v, ok := decodeColumn(cols[0], raw[0][0]).Int(); ok {
				n = v
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
