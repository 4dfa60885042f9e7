package engine

import (
	"github.com/jmoiron/sqlx"
)

// Open opens the SQLite database at path with the requested access
// mode. The returned Conn wraps exactly one physical connection: the
// pool underneath is capped at a single conn so every statement
// observes the same engine handle, including last_insert_rowid() and
// changes().
func Open(path string, mode AccessMode) (Conn, error) {
	db, err := sqlx.Open(driverName, dsn(path, mode))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	// sqlx.Open is lazy; force the actual file open so failures
	// surface here with the engine's native code.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteConn{db: db}, nil
}

type sqliteConn struct {
	db *sqlx.DB
}

func (c *sqliteConn) Exec(query string) error {
	_, err := c.db.Exec(query)
	return err
}

func (c *sqliteConn) Query(query string) ([]Column, [][]any, error) {
	rows, err := c.db.Queryx(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}
	cols := make([]Column, len(types))
	for i, ct := range types {
		cols[i] = Column{Name: ct.Name(), DeclType: ct.DatabaseTypeName()}
	}

	var out [][]any
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, nil, err
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

func (c *sqliteConn) Close() error {
	return c.db.Close()
}
