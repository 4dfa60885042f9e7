package sqldata

import (
	"log"
	"sync"

	"sqldata/engine"
)

// openFunc matches engine.Open; tests swap it for a scripted fake
// engine.
type openFunc func(path string, mode engine.AccessMode) (engine.Conn, error)

// connection owns the single physical engine handle and the session
// state deciding which open and close operations are legal: a
// plain-open flag, a custom-connection flag, an in-transaction flag and
// the open-savepoint depth. The handle is present iff one of the two
// open flags is set, the open flags are mutually exclusive, and a
// transaction never coexists with open savepoints.
//
// All mutation happens inside the scheduler's serial worker or inside a
// synchronously dispatched nested task, never concurrently; the mutex
// exists so the scheduler's dispatch check can read the flags safely.
type connection struct {
	mu   sync.Mutex
	path string
	open openFunc

	conn           engine.Conn
	plainOpen      bool
	customOpen     bool
	inTransaction  bool
	savepointsOpen int
}

func newConnection(path string) *connection {
	return &connection{path: path, open: engine.Open}
}

// nestedScope reports whether an enclosing transaction, savepoint or
// custom connection currently owns the handle. The scheduler dispatches
// operations synchronously while one is active.
func (c *connection) nestedScope() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inTransaction || c.savepointsOpen > 0 || c.customOpen
}

// engineError converts a driver error into the pass-through engine
// error band.
func engineError(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: engine.Code(err), Message: err.Error()}
}

// openPlain opens the physical handle read-write-create. Already-open
// states, including a handle held open by an enclosing scope, are
// success no-ops. An engine failure leaves the state Closed and passes
// the native code through unmodified.
func (c *connection) openPlain() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plainOpen || c.customOpen || c.inTransaction || c.savepointsOpen > 0 {
		return nil
	}
	conn, err := c.open(c.path, engine.ReadWriteCreate)
	if err != nil {
		log.Printf("sqldata: open %s failed: %v", c.path, err)
		return engineError(err)
	}
	c.conn = conn
	c.plainOpen = true
	return nil
}

// openCustom opens the handle with an explicit access mode. Unlike
// openPlain it refuses to piggyback on any existing session.
func (c *connection) openCustom(mode engine.AccessMode) *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inTransaction {
		return codeError(ErrConnOpenInTransaction)
	}
	if c.savepointsOpen > 0 {
		return codeError(ErrConnOpenInSavepoint)
	}
	if c.customOpen || c.plainOpen {
		return codeError(ErrConnAlreadyOpen)
	}
	conn, err := c.open(c.path, mode)
	if err != nil {
		log.Printf("sqldata: open %s (%s) failed: %v", c.path, mode, err)
		return engineError(err)
	}
	c.conn = conn
	c.customOpen = true
	return nil
}

// closePlain releases a plain-open handle. While a transaction,
// savepoint or custom connection owns the handle, or when the
// connection is already closed, this is a no-op. Engine close failures
// are logged; the handle reference is cleared regardless so local state
// always ends up consistently closed.
func (c *connection) closePlain() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inTransaction || c.savepointsOpen > 0 || c.customOpen {
		return
	}
	if !c.plainOpen {
		return
	}
	if err := c.conn.Close(); err != nil {
		log.Printf("sqldata: close failed: %v", err)
	}
	c.conn = nil
	c.plainOpen = false
}

// closeCustom closes a custom connection, returning the engine status
// if the close itself failed. The handle reference is cleared either
// way.
func (c *connection) closeCustom() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inTransaction {
		return codeError(ErrConnCloseInTransaction)
	}
	if c.savepointsOpen > 0 {
		return codeError(ErrConnCloseInSavepoint)
	}
	if !c.customOpen {
		return codeError(ErrConnNotCustom)
	}
	err := c.conn.Close()
	c.conn = nil
	c.customOpen = false
	if err != nil {
		log.Printf("sqldata: custom close failed: %v", err)
		return engineError(err)
	}
	return nil
}

// handle returns the open engine connection, or nil when closed.
func (c *connection) handle() engine.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// exec runs one statement on the open handle.
func (c *connection) exec(query string) *Error {
	conn := c.handle()
	if conn == nil {
		return &Error{Code: 21, Message: "no open connection"}
	}
	if err := conn.Exec(query); err != nil {
		return engineError(err)
	}
	return nil
}

// query runs one statement on the open handle and returns the raw
// column metadata and values.
func (c *connection) query(query string) ([]engine.Column, [][]any, *Error) {
	conn := c.handle()
	if conn == nil {
		return nil, nil, &Error{Code: 21, Message: "no open connection"}
	}
	cols, rows, err := conn.Query(query)
	if err != nil {
		return nil, nil, engineError(err)
	}
	return cols, rows, nil
}
