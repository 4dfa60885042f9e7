package sqldata

import (
	"fmt"
	"log"
)

func savepointName(depth int) string {
	return fmt.Sprintf("'savepoint%d'", depth)
}

// beginTransaction starts an exclusive transaction. Transactions do not
// nest inside savepoints or other transactions.
func (c *connection) beginTransaction() *Error {
	c.mu.Lock()
	if c.savepointsOpen > 0 {
		c.mu.Unlock()
		return codeError(ErrTransactionInSavepoint)
	}
	if c.inTransaction {
		c.mu.Unlock()
		return codeError(ErrTransactionInTransaction)
	}
	c.mu.Unlock()
	if err := c.exec("BEGIN EXCLUSIVE"); err != nil {
		return err
	}
	c.mu.Lock()
	c.inTransaction = true
	c.mu.Unlock()
	return nil
}

// commitTransaction clears the transaction flag before issuing COMMIT,
// so a failed commit cannot leave the connection claiming an active
// transaction. On commit failure a best-effort ROLLBACK runs and the
// commit's error is returned; the rollback's own error is only logged.
func (c *connection) commitTransaction() *Error {
	c.mu.Lock()
	c.inTransaction = false
	c.mu.Unlock()
	if err := c.exec("COMMIT"); err != nil {
		if rbErr := c.exec("ROLLBACK"); rbErr != nil {
			log.Printf("sqldata: rollback after failed commit also failed: code %d", rbErr.Code)
		}
		return err
	}
	return nil
}

// rollbackTransaction abandons the active transaction.
func (c *connection) rollbackTransaction() *Error {
	c.mu.Lock()
	c.inTransaction = false
	c.mu.Unlock()
	return c.exec("ROLLBACK")
}

// beginSavepoint opens the next savepoint. Savepoints nest inside
// savepoints and transactions.
func (c *connection) beginSavepoint() *Error {
	c.mu.Lock()
	name := savepointName(c.savepointsOpen + 1)
	c.mu.Unlock()
	if err := c.exec("SAVEPOINT " + name); err != nil {
		return err
	}
	c.mu.Lock()
	c.savepointsOpen++
	c.mu.Unlock()
	return nil
}

// releaseSavepoint releases the innermost savepoint. The depth is
// decremented whether or not the engine accepted the release.
func (c *connection) releaseSavepoint() *Error {
	c.mu.Lock()
	name := savepointName(c.savepointsOpen)
	c.mu.Unlock()
	err := c.exec("RELEASE " + name)
	c.mu.Lock()
	c.savepointsOpen--
	c.mu.Unlock()
	return err
}

// rollbackSavepoint rewinds to the innermost savepoint without
// releasing it; the depth is unchanged.
func (c *connection) rollbackSavepoint() *Error {
	c.mu.Lock()
	name := savepointName(c.savepointsOpen)
	c.mu.Unlock()
	return c.exec("ROLLBACK TO " + name)
}

// forceCloseSavepoint abandons the innermost savepoint after a failed
// ROLLBACK TO. The savepoint stack cannot be trusted at that point, so
// the depth is decremented without attempting the paired RELEASE.
func (c *connection) forceCloseSavepoint() {
	c.mu.Lock()
	c.savepointsOpen--
	c.mu.Unlock()
}

// Transaction runs body inside an exclusive transaction. The body's
// return decides commit (true) or rollback (false). Database calls made
// from inside the body execute synchronously within the transaction's
// scope.
func (db *DB) Transaction(body func() bool) *Error {
	return db.run(func() *Error { return db.transactionTask(body) })
}

func (db *DB) transactionTask(body func() bool) *Error {
	if err := db.conn.openPlain(); err != nil {
		return err
	}
	if err := db.conn.beginTransaction(); err != nil {
		db.conn.closePlain()
		return err
	}
	var err *Error
	if body() {
		err = db.conn.commitTransaction()
	} else {
		err = db.conn.rollbackTransaction()
	}
	db.conn.closePlain()
	return err
}

// Savepoint runs body inside a savepoint. The body's return decides
// release (true) or rollback (false). Savepoints may nest inside other
// savepoints and transactions.
func (db *DB) Savepoint(body func() bool) *Error {
	return db.run(func() *Error { return db.savepointTask(body) })
}

func (db *DB) savepointTask(body func() bool) *Error {
	if err := db.conn.openPlain(); err != nil {
		return err
	}
	if err := db.conn.beginSavepoint(); err != nil {
		db.conn.closePlain()
		return err
	}
	var err *Error
	if body() {
		err = db.conn.releaseSavepoint()
	} else {
		if rbErr := db.conn.rollbackSavepoint(); rbErr != nil {
			db.conn.forceCloseSavepoint()
			db.conn.closePlain()
			return rbErr
		}
		err = db.conn.releaseSavepoint()
	}
	db.conn.closePlain()
	return err
}
