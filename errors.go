package sqldata

import "fmt"

// Error is the optional error carried by every fallible operation. A
// nil *Error is the only success signal. Code is either an engine
// result code passed through unmodified (conventionally 0-101) or one
// of the layer's own bands below.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("sqldata error %d: %s", e.Code, e.Message)
}

// Binding errors (2xx).
const (
	ErrBindInsufficientArgs = 201 // fewer arguments than markers
	ErrBindExcessArgs       = 202 // more arguments than markers
	ErrBindIdentifierType   = 203 // i? argument is not a string
)

// Custom-connection errors (3xx).
const (
	ErrConnAlreadyOpen        = 301
	ErrConnOpenInTransaction  = 302
	ErrConnOpenInSavepoint    = 303
	ErrConnNotCustom          = 304
	ErrConnCloseInTransaction = 305
	ErrConnCloseInSavepoint   = 306
)

// Index and table introspection errors (4xx).
const (
	ErrIndexNoColumns   = 401
	ErrIndexNameNotText = 402
	ErrTableNameNotText = 403
)

// Transaction and savepoint errors (5xx).
const (
	ErrTransactionInSavepoint   = 501
	ErrTransactionInTransaction = 502
)

var errorMessages = map[int]string{
	ErrBindInsufficientArgs: "not enough arguments to bind to the template",
	ErrBindExcessArgs:       "too many arguments to bind to the template",
	ErrBindIdentifierType:   "argument bound as an identifier is not a string",

	ErrConnAlreadyOpen:        "a connection is already open",
	ErrConnOpenInTransaction:  "cannot open a custom connection inside a transaction",
	ErrConnOpenInSavepoint:    "cannot open a custom connection inside a savepoint",
	ErrConnNotCustom:          "no custom connection is open",
	ErrConnCloseInTransaction: "cannot close a custom connection inside a transaction",
	ErrConnCloseInSavepoint:   "cannot close a custom connection inside a savepoint",

	ErrIndexNoColumns:   "at least one column name must be provided",
	ErrIndexNameNotText: "index name in catalog is not text",
	ErrTableNameNotText: "table name in catalog is not text",

	ErrTransactionInSavepoint:   "cannot begin a transaction inside a savepoint",
	ErrTransactionInTransaction: "cannot begin a transaction inside another transaction",
}

// engineResultNames are the standard SQLite result code descriptions,
// used when ErrorMessage is asked about an engine-native code.
var engineResultNames = map[int]string{
	0:   "not an error",
	1:   "SQL error or missing database",
	2:   "internal engine error",
	3:   "access permission denied",
	4:   "callback requested query abort",
	5:   "database file is locked",
	6:   "a table in the database is locked",
	7:   "memory allocation failed",
	8:   "attempt to write a readonly database",
	9:   "operation interrupted",
	10:  "disk I/O error",
	11:  "database disk image is malformed",
	12:  "unknown opcode in file control",
	13:  "insertion failed because database is full",
	14:  "unable to open the database file",
	15:  "database lock protocol error",
	16:  "database is empty",
	17:  "database schema changed",
	18:  "string or blob exceeds size limit",
	19:  "constraint violation",
	20:  "data type mismatch",
	21:  "library used incorrectly",
	22:  "OS feature not supported on host",
	23:  "authorization denied",
	24:  "auxiliary database format error",
	25:  "bind parameter out of range",
	26:  "file opened that is not a database file",
	100: "another row is available",
	101: "execution finished",
}

// ErrorMessage returns the human-readable description for an error
// code, covering both the layer's own bands and the standard engine
// result codes.
func ErrorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	if msg, ok := engineResultNames[code]; ok {
		return msg
	}
	return fmt.Sprintf("unknown error code %d", code)
}

// codeError builds an *Error for one of the layer's own codes.
func codeError(code int) *Error {
	return &Error{Code: code, Message: ErrorMessage(code)}
}
