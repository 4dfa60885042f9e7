// Package sqldata is a serialized access layer over a single SQLite
// connection: one shared DB instance per database file, safe for use
// from concurrent goroutines.
//
// Every public operation is scheduled onto a single serial worker, so
// independent callers see mutual exclusion over the whole connection.
// Operations issued from inside a transaction, savepoint or custom
// connection body run synchronously within that scope instead, which is
// what lets those bodies call back into the layer without deadlocking.
//
// SQL templates bind arguments by literal substitution: a bare ? binds
// the next argument as an escaped value and the two-character sequence
// i? binds it as a quoted identifier. Fallible operations return a
// *Error whose nil-ness is the only success signal; callers branch on
// the numeric Code, including the specific bands documented on the
// error constants.
package sqldata
