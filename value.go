package sqldata

import (
	"fmt"
	"strconv"
	"time"

	"sqldata/imagestore"
)

// DataType is the schema-level column type used at table creation.
type DataType int

const (
	TypeText DataType = iota
	TypeInteger
	TypeReal
	TypeBoolean
	TypeBlob
	TypeTimestamp
	// TypeImagePath columns store image store identifiers; they share
	// the TEXT storage declaration.
	TypeImagePath
)

// declaration returns the SQL column type declared for the data type.
func (t DataType) declaration() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeBlob:
		return "BLOB"
	case TypeTimestamp:
		return "DATE"
	default:
		return "TEXT"
	}
}

// Kind tags the family a column Value belongs to.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindReal
	KindBoolean
	KindBlob
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindBlob:
		return "blob"
	case KindTimestamp:
		return "timestamp"
	default:
		return "null"
	}
}

// Value is one decoded column value: a closed tagged union over the
// supported families. Values are immutable once constructed; the zero
// Value is null.
type Value struct {
	kind    Kind
	text    string
	integer int64
	real    float64
	boolean bool
	blob    []byte
	stamp   time.Time
}

func nullValue() Value            { return Value{} }
func textValue(s string) Value    { return Value{kind: KindText, text: s} }
func intValue(n int64) Value      { return Value{kind: KindInteger, integer: n} }
func realValue(f float64) Value   { return Value{kind: KindReal, real: f} }
func boolValue(b bool) Value      { return Value{kind: KindBoolean, boolean: b} }
func blobValue(b []byte) Value    { return Value{kind: KindBlob, blob: b} }
func timeValue(t time.Time) Value { return Value{kind: KindTimestamp, stamp: t} }

// Kind reports the family the value belongs to.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string value of a text column.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Int returns the value of an integer column.
func (v Value) Int() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// Real returns the value of a real column.
func (v Value) Real() (float64, bool) {
	return v.real, v.kind == KindReal
}

// Bool returns the value of a boolean column.
func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// Blob returns the payload of a blob column.
func (v Value) Blob() ([]byte, bool) {
	return v.blob, v.kind == KindBlob
}

// Time returns the value of a timestamp column.
func (v Value) Time() (time.Time, bool) {
	return v.stamp, v.kind == KindTimestamp
}

// Image reinterprets a text value as an image store identifier and
// loads the referenced payload from store.
func (v Value) Image(store *imagestore.Store) ([]byte, bool) {
	if v.kind != KindText || store == nil {
		return nil, false
	}
	data, err := store.Load(v.text)
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindBlob:
		return fmt.Sprintf("<%d-byte blob>", len(v.blob))
	case KindTimestamp:
		return v.stamp.UTC().Format(timestampFormat)
	default:
		return "NULL"
	}
}

// Row maps column names to decoded values for one result row. Rows are
// created fresh per query and owned by the caller.
type Row map[string]Value
