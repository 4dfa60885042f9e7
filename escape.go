package sqldata

import (
	"encoding/hex"
	"log"
	"strconv"
	"strings"
	"time"

	"sqldata/imagestore"
)

// timestampFormat is the fixed wire format for timestamps: UTC, second
// precision.
const timestampFormat = "2006-01-02 15:04:05"

// Image marks a binary payload that should be persisted to the image
// store when bound; the database receives the generated identifier as a
// text literal, not the payload itself.
type Image struct {
	Data []byte
}

// EscapeIdentifier quotes name for use where a table, index or column
// name is expected, doubling any embedded double quote.
func EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func escapeString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// escaper renders application values as SQL literals. The image store
// is optional; it is only consulted for Image values.
type escaper struct {
	store *imagestore.Store
}

// value renders v as a SQL literal. Unsupported types coerce to NULL
// with a logged warning; the coercion is part of the contract, not an
// error.
func (e escaper) value(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return escapeString(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []byte:
		return "X'" + strings.ToUpper(hex.EncodeToString(t)) + "'"
	case time.Time:
		return escapeString(t.UTC().Format(timestampFormat))
	case Image:
		if e.store == nil {
			log.Printf("sqldata: no image store configured, binding NULL for image value")
			return "NULL"
		}
		id, err := e.store.Save(t.Data)
		if err != nil {
			log.Printf("sqldata: saving image failed, binding NULL: %v", err)
			return "NULL"
		}
		return escapeString(id)
	default:
		log.Printf("sqldata: unsupported value type %T, binding NULL", v)
		return "NULL"
	}
}
