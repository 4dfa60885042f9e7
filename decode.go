package sqldata

import (
	"log"
	"strconv"
	"strings"
	"time"

	"sqldata/engine"
)

// decodeRows converts raw engine rows into typed Rows using each
// column's declared type when available and the dynamic type of the
// scanned value otherwise. A column that cannot be decoded degrades to
// null; decoding never fails a query.
func decodeRows(cols []engine.Column, raw [][]any) []Row {
	rows := make([]Row, 0, len(raw))
	for _, rec := range raw {
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col.Name] = decodeColumn(col, rec[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func decodeColumn(col engine.Column, v any) Value {
	// An engine NULL short-circuits regardless of the declared type.
	if v == nil {
		return nullValue()
	}
	kind, ok := classifyDecl(col.DeclType)
	if !ok {
		if col.DeclType != "" {
			log.Printf("sqldata: unrecognized declared type %q for column %s, decoding as null", col.DeclType, col.Name)
			return nullValue()
		}
		return decodeDynamic(v)
	}
	return decodeAs(kind, col.Name, v)
}

// classifyDecl maps a declared column type onto a value family using
// the same substring rules SQLite applies for type affinity, plus the
// boolean and timestamp aliases this layer declares itself.
func classifyDecl(decl string) (Kind, bool) {
	u := strings.ToUpper(strings.TrimSpace(decl))
	switch {
	case u == "":
		return KindNull, false
	case strings.HasPrefix(u, "BOOL"):
		return KindBoolean, true
	case u == "DATE" || u == "DATETIME" || u == "TIMESTAMP":
		return KindTimestamp, true
	case u == "BLOB" || u == "NONE":
		return KindBlob, true
	case strings.Contains(u, "INT"):
		return KindInteger, true
	case strings.Contains(u, "CHAR") || strings.Contains(u, "CLOB") || strings.Contains(u, "TEXT"):
		return KindText, true
	case strings.Contains(u, "REAL") || strings.Contains(u, "FLOA") || strings.Contains(u, "DOUB") ||
		strings.Contains(u, "NUM") || strings.Contains(u, "DEC"):
		return KindReal, true
	default:
		return KindNull, false
	}
}

// decodeAs converts a raw driver value into the declared family. The
// drivers hand back different Go types for the same stored value, so
// each family accepts every representation seen in practice.
func decodeAs(kind Kind, name string, v any) Value {
	switch kind {
	case KindInteger:
		switch t := v.(type) {
		case int64:
			return intValue(t)
		case float64:
			return intValue(int64(t))
		case bool:
			if t {
				return intValue(1)
			}
			return intValue(0)
		case string:
			if n, err := strconv.ParseInt(t, 10, 64); err == nil {
				return intValue(n)
			}
		case []byte:
			if n, err := strconv.ParseInt(string(t), 10, 64); err == nil {
				return intValue(n)
			}
		}
	case KindText:
		switch t := v.(type) {
		case string:
			return textValue(t)
		case []byte:
			return textValue(string(t))
		case int64:
			return textValue(strconv.FormatInt(t, 10))
		case float64:
			return textValue(strconv.FormatFloat(t, 'g', -1, 64))
		case time.Time:
			return textValue(t.UTC().Format(timestampFormat))
		}
	case KindReal:
		switch t := v.(type) {
		case float64:
			return realValue(t)
		case int64:
			return realValue(float64(t))
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				return realValue(f)
			}
		case []byte:
			if f, err := strconv.ParseFloat(string(t), 64); err == nil {
				return realValue(f)
			}
		}
	case KindBoolean:
		switch t := v.(type) {
		case bool:
			return boolValue(t)
		case int64:
			return boolValue(t != 0)
		case float64:
			return boolValue(t != 0)
		case string:
			return boolValue(t == "1" || strings.EqualFold(t, "true"))
		case []byte:
			s := string(t)
			return boolValue(s == "1" || strings.EqualFold(s, "true"))
		}
	case KindBlob:
		switch t := v.(type) {
		case []byte:
			return blobValue(append([]byte(nil), t...))
		case string:
			return blobValue([]byte(t))
		}
	case KindTimestamp:
		switch t := v.(type) {
		case time.Time:
			return timeValue(t)
		case string:
			if ts, err := time.Parse(timestampFormat, t); err == nil {
				return timeValue(ts)
			}
		case []byte:
			if ts, err := time.Parse(timestampFormat, string(t)); err == nil {
				return timeValue(ts)
			}
		}
	}
	log.Printf("sqldata: cannot decode %T as %s for column %s, decoding as null", v, kind, name)
	return nullValue()
}

// decodeDynamic falls back to the dynamic type of the scanned value for
// columns without a declared type, typically computed or expression
// columns.
func decodeDynamic(v any) Value {
	switch t := v.(type) {
	case int64:
		return intValue(t)
	case float64:
		return realValue(t)
	case bool:
		return boolValue(t)
	case []byte:
		return blobValue(append([]byte(nil), t...))
	case string:
		return textValue(t)
	case time.Time:
		return timeValue(t)
	default:
		log.Printf("sqldata: unsupported dynamic column type %T, decoding as null", v)
		return nullValue()
	}
}
