// Package projection converts tabular SQL results into ordered JSON records.
//
// Drivers report value types per value, not per declared column, so the JSON
// encoding is chosen by inspecting each scanned value: timestamps become
// ISO-8601 strings, integers and floats become JSON numbers, booleans stay
// booleans, and everything else becomes a string. SQL NULL projects to the
// empty string.
package projection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Scanner is the subset of *sql.Rows the projector needs. Tests substitute
// in-memory fakes the same way repository stubs replace the database.
type Scanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Field is one named value of a record. Order within a Record mirrors the
// column order of the originating query.
type Field struct {
	Name  string
	Value any
}

// Record is a single row projected to key-ordered fields.
type Record []Field

// MarshalJSON writes the record as a JSON object preserving field order,
// which map-based encoding would lose.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Rows drains a result set into records, preserving row and column order.
// The returned slice is never nil so empty results encode as [].
func Rows(rows Scanner) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(Record, len(cols))
		for i, col := range cols {
			rec[i] = Field{Name: col, Value: convert(values[i])}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// convert maps one driver value to its JSON representation.
func convert(v any) any {
	switch v := v.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case bool:
		return v
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
