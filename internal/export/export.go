// Package export renders tabular report views as JSON documents or CSV text.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"

	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// Cell is a named value of a row.
type Cell struct {
	Name  string
	Value any
}

// Row keeps its cells in column order, so JSON objects and CSV columns line up.
type Row []Cell

// MarshalJSON encodes the row as an object with keys in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the JSON export envelope.
type Document struct {
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	Rows        []Row     `json:"rows"`
}

// JSON renders rows inside a Document.
func JSON(reportType string, generatedAt time.Time, rows []Row) ([]byte, error) {
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(Document{Type: reportType, GeneratedAt: generatedAt.UTC(), Rows: rows})
}

// CSV renders rows as comma separated text. The header comes from the column
// names of the first row; later rows are written positionally. No rows gives
// an empty body.
func CSV(rows []Row) []byte {
	if len(rows) == 0 {
		return []byte{}
	}
	var b strings.Builder
	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = EscapeCSV(c.Name)
	}
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, r := range rows {
		fields := make([]string, len(r))
		for i, c := range r {
			fields[i] = EscapeCSV(FormatValue(c.Value))
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// EscapeCSV quotes a field only when it contains a comma, a double quote or
// a line break. Inner quotes are doubled.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatValue is the text form of a cell value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// Render dispatches on format and returns the content type with the body.
func Render(reportType, format string, generatedAt time.Time, rows []Row) (string, []byte, error) {
	switch format {
	case "", FormatJSON:
		body, err := JSON(reportType, generatedAt, rows)
		if err != nil {
			return "", nil, err
		}
		return ContentTypeJSON, body, nil
	case FormatCSV:
		return ContentTypeCSV, CSV(rows), nil
	default:
		return "", nil, fmt.Errorf("unknown export format %q", format)
	}
}
