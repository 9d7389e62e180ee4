package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces deterministic JSON for a table, suitable for
// content-addressed identity and golden comparison.
//
// Properties:
//  1. Columns appear in display order under a fixed key layout.
//  2. Strings are NFC normalized before encoding.
//  3. No HTML escaping (< > & are NOT escaped).
//  4. Floats use the shortest round-trippable representation
//     (strconv 'g' with bitsize 64), so equal values encode identically.
func MarshalCanonical(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"columns":[`)
	for i, c := range t.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"name":`)
		if err := writeCanonicalString(&buf, c.Name); err != nil {
			return nil, err
		}
		buf.WriteString(`,"kind":`)
		if err := writeCanonicalString(&buf, string(c.Kind)); err != nil {
			return nil, err
		}
		buf.WriteString(`,"cells":[`)
		for j, v := range c.Cells {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalValue(&buf, v); err != nil {
				return nil, fmt.Errorf("column %q cell %d: %w", c.Name, j, err)
			}
		}
		buf.WriteString(`]}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

func writeCanonicalValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
		return nil
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Float:
		buf.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
		return nil
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
		return nil
	case String:
		return writeCanonicalString(buf, string(val))
	default:
		return fmt.Errorf("unknown cell type %T", v)
	}
}

// writeCanonicalString encodes an NFC-normalized string without HTML
// escaping. json.Encoder escapes < > & by default; SetEscapeHTML(false)
// disables that but appends a newline, which is trimmed here.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
