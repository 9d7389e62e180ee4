package table

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Doc is the interchange representation of a table, used by the catalog
// payload format and the CLI/harness loaders. Cells use plain Go values;
// nil encodes a missing cell.
type Doc struct {
	Columns []ColumnDoc `json:"columns" yaml:"columns"`
}

// ColumnDoc is the interchange representation of a single column.
type ColumnDoc struct {
	Name  string `json:"name" yaml:"name"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Cells []any  `json:"cells" yaml:"cells"`
}

// ToDoc converts a table to its interchange representation.
func ToDoc(t *Table) Doc {
	doc := Doc{Columns: make([]ColumnDoc, t.NumColumns())}
	for i, c := range t.cols {
		cells := make([]any, len(c.Cells))
		for j, v := range c.Cells {
			switch val := v.(type) {
			case Null:
				cells[j] = nil
			case Int:
				cells[j] = int64(val)
			case Float:
				cells[j] = float64(val)
			case String:
				cells[j] = string(val)
			case Bool:
				cells[j] = bool(val)
			}
		}
		doc.Columns[i] = ColumnDoc{Name: c.Name, Kind: c.Kind, Cells: cells}
	}
	return doc
}

// FromDoc converts an interchange document back into a table.
// Numeric cells accept any Go integer or float type (YAML and JSON decode
// numbers differently); int cells reject fractional floats.
func FromDoc(doc Doc) (*Table, error) {
	cols := make([]Column, 0, len(doc.Columns))
	for _, cd := range doc.Columns {
		cells := make([]Value, len(cd.Cells))
		for i, raw := range cd.Cells {
			v, err := cellFromAny(cd.Kind, raw)
			if err != nil {
				return nil, fmt.Errorf("column %q cell %d: %w", cd.Name, i, err)
			}
			cells[i] = v
		}
		col, err := NewColumn(cd.Name, cd.Kind, cells...)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Unmarshal decodes a table from its interchange JSON form.
func Unmarshal(data []byte) (*Table, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var doc Doc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	return FromDoc(doc)
}

func cellFromAny(kind Kind, raw any) (Value, error) {
	if raw == nil {
		return Null{}, nil
	}
	switch kind {
	case KindInt:
		n, ok := toInt64(raw)
		if !ok {
			return nil, fmt.Errorf("%v is not an integer", raw)
		}
		return Int(n), nil
	case KindFloat:
		f, ok := toFloat64(raw)
		if !ok {
			return nil, fmt.Errorf("%v is not a number", raw)
		}
		return Float(f), nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%v is not a string", raw)
		}
		return String(s), nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%v is not a bool", raw)
		}
		return Bool(b), nil
	default:
		return nil, fmt.Errorf("invalid column kind %q", kind)
	}
}

func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
