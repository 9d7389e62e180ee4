package harness

import (
	"fmt"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
	"github.com/roach88/reframe/internal/verbs"
)

// TraceEvent records the supervisor's decision for one step.
type TraceEvent struct {
	Step      int    `json:"step"`
	Op        string `json:"op"`
	InputTags string `json:"input_tags"`
	ResultTag string `json:"result_tag"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

// Result holds a scenario execution outcome.
type Result struct {
	Scenario *Scenario
	Trace    []TraceEvent

	// Failures lists expect_tag violations. Empty means the scenario
	// passed.
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run executes a scenario's pipeline against a lattice (and its registry).
// Errors are environment or scenario bugs (bad selectors, unknown names);
// expectation violations land in Result.Failures instead.
func Run(s *Scenario, lat *lattice.Lattice) (*Result, error) {
	bindings := make(map[string]*variant.Instance, len(s.Tables))
	for _, td := range s.Tables {
		inst, err := buildInput(td, lat)
		if err != nil {
			return nil, err
		}
		bindings[td.Name] = inst
	}

	res := &Result{Scenario: s}
	for i, st := range s.Steps {
		out, inputTags, err := runStep(st, bindings, lat)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}

		event := TraceEvent{
			Step:      i,
			Op:        st.Op,
			InputTags: inputTags,
			ResultTag: string(out.Tag()),
			Rows:      out.Table.NumRows(),
			Columns:   out.Table.NumColumns(),
		}
		res.Trace = append(res.Trace, event)

		if st.ExpectTag != "" && st.ExpectTag != string(out.Tag()) {
			res.Failures = append(res.Failures, fmt.Sprintf(
				"step %d (%s): expected tag %q, got %q", i, st.Op, st.ExpectTag, out.Tag()))
		}

		name := st.As
		if name == "" {
			name = st.Input
		}
		if name != "" {
			bindings[name] = out
		}
	}
	return res, nil
}

func buildInput(td TableDef, lat *lattice.Lattice) (*variant.Instance, error) {
	tbl, err := table.FromDoc(table.Doc{Columns: td.Columns})
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", td.Name, err)
	}
	inst := variant.NewBase(tbl)
	if td.Variant == "" {
		return inst, nil
	}
	cast, err := lat.Cast(inst, variant.Tag(td.Variant))
	if err != nil {
		return nil, fmt.Errorf("table %q: cast to %q: %w", td.Name, td.Variant, err)
	}
	return cast, nil
}

func runStep(st Step, bindings map[string]*variant.Instance, lat *lattice.Lattice) (*variant.Instance, string, error) {
	lookup := func(name string) (*variant.Instance, error) {
		inst, ok := bindings[name]
		if !ok {
			return nil, fmt.Errorf("unknown table %q", name)
		}
		return inst, nil
	}

	switch st.Op {
	case "row_slice":
		in, err := lookup(st.Input)
		if err != nil {
			return nil, "", err
		}
		out, err := verbs.RowSlice(in, st.Selector)
		return out, string(in.Tag()), err

	case "col_modify":
		in, err := lookup(st.Input)
		if err != nil {
			return nil, "", err
		}
		updates, err := columnsFromDocs(st.Updates)
		if err != nil {
			return nil, "", err
		}
		out, err := verbs.ColModify(in, updates)
		return out, string(in.Tag()), err

	case "concat":
		left, err := lookup(st.Left)
		if err != nil {
			return nil, "", err
		}
		right, err := lookup(st.Right)
		if err != nil {
			return nil, "", err
		}
		out, err := verbs.Concat(lat, left, right)
		return out, fmt.Sprintf("%s+%s", left.Tag(), right.Tag()), err

	case "reconstruct":
		in, err := lookup(st.Input)
		if err != nil {
			return nil, "", err
		}
		template := in
		if st.Template != "" {
			if template, err = lookup(st.Template); err != nil {
				return nil, "", err
			}
		}
		out := verbs.Reconstruct(in.Table, template)
		return out, string(template.Tag()), nil

	default:
		return nil, "", fmt.Errorf("invalid op %q", st.Op)
	}
}

func columnsFromDocs(docs []table.ColumnDoc) ([]table.Column, error) {
	// Round-trip through a single-column doc per update so cell decoding
	// matches the table loader exactly.
	cols := make([]table.Column, 0, len(docs))
	for _, cd := range docs {
		tbl, err := table.FromDoc(table.Doc{Columns: []table.ColumnDoc{cd}})
		if err != nil {
			return nil, err
		}
		col, ok := tbl.Column(cd.Name)
		if !ok {
			return nil, fmt.Errorf("update column %q not decoded", cd.Name)
		}
		cols = append(cols, col)
	}
	return cols, nil
}
