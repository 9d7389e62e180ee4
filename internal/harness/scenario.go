package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/reframe/internal/table"
)

// Scenario defines a conformance scenario: input tables, a pipeline of
// verb steps, and the expected surviving tag per step.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Tables declares the named input tables.
	Tables []TableDef `yaml:"tables"`

	// Steps is the pipeline. Steps run in order; each result is bound to
	// its "as" name and visible to later steps.
	Steps []Step `yaml:"steps"`
}

// TableDef declares one named input table, optionally cast up to a
// registered variant.
type TableDef struct {
	// Name binds the table for later steps.
	Name string `yaml:"name"`

	// Variant is the tag to cast the table up to. Empty means base. The
	// cast must succeed; a scenario input that does not satisfy its own
	// variant is a scenario bug, not a test outcome.
	Variant string `yaml:"variant,omitempty"`

	// Columns is the table content in interchange form.
	Columns []table.ColumnDoc `yaml:"columns"`
}

// Step is one verb invocation in the pipeline.
type Step struct {
	// Op is one of: row_slice, col_modify, concat, reconstruct.
	Op string `yaml:"op"`

	// Input names the operand for row_slice, col_modify, reconstruct.
	Input string `yaml:"input,omitempty"`

	// Left and Right name the operands for concat.
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`

	// Selector is the row selector for row_slice.
	Selector []int `yaml:"selector,omitempty"`

	// Updates are columns to add or overwrite for col_modify.
	Updates []table.ColumnDoc `yaml:"updates,omitempty"`

	// Template names the instance whose variant a reconstruct step
	// checks the input against. Defaults to the input itself.
	Template string `yaml:"template,omitempty"`

	// As binds the result for later steps. Defaults to the input name
	// (rebinding it); required for concat, which has no single input.
	As string `yaml:"as,omitempty"`

	// ExpectTag asserts the surviving tag. Empty means no assertion.
	ExpectTag string `yaml:"expect_tag,omitempty"`
}

// ValidOps defines the allowed step operations.
var ValidOps = map[string]bool{
	"row_slice":   true,
	"col_modify":  true,
	"concat":      true,
	"reconstruct": true,
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var s Scenario
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// file name for deterministic test ordering.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	var scenarios []*Scenario
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", dir)
	}
	return scenarios, nil
}

// Validate checks scenario structure before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Tables) == 0 {
		return fmt.Errorf("at least one table is required")
	}
	names := make(map[string]bool)
	for i, td := range s.Tables {
		if td.Name == "" {
			return fmt.Errorf("table %d: name is required", i)
		}
		if names[td.Name] {
			return fmt.Errorf("duplicate table name %q", td.Name)
		}
		names[td.Name] = true
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, st := range s.Steps {
		if !ValidOps[st.Op] {
			return fmt.Errorf("step %d: invalid op %q", i, st.Op)
		}
		switch st.Op {
		case "concat":
			if st.Left == "" || st.Right == "" {
				return fmt.Errorf("step %d: concat requires left and right", i)
			}
			if st.As == "" {
				return fmt.Errorf("step %d: concat requires as", i)
			}
		default:
			if st.Input == "" {
				return fmt.Errorf("step %d: %s requires input", i, st.Op)
			}
		}
	}
	return nil
}
