package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reframe/internal/table"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: minimal
tables:
  - name: t
    columns:
      - name: x
        kind: int
        cells: [1, 2]
steps:
  - op: row_slice
    input: t
    selector: [0]
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Tables, 1)
	assert.Equal(t, []any{1, 2}, s.Tables[0].Columns[0].Cells)
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: bad
surprise: true
tables:
  - name: t
    columns: []
steps:
  - op: row_slice
    input: t
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestScenarioValidate(t *testing.T) {
	okTable := []TableDef{{Name: "t", Columns: []table.ColumnDoc{{Name: "x", Kind: table.KindInt, Cells: []any{1}}}}}

	tests := []struct {
		name    string
		s       Scenario
		wantErr string
	}{
		{"missing_name", Scenario{Tables: okTable, Steps: []Step{{Op: "row_slice", Input: "t"}}}, "name is required"},
		{"no_tables", Scenario{Name: "s", Steps: []Step{{Op: "row_slice", Input: "t"}}}, "at least one table"},
		{"duplicate_table", Scenario{Name: "s", Tables: append(append([]TableDef{}, okTable...), okTable...),
			Steps: []Step{{Op: "row_slice", Input: "t"}}}, "duplicate table"},
		{"no_steps", Scenario{Name: "s", Tables: okTable}, "at least one step"},
		{"bad_op", Scenario{Name: "s", Tables: okTable, Steps: []Step{{Op: "join", Input: "t"}}}, "invalid op"},
		{"concat_missing_operand", Scenario{Name: "s", Tables: okTable, Steps: []Step{{Op: "concat", Left: "t"}}}, "left and right"},
		{"concat_missing_binding", Scenario{Name: "s", Tables: okTable, Steps: []Step{{Op: "concat", Left: "t", Right: "t"}}}, "requires as"},
		{"missing_input", Scenario{Name: "s", Tables: okTable, Steps: []Step{{Op: "row_slice"}}}, "requires input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarioDirSorted(t *testing.T) {
	dir := t.TempDir()
	mk := func(file, name string) {
		content := `
name: ` + name + `
tables:
  - name: t
    columns:
      - name: x
        kind: int
        cells: [1]
steps:
  - op: row_slice
    input: t
    selector: [0]
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
	mk("b.yaml", "second")
	mk("a.yaml", "first")

	scenarios, err := LoadScenarioDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestLoadScenarioDirEmpty(t *testing.T) {
	_, err := LoadScenarioDir(t.TempDir())
	require.Error(t, err)
}
