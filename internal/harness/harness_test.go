package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// testLattice covers every variant the committed scenarios reference.
func testLattice(t *testing.T) *lattice.Lattice {
	t.Helper()
	reg := variant.NewRegistry()
	require.NoError(t, reg.Register(variant.NewKeyed("orders", "id", table.KindInt,
		variant.ColumnSpec{Name: "amount", Kind: table.KindFloat})))
	require.NoError(t, reg.Register(variant.NewPartition("decile")))
	return lattice.New(reg)
}

func TestScenariosGolden(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)

	lat := testLattice(t)
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			RunWithGolden(t, s, lat)
		})
	}
}

func TestRunReportsExpectationFailure(t *testing.T) {
	s := &Scenario{
		Name: "wrong-expectation",
		Tables: []TableDef{{
			Name:    "t",
			Variant: "orders",
			Columns: []table.ColumnDoc{
				{Name: "id", Kind: table.KindInt, Cells: []any{1, 2}},
				{Name: "amount", Kind: table.KindFloat, Cells: []any{1.0, 2.0}},
			},
		}},
		Steps: []Step{{
			Op:        "row_slice",
			Input:     "t",
			Selector:  []int{0},
			ExpectTag: "base", // slicing a valid subset actually keeps "orders"
		}},
	}
	require.NoError(t, s.Validate())

	result, err := Run(s, testLattice(t))
	require.NoError(t, err)
	assert.False(t, result.Passed())
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], `expected tag "base"`)
}

func TestRunRebindsStepResults(t *testing.T) {
	s := &Scenario{
		Name: "rebind",
		Tables: []TableDef{{
			Name:    "t",
			Variant: "orders",
			Columns: []table.ColumnDoc{
				{Name: "id", Kind: table.KindInt, Cells: []any{1, 2, 3}},
				{Name: "amount", Kind: table.KindFloat, Cells: []any{1.0, 2.0, 3.0}},
			},
		}},
		Steps: []Step{
			{Op: "row_slice", Input: "t", Selector: []int{0, 1}, As: "head"},
			{Op: "row_slice", Input: "head", Selector: []int{0}, ExpectTag: "orders"},
		},
	}
	require.NoError(t, s.Validate())

	result, err := Run(s, testLattice(t))
	require.NoError(t, err)
	assert.True(t, result.Passed())
	require.Len(t, result.Trace, 2)
	assert.Equal(t, 1, result.Trace[1].Rows)
}

func TestRunErrorsOnUnknownTable(t *testing.T) {
	s := &Scenario{
		Name:   "missing-table",
		Tables: []TableDef{{Name: "t", Columns: []table.ColumnDoc{{Name: "x", Kind: table.KindInt, Cells: []any{1}}}}},
		Steps:  []Step{{Op: "row_slice", Input: "nope", Selector: []int{0}}},
	}
	require.NoError(t, s.Validate())

	_, err := Run(s, testLattice(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown table "nope"`)
}

func TestRunErrorsOnBadInputCast(t *testing.T) {
	s := &Scenario{
		Name: "bad-cast",
		Tables: []TableDef{{
			Name:    "t",
			Variant: "orders",
			// Duplicate keys cannot claim the keyed variant at setup.
			Columns: []table.ColumnDoc{
				{Name: "id", Kind: table.KindInt, Cells: []any{1, 1}},
				{Name: "amount", Kind: table.KindFloat, Cells: []any{1.0, 2.0}},
			},
		}},
		Steps: []Step{{Op: "row_slice", Input: "t", Selector: []int{0}}},
	}
	require.NoError(t, s.Validate())

	_, err := Run(s, testLattice(t))
	require.Error(t, err)
}
