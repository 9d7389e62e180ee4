package verbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

func concatFixture(t *testing.T) (*variant.Registry, *lattice.Lattice) {
	t.Helper()
	reg := variant.NewRegistry()
	require.NoError(t, reg.Register(ordersVariant()))
	require.NoError(t, reg.Register(variant.NewGrouped("grouped", "region")))
	return reg, lattice.New(reg)
}

func TestConcatDisjointKeysKeepsVariant(t *testing.T) {
	_, l := concatFixture(t)
	p1 := ordersInstance(t, 1, 2, 3)
	p2 := ordersInstance(t, 4, 5)

	got, err := Concat(l, p1, p2)
	require.NoError(t, err)
	assert.Equal(t, variant.Tag("orders"), got.Tag())
	assert.Equal(t, 5, got.Table.NumRows())
}

func TestConcatSelfDemotesOnDuplicateKeys(t *testing.T) {
	_, l := concatFixture(t)
	p1 := ordersInstance(t, 1, 2, 3)

	got, err := Concat(l, p1, p1)
	require.NoError(t, err)
	assert.Equal(t, variant.TagBase, got.Tag())
	assert.Equal(t, 6, got.Table.NumRows(), "content survives the demotion")
}

func TestConcatMixedTagsResolveToBase(t *testing.T) {
	reg, l := concatFixture(t)
	p1 := ordersInstance(t, 1, 2)

	gv, ok := reg.Lookup("grouped")
	require.True(t, ok)
	// A grouped instance over the same column layout.
	g := variant.Reconstruct(p1.Table, &variant.Instance{
		Table:   p1.Table,
		Variant: gv,
		Meta:    variant.Meta{GroupKeys: []string{"region"}},
	})
	require.Equal(t, variant.Tag("grouped"), g.Tag())

	got, err := Concat(l, p1, g)
	require.NoError(t, err)
	assert.Equal(t, variant.TagBase, got.Tag(), "distinct variants combine at base")
	assert.Equal(t, 4, got.Table.NumRows())
}

func TestConcatWithBase(t *testing.T) {
	_, l := concatFixture(t)
	p1 := ordersInstance(t, 1, 2)
	bare := variant.NewBase(p1.Table)

	got, err := Concat(l, p1, bare)
	require.NoError(t, err)
	assert.Equal(t, variant.TagBase, got.Tag())
}

func TestConcatStructuralMismatchErrors(t *testing.T) {
	_, l := concatFixture(t)
	p1 := ordersInstance(t, 1, 2)

	other, err := table.New(col(t, "unrelated", table.KindInt, table.Int(1)))
	require.NoError(t, err)

	_, err = Concat(l, p1, variant.NewBase(other))
	require.Error(t, err)
	assert.NotEqual(t, "", err.Error())
}

func TestConcatSameGroupedTagMergesMeta(t *testing.T) {
	reg, l := concatFixture(t)
	gv, ok := reg.Lookup("grouped")
	require.True(t, ok)

	mk := func(region string) *variant.Instance {
		payload := tbl(t,
			col(t, "region", table.KindString, table.String(region)),
			col(t, "x", table.KindInt, table.Int(1)),
		)
		inst := variant.Reconstruct(payload, &variant.Instance{
			Table:   payload,
			Variant: gv,
			Meta:    variant.Meta{GroupKeys: []string{"region"}},
		})
		require.Equal(t, variant.Tag("grouped"), inst.Tag())
		return inst
	}

	got, err := Concat(l, mk("eu"), mk("us"))
	require.NoError(t, err)
	assert.Equal(t, variant.Tag("grouped"), got.Tag())
	assert.Equal(t, []string{"region"}, got.Meta.GroupKeys)
	assert.Equal(t, 2, got.Table.NumRows())
}

func TestConcatGroupedDifferingKeysMergesKeys(t *testing.T) {
	reg, l := concatFixture(t)
	gv, ok := reg.Lookup("grouped")
	require.True(t, ok)

	mk := func(keys ...string) *variant.Instance {
		payload := tbl(t,
			col(t, "region", table.KindString, table.String("eu")),
			col(t, "channel", table.KindString, table.String("web")),
			col(t, "x", table.KindInt, table.Int(1)),
		)
		inst := variant.Reconstruct(payload, &variant.Instance{
			Table:   payload,
			Variant: gv,
			Meta:    variant.Meta{GroupKeys: keys},
		})
		require.Equal(t, variant.Tag("grouped"), inst.Tag())
		return inst
	}

	got, err := Concat(l, mk("region"), mk("channel"))
	require.NoError(t, err)
	assert.Equal(t, variant.Tag("grouped"), got.Tag())
	assert.Equal(t, []string{"region", "channel"}, got.Meta.GroupKeys,
		"both operands' keys survive, left operand's first")
}
