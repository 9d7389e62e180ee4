package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

func TestColumnBuilders(t *testing.T) {
	tbl := MustTable(t,
		IntCol("id", 1, 2, nil),
		FloatCol("amount", 10.5, nil, 30.5),
		StringCol("region", "east", "west", nil),
		BoolCol("active", true, nil, false),
	)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 4, tbl.NumColumns())

	v, ok := tbl.Cell(2, "id")
	require.True(t, ok)
	assert.Equal(t, table.Null{}, v)

	v, ok = tbl.Cell(0, "amount")
	require.True(t, ok)
	assert.Equal(t, table.Float(10.5), v)
}

func TestIntColRejectsWrongType(t *testing.T) {
	assert.Panics(t, func() { IntCol("id", "nope") })
}

func TestMustCast(t *testing.T) {
	reg := variant.NewRegistry()
	require.NoError(t, reg.Register(variant.NewKeyed("orders", "id", table.KindInt)))
	lat := lattice.New(reg)

	inst := MustCast(t, lat, MustTable(t, IntCol("id", 1, 2, 3)), "orders")
	assert.Equal(t, variant.Tag("orders"), inst.Tag())
}
