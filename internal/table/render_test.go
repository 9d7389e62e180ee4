package table

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestRenderGolden(t *testing.T) {
	tbl, err := New(
		mustCol(t, "id", KindInt, Int(1), Int(2), Int(3)),
		mustCol(t, "name", KindString, String("ann"), String("bo"), Null{}),
		mustCol(t, "ok", KindBool, Bool(true), Bool(false), Bool(true)),
	)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render_basic", []byte(RenderString(tbl)))
}

func TestRenderEmptyTable(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	require.Equal(t, "(empty table)\n", RenderString(tbl))
}
