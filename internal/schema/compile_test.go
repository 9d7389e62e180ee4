package schema

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

func compileOne(t *testing.T, src, path string) *Def {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	def, err := CompileDef(v.LookupPath(cue.ParsePath(path)))
	require.NoError(t, err)
	return def
}

func TestCompileKeyedDef(t *testing.T) {
	def := compileOne(t, `
variant: orders: {
	family:   "keyed"
	key:      "id"
	key_kind: "int"
	signature: {amount: "float", region: "string"}
	no_missing: ["amount"]
}
`, "variant.orders")

	assert.Equal(t, "orders", def.Tag)
	assert.Equal(t, FamilyKeyed, def.Family)
	assert.Equal(t, "id", def.Key)
	assert.Equal(t, table.KindInt, def.KeyKind)
	assert.Equal(t, map[string]string{"amount": "float", "region": "string"}, def.Signature)
	assert.Equal(t, []string{"amount"}, def.NoMissing)
}

func TestCompileGroupedDef(t *testing.T) {
	def := compileOne(t, `
variant: by_region: {
	family:     "grouped"
	group_keys: ["region", "year"]
}
`, "variant.by_region")

	assert.Equal(t, "by_region", def.Tag)
	assert.Equal(t, FamilyGrouped, def.Family)
	assert.Equal(t, []string{"region", "year"}, def.GroupKeys)
}

func TestCompilePartitionDef(t *testing.T) {
	def := compileOne(t, `
variant: decile: {
	family:    "partition"
	row_rigid: true
}
`, "variant.decile")

	assert.Equal(t, "decile", def.Tag)
	assert.Equal(t, FamilyPartition, def.Family)
	assert.True(t, def.RowRigid)
}

func TestCompileMissingFamily(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`variant: broken: { key: "id" }`)
	require.NoError(t, v.Err())

	_, err := CompileDef(v.LookupPath(cue.ParsePath("variant.broken")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "family is required")
}

func TestCompileAll(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
variant: orders: {
	family:   "keyed"
	key:      "id"
	key_kind: "int"
}
variant: decile: {
	family: "partition"
}
`)
	require.NoError(t, v.Err())

	defs, err := CompileAll(v)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	tags := []string{defs[0].Tag, defs[1].Tag}
	assert.ElementsMatch(t, []string{"orders", "decile"}, tags)
}

func TestCompileAllNoVariants(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)
	require.NoError(t, v.Err())

	_, err := CompileAll(v)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		def      *Def
		wantCode string
	}{
		{"nil_def", nil, ErrDefNil},
		{"empty_tag", &Def{Family: FamilyCustom}, ErrTagEmpty},
		{"reserved_tag", &Def{Tag: "base", Family: FamilyCustom}, ErrTagReserved},
		{"bad_family", &Def{Tag: "x", Family: "fancy"}, ErrInvalidFamily},
		{"keyed_without_key", &Def{Tag: "x", Family: FamilyKeyed, KeyKind: table.KindInt}, ErrKeyedMissingKey},
		{"keyed_bad_kind", &Def{Tag: "x", Family: FamilyKeyed, Key: "id", KeyKind: "decimal"}, ErrInvalidKind},
		{"grouped_without_keys", &Def{Tag: "x", Family: FamilyGrouped}, ErrGroupedNoKeys},
		{"partition_with_key", &Def{Tag: "x", Family: FamilyPartition, Key: "id"}, ErrFamilyFieldMisuse},
		{"bad_signature_kind", &Def{Tag: "x", Family: FamilyCustom, Signature: map[string]string{"a": "decimal"}}, ErrInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.def)
			require.NotEmpty(t, errs)
			codes := make([]string, len(errs))
			for i, e := range errs {
				codes[i] = e.Code
			}
			assert.Contains(t, codes, tt.wantCode)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	def := &Def{Family: FamilyKeyed} // empty tag, missing key, bad key kind
	errs := Validate(def)
	assert.GreaterOrEqual(t, len(errs), 3)
}

func TestBuildKeyed(t *testing.T) {
	def := compileOne(t, `
variant: orders: {
	family:   "keyed"
	key:      "id"
	key_kind: "int"
	signature: {amount: "float"}
}
`, "variant.orders")

	v, err := Build(def)
	require.NoError(t, err)
	assert.Equal(t, variant.Tag("orders"), v.Tag)
	assert.Contains(t, v.NoMissing, "id")
	require.NotNil(t, v.Predicate)

	// The built variant behaves like the programmatic keyed family.
	idCol, err := table.NewColumn("id", table.KindInt, table.Int(1), table.Int(1))
	require.NoError(t, err)
	amtCol, err := table.NewColumn("amount", table.KindFloat, table.Float(1), table.Float(2))
	require.NoError(t, err)
	dup, err := table.New(idCol, amtCol)
	require.NoError(t, err)
	assert.False(t, variant.Check(dup, &variant.Instance{Table: dup, Variant: v}))
}

func TestBuildRejectsInvalidDef(t *testing.T) {
	_, err := Build(&Def{Tag: "x", Family: "fancy"})
	require.Error(t, err)
}

func TestBuildIntoRegistry(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
variant: orders: {
	family:   "keyed"
	key:      "id"
	key_kind: "int"
}
variant: by_region: {
	family:     "grouped"
	group_keys: ["region"]
}
`)
	require.NoError(t, v.Err())

	defs, err := CompileAll(v)
	require.NoError(t, err)

	reg := variant.NewRegistry()
	for _, def := range defs {
		built, err := Build(def)
		require.NoError(t, err)
		require.NoError(t, reg.Register(built))
	}
	assert.Equal(t, []variant.Tag{variant.TagBase, "by_region", "orders"}, reg.Tags())
}

func TestCompilePairs(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
common: [
	{a: "orders", b: "validated", result: "orders"},
	{a: "orders", b: "deciles", result: "base"},
]
`)
	require.NoError(t, v.Err())

	rules, err := CompilePairs(v)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, PairRule{A: "orders", B: "validated", Result: "orders"}, rules[0])
	assert.Equal(t, PairRule{A: "orders", B: "deciles", Result: "base"}, rules[1])
}

func TestCompilePairsAbsent(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`variant: orders: { family: "partition" }`)
	require.NoError(t, v.Err())

	rules, err := CompilePairs(v)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestCompilePairsMissingField(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`common: [{a: "orders", result: "base"}]`)
	require.NoError(t, v.Err())

	_, err := CompilePairs(v)
	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "common.b", compileErr.Field)
}
