package schema

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/reframe/internal/table"
)

// CompileDef parses a CUE value into a variant definition.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the variant struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`variant: orders: { family: "keyed", ... }`)
//	def, err := CompileDef(v.LookupPath(cue.ParsePath("variant.orders")))
func CompileDef(v cue.Value) (*Def, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Def{}

	// Tag comes from the struct label (the path selector).
	// The label may be quoted in CUE, so strip quotes.
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Tag = strings.Trim(labels[len(labels)-1].String(), `"`)
	}

	// family (required)
	familyVal := v.LookupPath(cue.ParsePath("family"))
	if !familyVal.Exists() {
		return nil, &CompileError{
			Field:   "family",
			Message: "family is required (keyed|grouped|partition|custom)",
			Pos:     v.Pos(),
		}
	}
	family, err := familyVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	def.Family = Family(family)

	if def.Key, err = optionalString(v, "key"); err != nil {
		return nil, err
	}
	keyKind, err := optionalString(v, "key_kind")
	if err != nil {
		return nil, err
	}
	def.KeyKind = table.Kind(keyKind)

	if def.GroupKeys, err = optionalStringList(v, "group_keys"); err != nil {
		return nil, err
	}
	if def.NoMissing, err = optionalStringList(v, "no_missing"); err != nil {
		return nil, err
	}

	if def.RowRigid, err = optionalBool(v, "row_rigid"); err != nil {
		return nil, err
	}
	if def.ClosedColumns, err = optionalBool(v, "closed_columns"); err != nil {
		return nil, err
	}

	// signature (optional struct of name: kind)
	sigVal := v.LookupPath(cue.ParsePath("signature"))
	if sigVal.Exists() {
		def.Signature = make(map[string]string)
		iter, err := sigVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			kindName, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			def.Signature[iter.Label()] = kindName
		}
	}

	return def, nil
}

// CompileAll parses every definition under the "variant" field of a CUE
// value, in the order CUE yields them.
func CompileAll(v cue.Value) ([]*Def, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	variantVal := v.LookupPath(cue.ParsePath("variant"))
	if !variantVal.Exists() {
		return nil, &CompileError{
			Field:   "variant",
			Message: "no variant definitions found",
			Pos:     v.Pos(),
		}
	}
	iter, err := variantVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var defs []*Def
	for iter.Next() {
		def, err := CompileDef(iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// PairRule names the common supertype for one unordered pair of tags.
type PairRule struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Result string `json:"result"`
}

// CompilePairs parses the optional "common" list of pair rules. Absent
// means no explicit rules; distinct tags then meet at base.
func CompilePairs(v cue.Value) ([]PairRule, error) {
	commonVal := v.LookupPath(cue.ParsePath("common"))
	if !commonVal.Exists() {
		return nil, nil
	}
	iter, err := commonVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var rules []PairRule
	for iter.Next() {
		item := iter.Value()
		rule := PairRule{}
		for _, f := range []struct {
			name string
			dst  *string
		}{{"a", &rule.A}, {"b", &rule.B}, {"result", &rule.Result}} {
			fv := item.LookupPath(cue.ParsePath(f.name))
			if !fv.Exists() {
				return nil, &CompileError{
					Field:   "common." + f.name,
					Message: "pair rule requires a, b, and result",
					Pos:     item.Pos(),
				}
			}
			if *f.dst, err = fv.String(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalBool(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

func optionalStringList(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError reports a definition that could not be parsed.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
