package schema

import (
	"fmt"
	"strings"

	"github.com/roach88/reframe/internal/table"
)

// Validation error codes (E200-E299)
const (
	ErrDefNil            = "E200" // nil definition
	ErrTagEmpty          = "E201" // tag is required
	ErrTagReserved       = "E202" // tag collides with the base table
	ErrInvalidFamily     = "E203" // unknown family
	ErrKeyedMissingKey   = "E204" // keyed family requires key and key_kind
	ErrInvalidKind       = "E205" // invalid column kind name
	ErrGroupedNoKeys     = "E206" // grouped family requires group_keys
	ErrEmptyColumnName   = "E207" // empty column name in signature or no_missing
	ErrFamilyFieldMisuse = "E208" // field not applicable to the family
)

// ValidationError represents a definition validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled definition against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(def *Def) []ValidationError {
	if def == nil {
		return []ValidationError{{Field: "def", Message: "definition is nil", Code: ErrDefNil}}
	}
	var errs []ValidationError

	if strings.TrimSpace(def.Tag) == "" {
		errs = append(errs, ValidationError{
			Field: "tag", Message: "tag is required and must be non-empty", Code: ErrTagEmpty,
		})
	}
	if def.Tag == "base" {
		errs = append(errs, ValidationError{
			Field: "tag", Message: `tag "base" is reserved for the untagged table`, Code: ErrTagReserved,
		})
	}

	if !ValidFamilies[def.Family] {
		errs = append(errs, ValidationError{
			Field:   "family",
			Message: fmt.Sprintf("unknown family %q (keyed|grouped|partition|custom)", def.Family),
			Code:    ErrInvalidFamily,
		})
		return errs // family-specific checks are meaningless without a family
	}

	switch def.Family {
	case FamilyKeyed:
		if strings.TrimSpace(def.Key) == "" {
			errs = append(errs, ValidationError{
				Field: "key", Message: "keyed family requires a key column", Code: ErrKeyedMissingKey,
			})
		}
		if !table.ValidKinds[def.KeyKind] {
			errs = append(errs, ValidationError{
				Field:   "key_kind",
				Message: fmt.Sprintf("invalid key kind %q", def.KeyKind),
				Code:    ErrInvalidKind,
			})
		}
	case FamilyGrouped:
		if len(def.GroupKeys) == 0 {
			errs = append(errs, ValidationError{
				Field: "group_keys", Message: "grouped family requires at least one group key", Code: ErrGroupedNoKeys,
			})
		}
	case FamilyPartition:
		// RowRigid is implied for partitions; declaring it is harmless.
		if def.Key != "" || len(def.GroupKeys) > 0 {
			errs = append(errs, ValidationError{
				Field:   "family",
				Message: "partition family takes neither key nor group_keys",
				Code:    ErrFamilyFieldMisuse,
			})
		}
	}

	for name, kindName := range def.Signature {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field: "signature", Message: "empty column name", Code: ErrEmptyColumnName,
			})
			continue
		}
		if !table.ValidKinds[table.Kind(kindName)] {
			errs = append(errs, ValidationError{
				Field:   "signature." + name,
				Message: fmt.Sprintf("invalid kind %q (int|float|string|bool)", kindName),
				Code:    ErrInvalidKind,
			})
		}
	}

	for _, name := range def.NoMissing {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field: "no_missing", Message: "empty column name", Code: ErrEmptyColumnName,
			})
		}
	}

	return errs
}
