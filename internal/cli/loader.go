package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/schema"
	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeScanError   = "E002" // directory scan error
	ErrCodeNoFiles     = "E003" // no CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeBadTable    = "E007" // table file unreadable or malformed
	ErrCodeCastFailed  = "E008" // input table refused by its declared variant
)

// LoadError represents an error that occurred while loading variant
// definitions or table files.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadResult carries everything a command needs after loading a
// variants directory.
type LoadResult struct {
	Defs      []*schema.Def
	Registry  *variant.Registry
	Lattice   *lattice.Lattice
	FileCount int
}

// LoadVariants compiles every CUE variant definition under dir, builds a
// registry from the valid ones, and wires the explicit common-type rules
// into a lattice. Per-definition validation errors come back alongside
// the result so validate can report all of them; a non-nil error means
// the directory itself could not be loaded.
func LoadVariants(dir string) (*LoadResult, []schema.ValidationError, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("variants directory not found: %s", dir)}
	}
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing variants directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	defs, err := schema.CompileAll(value)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}

	var verrs []schema.ValidationError
	reg := variant.NewRegistry()
	result := &LoadResult{Registry: reg, FileCount: len(cueFiles)}
	for _, def := range defs {
		if errs := schema.Validate(def); len(errs) > 0 {
			verrs = append(verrs, errs...)
			continue
		}
		v, err := schema.Build(def)
		if err != nil {
			verrs = append(verrs, schema.ValidationError{
				Field: "variant." + def.Tag, Message: err.Error(), Code: ErrCodeGeneric,
			})
			continue
		}
		if err := reg.Register(v); err != nil {
			verrs = append(verrs, schema.ValidationError{
				Field: "variant." + def.Tag, Message: err.Error(), Code: ErrCodeGeneric,
			})
			continue
		}
		result.Defs = append(result.Defs, def)
	}

	lat := lattice.New(reg)
	pairs, err := schema.CompilePairs(value)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	for _, p := range pairs {
		if err := lat.RegisterCommon(variant.Tag(p.A), variant.Tag(p.B), variant.Tag(p.Result)); err != nil {
			verrs = append(verrs, schema.ValidationError{
				Field: "common", Message: err.Error(), Code: ErrCodeGeneric,
			})
		}
	}
	if err := lat.Validate(); err != nil {
		verrs = append(verrs, schema.ValidationError{
			Field: "common", Message: err.Error(), Code: ErrCodeGeneric,
		})
	}
	result.Lattice = lat
	return result, verrs, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// TableFile is the YAML form commands read tables from. Variant, when
// set, is the tag to cast the table up to after loading.
type TableFile struct {
	Name    string            `yaml:"name,omitempty"`
	Variant string            `yaml:"variant,omitempty"`
	Columns []table.ColumnDoc `yaml:"columns"`
}

// LoadTable reads a YAML table file and casts it up to its declared
// variant through the lattice. A table that does not satisfy its own
// declared variant is an input error, not a demotion.
func LoadTable(path string, lat *lattice.Lattice) (*variant.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("read table: %v", err)}
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var tf TableFile
	if err := decoder.Decode(&tf); err != nil {
		return nil, &LoadError{Code: ErrCodeBadTable, Message: fmt.Sprintf("parse table %s: %v", path, err)}
	}
	tbl, err := table.FromDoc(table.Doc{Columns: tf.Columns})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadTable, Message: fmt.Sprintf("table %s: %v", path, err)}
	}

	inst := variant.NewBase(tbl)
	if tf.Variant == "" || tf.Variant == string(variant.TagBase) {
		return inst, nil
	}
	cast, err := lat.Cast(inst, variant.Tag(tf.Variant))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCastFailed, Message: fmt.Sprintf("table %s: cast to %q: %v", path, tf.Variant, err)}
	}
	return cast, nil
}

// requireCleanVariants converts definition-level validation errors into
// a single load error for commands that need a usable registry.
func requireCleanVariants(verrs []schema.ValidationError) error {
	if len(verrs) == 0 {
		return nil
	}
	return &LoadError{
		Code:    ErrCodeBuildFailed,
		Message: fmt.Sprintf("%d invalid variant definition(s); run validate for details", len(verrs)),
	}
}
