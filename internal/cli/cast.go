package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/reframe/internal/lattice"
	"github.com/roach88/reframe/internal/variant"
)

// CastOptions holds flags for the cast command.
type CastOptions struct {
	VariantsDir string
	To          string
}

// NewCastCommand creates the cast command.
func NewCastCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CastOptions{}
	cmd := &cobra.Command{
		Use:   "cast <table.yaml>",
		Short: "Cast a table to a variant through the refinement lattice",
		Long: `Cast a table to a target variant.

Downcasts to base always succeed. Upcasts succeed only when the table
already satisfies the target's invariants; a refused upcast exits 1 with
a cast error rather than demoting silently.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCast(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.VariantsDir, "variants", "", "directory of CUE variant definitions")
	cmd.Flags().StringVar(&opts.To, "to", string(variant.TagBase), "target variant tag")
	_ = cmd.MarkFlagRequired("variants")
	return cmd
}

func runCast(rootOpts *RootOptions, opts *CastOptions, tablePath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	loaded, verrs, err := LoadVariants(opts.VariantsDir)
	if err != nil {
		return commandError(formatter, err)
	}
	if err := requireCleanVariants(verrs); err != nil {
		return commandError(formatter, err)
	}

	inst, err := LoadTable(tablePath, loaded.Lattice)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.VerboseLog("Loaded table %s as %s", tablePath, inst.Tag())

	out, err := loaded.Lattice.Cast(inst, variant.Tag(opts.To))
	if err != nil {
		var castErr *lattice.CastError
		if errors.As(err, &castErr) {
			_ = formatter.Error(string(castErr.Code), castErr.Error(), nil)
			return NewExitError(ExitFailure, castErr.Error())
		}
		return commandError(formatter, err)
	}
	return outputInstance(formatter, out)
}
