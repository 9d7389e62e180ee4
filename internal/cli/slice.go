package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reframe/internal/verbs"
)

// SliceOptions holds flags for the slice command.
type SliceOptions struct {
	VariantsDir string
	Rows        []int
}

// NewSliceCommand creates the slice command.
func NewSliceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SliceOptions{}
	cmd := &cobra.Command{
		Use:   "slice <table.yaml>",
		Short: "Select rows from a table, reconstructing its variant",
		Long: `Select rows by index, in the order given.

The result keeps the input's variant tag only if the surviving rows
still satisfy its invariants. Row-rigid variants demote on any selection
that is not the identity, including reorders.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlice(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.VariantsDir, "variants", "", "directory of CUE variant definitions")
	cmd.Flags().IntSliceVar(&opts.Rows, "rows", nil, "row indexes to keep, in order")
	_ = cmd.MarkFlagRequired("variants")
	_ = cmd.MarkFlagRequired("rows")
	return cmd
}

func runSlice(rootOpts *RootOptions, opts *SliceOptions, tablePath string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Slicing %d of %d row(s) from %s", len(opts.Rows), inst.Table.NumRows(), tablePath)

	out, err := verbs.RowSlice(inst, opts.Rows)
	if err != nil {
		return commandError(formatter, err)
	}
	return outputInstance(formatter, out)
}
