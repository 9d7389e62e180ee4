package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reframe/internal/verbs"
)

// ConcatOptions holds flags for the concat command.
type ConcatOptions struct {
	VariantsDir string
}

// NewConcatCommand creates the concat command.
func NewConcatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConcatOptions{}
	cmd := &cobra.Command{
		Use:   "concat <left.yaml> <right.yaml>",
		Short: "Concatenate two tables under their common variant",
		Long: `Concatenate two tables row-wise.

Both inputs are cast to their common type, combined, and the result is
reconstructed: it keeps the common tag only if the combined rows still
satisfy its invariants, otherwise it comes back as base.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.VariantsDir, "variants", "", "directory of CUE variant definitions")
	_ = cmd.MarkFlagRequired("variants")
	return cmd
}

func runConcat(rootOpts *RootOptions, opts *ConcatOptions, leftPath, rightPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	loaded, verrs, err := LoadVariants(opts.VariantsDir)
	if err != nil {
		return commandError(formatter, err)
	}
	if err := requireCleanVariants(verrs); err != nil {
		return commandError(formatter, err)
	}

	left, err := LoadTable(leftPath, loaded.Lattice)
	if err != nil {
		return commandError(formatter, err)
	}
	right, err := LoadTable(rightPath, loaded.Lattice)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.VerboseLog("Concat %s (%s) + %s (%s)", leftPath, left.Tag(), rightPath, right.Tag())

	out, err := verbs.Concat(loaded.Lattice, left, right)
	if err != nil {
		return commandError(formatter, err)
	}
	return outputInstance(formatter, out)
}
