package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reframe/internal/catalog"
)

// SnapshotOptions holds flags shared by the snapshot subcommands.
type SnapshotOptions struct {
	CatalogPath string
	VariantsDir string
}

// SnapshotResult is the JSON payload for snapshot save.
type SnapshotResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage the snapshot catalog",
		Long: `Save tagged tables to a SQLite catalog and load them back.

A stored tag is a claim, not a fact: loading revalidates the payload
against the current variant definitions and demotes to base when the
invariant no longer holds.`,
	}
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "reframe.db", "catalog database path")
	cmd.PersistentFlags().StringVar(&opts.VariantsDir, "variants", "", "directory of CUE variant definitions")

	cmd.AddCommand(newSnapshotSaveCommand(rootOpts, opts))
	cmd.AddCommand(newSnapshotLoadCommand(rootOpts, opts))
	cmd.AddCommand(newSnapshotListCommand(rootOpts, opts))
	return cmd
}

func newSnapshotSaveCommand(rootOpts *RootOptions, opts *SnapshotOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:           "save <table.yaml>",
		Short:         "Save a tagged table under a name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotSave(rootOpts, opts, name, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "snapshot name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSnapshotLoadCommand(rootOpts *RootOptions, opts *SnapshotOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "load <name>",
		Short:         "Load the latest snapshot under a name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotLoad(rootOpts, opts, args[0], cmd)
		},
	}
	return cmd
}

func newSnapshotListCommand(rootOpts *RootOptions, opts *SnapshotOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the latest snapshot per name",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotList(rootOpts, opts, cmd)
		},
	}
	return cmd
}

func runSnapshotSave(rootOpts *RootOptions, opts *SnapshotOptions, name, tablePath string, cmd *cobra.Command) error {
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

	cat, err := catalog.Open(opts.CatalogPath)
	if err != nil {
		return commandError(formatter, err)
	}
	defer cat.Close()

	id, err := cat.Save(cmd.Context(), name, inst)
	if err != nil {
		return commandError(formatter, err)
	}
	formatter.VerboseLog("Saved snapshot %s", id)

	if formatter.Format == "json" {
		return formatter.Success(SnapshotResult{ID: id, Name: name, Tag: string(inst.Tag())})
	}
	fmt.Fprintf(formatter.Writer, "saved %s as %s (tag: %s)\n", name, id, inst.Tag())
	return nil
}

func runSnapshotLoad(rootOpts *RootOptions, opts *SnapshotOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	loaded, verrs, err := LoadVariants(opts.VariantsDir)
	if err != nil {
		return commandError(formatter, err)
	}
	if err := requireCleanVariants(verrs); err != nil {
		return commandError(formatter, err)
	}

	cat, err := catalog.Open(opts.CatalogPath)
	if err != nil {
		return commandError(formatter, err)
	}
	defer cat.Close()

	inst, err := cat.Load(cmd.Context(), name, loaded.Registry)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return commandError(formatter, &LoadError{
				Code: ErrCodeNotFound, Message: fmt.Sprintf("snapshot %q not found", name),
			})
		}
		return commandError(formatter, err)
	}
	return outputInstance(formatter, inst)
}

func runSnapshotList(rootOpts *RootOptions, opts *SnapshotOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cat, err := catalog.Open(opts.CatalogPath)
	if err != nil {
		return commandError(formatter, err)
	}
	defer cat.Close()

	snaps, err := cat.List(cmd.Context())
	if err != nil {
		return commandError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(snaps)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(formatter.Writer, "no snapshots")
		return nil
	}
	for _, s := range snaps {
		fmt.Fprintf(formatter.Writer, "%s  %s  tag: %s\n", s.ID, s.Name, s.VariantTag)
	}
	return nil
}
