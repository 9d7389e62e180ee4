package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reframe/internal/harness"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	VariantsDir string
}

// RunReport is the JSON payload for scenario execution.
type RunReport struct {
	Scenario string               `json:"scenario"`
	Passed   bool                 `json:"passed"`
	Trace    []harness.TraceEvent `json:"trace"`
	Failures []string             `json:"failures,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a conformance scenario",
		Long: `Run a YAML scenario: load its tables, execute its verb pipeline, and
check each step's expected surviving tag. Exits 1 if any expectation is
violated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.VariantsDir, "variants", "", "directory of CUE variant definitions")
	_ = cmd.MarkFlagRequired("variants")
	return cmd
}

func runScenario(rootOpts *RootOptions, opts *RunOptions, scenarioPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	loaded, verrs, err := LoadVariants(opts.VariantsDir)
	if err != nil {
		return commandError(formatter, err)
	}
	if err := requireCleanVariants(verrs); err != nil {
		return commandError(formatter, err)
	}

	scenario, err := harness.LoadScenario(scenarioPath)
	if err != nil {
		return commandError(formatter, &LoadError{Code: ErrCodeBadTable, Message: err.Error()})
	}
	formatter.VerboseLog("Running scenario %q (%d step(s))", scenario.Name, len(scenario.Steps))

	result, err := harness.Run(scenario, loaded.Lattice)
	if err != nil {
		return commandError(formatter, err)
	}
	return outputRunResult(formatter, result)
}

func outputRunResult(formatter *OutputFormatter, result *harness.Result) error {
	report := RunReport{
		Scenario: result.Scenario.Name,
		Passed:   result.Passed(),
		Trace:    result.Trace,
		Failures: result.Failures,
	}

	if formatter.Format == "json" {
		if report.Passed {
			if err := formatter.Success(report); err != nil {
				return err
			}
		} else {
			response := CLIResponse{
				Status: "error",
				Data:   report,
				Error: &CLIError{
					Code:    ErrCodeGeneric,
					Message: report.Failures[0],
				},
			}
			if err := json.NewEncoder(formatter.Writer).Encode(response); err != nil {
				return err
			}
		}
	} else {
		fmt.Fprintf(formatter.Writer, "scenario: %s\n", report.Scenario)
		for _, ev := range report.Trace {
			fmt.Fprintf(formatter.Writer, "  step %d %s [%s] -> %s (%d row(s), %d col(s))\n",
				ev.Step, ev.Op, ev.InputTags, ev.ResultTag, ev.Rows, ev.Columns)
		}
		if report.Passed {
			fmt.Fprintln(formatter.Writer, "✓ passed")
		} else {
			fmt.Fprintln(formatter.Writer, "✗ failed")
			for _, f := range report.Failures {
				fmt.Fprintf(formatter.Writer, "  %s\n", f)
			}
		}
	}

	if !report.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed with %d violation(s)", report.Scenario, len(report.Failures)))
	}
	return nil
}
