package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zeu5/policy-iteration/benchmarks/common"
	"github.com/zeu5/policy-iteration/benchmarks/specfile"
	"github.com/zeu5/policy-iteration/core"
)

func SolveCommand() *cobra.Command {
	var simulate bool
	cmd := &cobra.Command{
		Use:   "solve <file>",
		Args:  cobra.ExactArgs(1),
		Short: "Solve the model described by a yaml or json transition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := specfile.Load(args[0])
			if err != nil {
				return err
			}
			agent, result, err := common.Solve(flags, args[0], file.Specs(), logger)
			if err != nil {
				return err
			}
			fmt.Printf("Policy iteration: %d iterations, max delta %g (%s)\n", result.Iterations, result.MaxDelta, result.Reason)
			printPolicy(os.Stdout, agent)

			if !simulate {
				return nil
			}
			ctx, done := interruptContext()
			defer done()

			summaries := new(bytes.Buffer)
			cmp, err := specfile.PrepareComparison(flags, agent, file.Start, summaries, logger)
			if err != nil {
				return err
			}
			return runComparison(ctx, cmp, summaries, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Play episodes on the model from its start state")

	return cmd
}

// printPolicy writes one row per state with its value and greedy action.
func printPolicy(w io.Writer, agent *core.Agent) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tVALUE\tACTION")
	for _, id := range agent.System().IDs() {
		value, _ := agent.Value(id)
		action, ok := agent.QueryAction(id)
		if !ok {
			action = "-"
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%s\n", id, value, action)
	}
	tw.Flush()
}
