package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeu5/policy-iteration/benchmarks/common"
	"github.com/zeu5/policy-iteration/benchmarks/tictactoe"
	"github.com/zeu5/policy-iteration/util"
)

func TicTacToeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Solve tic-tac-toe against a random opponent",
	}

	cmd.AddCommand(
		ticTacToeTrainCommand(),
		ticTacToePlayCommand(),
	)

	return cmd
}

func ticTacToeTrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the agent and compare it with baselines against the random opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, result, err := common.Solve(flags, "tictactoe", tictactoe.Transitions(), logger)
			if err != nil {
				return err
			}
			fmt.Printf("Policy iteration: %d iterations, max delta %g (%s)\n", result.Iterations, result.MaxDelta, result.Reason)

			ctx, done := interruptContext()
			defer done()

			summaries := new(bytes.Buffer)
			cmp, err := tictactoe.PrepareComparison(flags, agent, summaries, logger)
			if err != nil {
				return err
			}
			return runComparison(ctx, cmp, summaries, os.Stdout)
		},
	}

	return cmd
}

func ticTacToePlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Train the agent and play against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, _, err := common.Solve(flags, "tictactoe", tictactoe.Transitions(), logger)
			if err != nil {
				return err
			}
			return tictactoe.Play(agent, os.Stdin, os.Stdout, util.IsTerminal(os.Stdout))
		},
	}

	return cmd
}
