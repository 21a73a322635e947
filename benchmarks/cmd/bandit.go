package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeu5/policy-iteration/benchmarks/bandit"
	"github.com/zeu5/policy-iteration/benchmarks/common"
)

func BanditCommand() *cobra.Command {
	var arms []string
	cmd := &cobra.Command{
		Use:   "bandit",
		Short: "Solve a chain of deterministic bandits, one --arms list per level",
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, err := parseLevels(arms)
			if err != nil {
				return err
			}
			agent, result, err := common.Solve(flags, "bandit", bandit.Chain(levels...), logger)
			if err != nil {
				return err
			}
			fmt.Printf("Policy iteration: %d iterations, max delta %g (%s)\n", result.Iterations, result.MaxDelta, result.Reason)
			printPolicy(os.Stdout, agent)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&arms, "arms", []string{"1,2,3", "3,2,1"}, "Comma separated arm rewards of one level")

	return cmd
}

func parseLevels(arms []string) ([][]float64, error) {
	if len(arms) == 0 {
		return nil, errors.New("at least one level of arms is needed")
	}
	levels := make([][]float64, 0, len(arms))
	for i, level := range arms {
		rewards := make([]float64, 0)
		for _, field := range strings.Split(level, ",") {
			r, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("level %d: %w", i, err)
			}
			rewards = append(rewards, r)
		}
		levels = append(levels, rewards)
	}
	return levels, nil
}
