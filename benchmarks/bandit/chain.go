// Package bandit builds chains of deterministic multi-armed bandits.
package bandit

import (
	"fmt"

	"github.com/zeu5/policy-iteration/core"
)

// ArmLabel names the i-th arm (0-based) as Arm_<i+1>.
func ArmLabel(i int) string {
	return fmt.Sprintf("Arm_%d", i+1)
}

// Chain gives state i one arm per reward in levels[i], every arm leading to
// state i+1 with probability 1. The last state has no arms.
func Chain(levels ...[]float64) []core.TransitionSpec {
	specs := make([]core.TransitionSpec, 0)
	for i, rewards := range levels {
		for a, reward := range rewards {
			specs = append(specs, core.TransitionSpec{
				From:        int64(i),
				To:          int64(i + 1),
				Action:      ArmLabel(a),
				Probability: 1,
				Reward:      reward,
			})
		}
	}
	return specs
}
