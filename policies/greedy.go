package policies

import (
	"slices"

	"github.com/zeu5/policy-iteration/core"
)

// GreedyPolicy plays the most probable action of a trained agent.
type GreedyPolicy struct {
	agent *core.Agent
}

var _ core.Policy = &GreedyPolicy{}

func NewGreedyPolicy(agent *core.Agent) *GreedyPolicy {
	return &GreedyPolicy{agent: agent}
}

func (g *GreedyPolicy) Reset() {}

func (g *GreedyPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (g *GreedyPolicy) PickAction(_ *core.StepContext, state core.State, actions []string) (string, bool) {
	action, ok := g.agent.QueryAction(state.ID())
	if !ok || !slices.Contains(actions, action) {
		return "", false
	}
	return action, true
}
