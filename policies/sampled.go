package policies

import (
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/policy-iteration/core"
)

// SampledPolicy draws actions from an agent's stochastic policy, restricted
// to the actions the environment offers.
type SampledPolicy struct {
	agent *core.Agent
	seed  uint64
	rand  erand.Source
}

var _ core.Policy = &SampledPolicy{}

func NewSampledPolicy(agent *core.Agent, seed uint64) *SampledPolicy {
	return &SampledPolicy{
		agent: agent,
		seed:  seed,
		rand:  erand.NewSource(seed),
	}
}

func (s *SampledPolicy) Reset() {
	s.rand = erand.NewSource(s.seed)
}

func (s *SampledPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (s *SampledPolicy) PickAction(_ *core.StepContext, state core.State, actions []string) (string, bool) {
	probs, ok := s.agent.ActionProbabilities(state.ID())
	if !ok || len(actions) == 0 {
		return "", false
	}
	weights := make([]float64, len(actions))
	total := float64(0)
	for i, a := range actions {
		weights[i] = probs[a]
		total += weights[i]
	}
	if total <= 0 {
		return "", false
	}
	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return "", false
	}
	return actions[i], true
}
