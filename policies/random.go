package policies

import (
	"math/rand"

	"github.com/zeu5/policy-iteration/core"
)

// RandomPolicy picks uniformly among the available actions.
type RandomPolicy struct {
	seed int64
	rand *rand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomPolicy) Reset() {
	r.rand = rand.New(rand.NewSource(r.seed))
}

func (r *RandomPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) PickAction(_ *core.StepContext, _ core.State, actions []string) (string, bool) {
	if len(actions) == 0 {
		return "", false
	}
	return actions[r.rand.Intn(len(actions))], true
}
