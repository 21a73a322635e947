package tictactoe

import (
	"github.com/zeu5/policy-iteration/core"
)

// Transitions enumerates every board reachable from the empty one and the
// transitions of the side to move against a uniformly random opponent.
//
// A winning move ends the game with reward 1. A move that fills the board
// ends it in a draw with reward 0. Otherwise the opponent answers on one of
// the n-1 remaining cells with probability 1/(n-1), and the reward is -1
// when that answer wins. Finished boards have no transitions.
func Transitions() []core.TransitionSpec {
	specs := make([]core.TransitionSpec, 0)
	seen := map[int64]bool{}
	worklist := []int64{0}

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if seen[id] {
			continue
		}
		seen[id] = true

		board, player, err := FromID(id)
		if err != nil || board.HasWon(player) || board.HasWon(player.Flip()) {
			continue
		}

		actions := board.Actions()
		for _, action := range actions {
			next, _ := board.Apply(action, player)
			nextID := next.ID()
			worklist = append(worklist, nextID)

			if next.HasWon(player) {
				specs = append(specs, core.TransitionSpec{From: id, To: nextID, Action: action, Probability: 1, Reward: 1})
				continue
			}
			if len(actions) == 1 {
				specs = append(specs, core.TransitionSpec{From: id, To: nextID, Action: action, Probability: 1, Reward: 0})
				continue
			}

			prob := 1 / float64(len(actions)-1)
			for _, reply := range actions {
				if reply == action {
					continue
				}
				answered, _ := next.Apply(reply, player.Flip())
				reward := float64(0)
				if answered.HasWon(player.Flip()) {
					reward = -1
				}
				answeredID := answered.ID()
				specs = append(specs, core.TransitionSpec{From: id, To: answeredID, Action: action, Probability: prob, Reward: reward})
				worklist = append(worklist, answeredID)
			}
		}
	}
	return specs
}
