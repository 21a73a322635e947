package core

// Policy picks actions while an episode is played.
type Policy interface {
	ResetEpisode(*EpisodeContext)
	// PickAction chooses one of actions. The second result is false when
	// the policy has nothing to offer for state.
	PickAction(*StepContext, State, []string) (string, bool)
	Reset()
}
