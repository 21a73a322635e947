package analysis

import "github.com/zeu5/policy-iteration/core"

// NoOpComparator pairs with analyzers that only have side effects.
type NoOpComparator struct {
}

var _ core.Comparator = &NoOpComparator{}

func NewNoOpComparator() *NoOpComparator {
	return &NoOpComparator{}
}

func (n *NoOpComparator) Compare(_ int, _ []string, _ []core.DataSet) {
}
