package analysis

import (
	"fmt"
	"io"
	"path"

	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/util"
)

// OutcomeDataSet holds the undiscounted return of every completed episode.
// An episode is a win, loss or draw by the sign of its return.
type OutcomeDataSet struct {
	Returns []float64
	Wins    int
	Losses  int
	Draws   int
}

func (o *OutcomeDataSet) Copy() *OutcomeDataSet {
	return &OutcomeDataSet{
		Returns: append([]float64{}, o.Returns...),
		Wins:    o.Wins,
		Losses:  o.Losses,
		Draws:   o.Draws,
	}
}

type OutcomeAnalyzer struct {
	dataset *OutcomeDataSet
}

var _ core.Analyzer = &OutcomeAnalyzer{}

func NewOutcomeAnalyzer() *OutcomeAnalyzer {
	return &OutcomeAnalyzer{
		dataset: &OutcomeDataSet{Returns: make([]float64, 0)},
	}
}

func (o *OutcomeAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	ret := trace.Return()
	o.dataset.Returns = append(o.dataset.Returns, ret)
	switch {
	case ret > 0:
		o.dataset.Wins++
	case ret < 0:
		o.dataset.Losses++
	default:
		o.dataset.Draws++
	}
}

func (o *OutcomeAnalyzer) DataSet() core.DataSet {
	return o.dataset.Copy()
}

func (o *OutcomeAnalyzer) Reset() {
	o.dataset = &OutcomeDataSet{Returns: make([]float64, 0)}
}

type OutcomeSummary struct {
	Episodes     int     `json:"episodes"`
	MeanReturn   float64 `json:"mean_return"`
	StdDevReturn float64 `json:"stddev_return"`
	WinRate      float64 `json:"win_rate"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
}

// Summarize reduces a dataset to its mean and sample standard deviation.
// Both are zero when there are too few episodes to define them.
func Summarize(d *OutcomeDataSet) OutcomeSummary {
	s := OutcomeSummary{
		Episodes: len(d.Returns),
		Wins:     d.Wins,
		Losses:   d.Losses,
		Draws:    d.Draws,
	}
	if s.Episodes == 0 {
		return s
	}
	s.MeanReturn = stat.Mean(d.Returns, nil)
	if s.Episodes > 1 {
		s.StdDevReturn = stat.StdDev(d.Returns, nil)
	}
	s.WinRate = float64(d.Wins) / float64(s.Episodes)
	return s
}

// OutcomeComparator prints a summary line per experiment and saves all
// summaries of a run to outcomes_<run>.json under the save path.
type OutcomeComparator struct {
	savePath string
	out      io.Writer
}

var _ core.Comparator = &OutcomeComparator{}

func NewOutcomeComparator(savePath string, out io.Writer) *OutcomeComparator {
	if out == nil {
		out = io.Discard
	}
	return &OutcomeComparator{
		savePath: savePath,
		out:      out,
	}
}

func (o *OutcomeComparator) Compare(run int, experimentNames []string, datasets []core.DataSet) {
	summaries := make(map[string]OutcomeSummary)
	for i, name := range experimentNames {
		ds, ok := datasets[i].(*OutcomeDataSet)
		if !ok || ds == nil {
			fmt.Fprintf(o.out, "Run %d, %s: no data\n", run, name)
			continue
		}
		s := Summarize(ds)
		summaries[name] = s
		fmt.Fprintf(
			o.out,
			"Run %d, %s: episodes %d, mean return %.3f (std %.3f), win rate %.3f, W/L/D %d/%d/%d\n",
			run, name, s.Episodes, s.MeanReturn, s.StdDevReturn, s.WinRate, s.Wins, s.Losses, s.Draws,
		)
	}
	if o.savePath == "" {
		return
	}
	file := path.Join(o.savePath, fmt.Sprintf("outcomes_%d.json", run))
	if err := util.SaveJson(file, summaries); err != nil {
		fmt.Fprintf(o.out, "Run %d: saving outcomes: %s\n", run, err)
	}
}
