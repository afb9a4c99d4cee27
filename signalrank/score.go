package signalrank

import (
	"math"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Weights scales each sub-score of a ScoreBreakdown before they are summed.
type Weights struct {
	Stars     float64 `json:"stars" yaml:"stars"`
	Forks     float64 `json:"forks" yaml:"forks"`
	Vitality  float64 `json:"vitality" yaml:"vitality"`
	Readiness float64 `json:"readiness" yaml:"readiness"`
	Protocol  float64 `json:"protocol" yaml:"protocol"`
	Trust     float64 `json:"trust" yaml:"trust"`
	AEO       float64 `json:"aeo" yaml:"aeo"`
	Interop   float64 `json:"interop" yaml:"interop"`
}

func DefaultWeights() Weights {
	return Weights{
		Stars:     1,
		Forks:     1,
		Vitality:  1,
		Readiness: 1,
		Protocol:  1,
		Trust:     1,
		AEO:       1,
		Interop:   1,
	}
}

// Values returns the weights in the same order as entity.ScoreBreakdown.Values.
func (w Weights) Values() []float64 {
	return []float64{w.Stars, w.Forks, w.Vitality, w.Readiness, w.Protocol, w.Trust, w.AEO, w.Interop}
}

func (w Weights) Validate() error {
	for _, v := range w.Values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("weights must be finite and non-negative, got %v", v)
		}
	}
	return nil
}

type Score struct {
	Value float64     `json:"value"`
	Tier  entity.Tier `json:"tier"`
}

type Aggregator struct {
	weights *mat.VecDense
}

func NewAggregator(weights Weights) *Aggregator {
	values := weights.Values()
	return &Aggregator{
		weights: mat.NewVecDense(len(values), values),
	}
}

// Aggregate combines the weighted sub-scores into a single value in [0,10],
// rounded to one decimal. The tier is derived from the rounded value.
func (a *Aggregator) Aggregate(breakdown entity.ScoreBreakdown) Score {
	values := breakdown.Values()
	total := mat.Dot(a.weights, mat.NewVecDense(len(values), values))

	value := RoundScore(ClampScore(total))
	return Score{
		Value: value,
		Tier:  TierFromScore(value),
	}
}

// Apply rescores the agent from its breakdown.
func (a *Aggregator) Apply(agent *entity.Agent) {
	score := a.Aggregate(agent.ScoreBreakdown)
	agent.SRScore = score.Value
	agent.SRTier = score.Tier
}

func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, v))
}

func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
