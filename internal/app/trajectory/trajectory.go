package trajectory

import (
	"errors"
	"math"

	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

var (
	ErrBadDiscount = errors.New("discount must be in (0, 1]")
	ErrOutOfRange  = errors.New("timestep index out of range")
)

// Timestep is one (s, a, r, s') transition observed by a single agent,
// together with the policy's action distribution and legality mask at s.
type Timestep struct {
	State        []float64
	Action       int
	ActionProbs  []float64
	LegalActions []bool
	Reward       float64
	NextState    []float64
}

// Trajectory is the ordered list of timesteps one agent produced during an
// episode. It only stores and aggregates; no learning happens here.
type Trajectory struct {
	steps []Timestep
}

func New() *Trajectory {
	return &Trajectory{}
}

// Add appends a timestep. A nil legality mask means every action was legal.
func (t *Trajectory) Add(ts Timestep) {
	if ts.LegalActions == nil {
		ts.LegalActions = make([]bool, len(ts.ActionProbs))
		for i := range ts.LegalActions {
			ts.LegalActions[i] = true
		}
	}
	t.steps = append(t.steps, ts)
}

func (t *Trajectory) Len() int {
	return len(t.steps)
}

func (t *Trajectory) At(i int) (Timestep, error) {
	if i < 0 || i >= len(t.steps) {
		return Timestep{}, ErrOutOfRange
	}
	return t.steps[i], nil
}

// Rewards returns the reward sequence.
func (t *Trajectory) Rewards() []float64 {
	out := make([]float64, len(t.steps))
	for i, ts := range t.steps {
		out[i] = ts.Reward
	}
	return out
}

// ReturnsToGo computes per-timestep returns
//
//	G[t] = sum_{k=t}^{T-1} discount^k * r[k]
//
// over the first maxTimestep steps (maxTimestep <= 0 or beyond the end
// means the whole trajectory). Finite-horizon undiscounted returns use
// discount = 1; infinite-horizon discounted returns use discount in (0, 1).
func (t *Trajectory) ReturnsToGo(maxTimestep int, discount float64) ([]float64, error) {
	if discount <= 0 || discount > 1 {
		return nil, ErrBadDiscount
	}
	horizon := len(t.steps)
	if maxTimestep > 0 && maxTimestep < horizon {
		horizon = maxTimestep
	}

	out := make([]float64, horizon)
	acc := 0.0
	for k := horizon - 1; k >= 0; k-- {
		acc += math.Pow(discount, float64(k)) * t.steps[k].Reward
		out[k] = acc
	}
	return out, nil
}

// Return computes the single return from the trajectory's start.
func (t *Trajectory) Return(maxTimestep int, discount float64) (float64, error) {
	toGo, err := t.ReturnsToGo(maxTimestep, discount)
	if err != nil {
		return 0, err
	}
	if len(toGo) == 0 {
		return 0, nil
	}
	return toGo[0], nil
}

// FlattenObservation linearizes a FOV tensor row-major into the flat state
// vector the policy networks consume.
func FlattenObservation(obs commons.Observation) []float64 {
	if len(obs) == 0 {
		return nil
	}
	out := make([]float64, 0, len(obs)*len(obs[0])*3)
	for _, row := range obs {
		for _, c := range row {
			out = append(out, c[0], c[1], c[2])
		}
	}
	return out
}
