package trajectory

import (
	"errors"
	"math/rand"
)

var ErrNoMinibatchSize = errors.New("minibatch size must be positive")

// Pool collects trajectories across agents and episodes and flattens them
// into training batches.
type Pool struct {
	trajectories []*Trajectory
	discount     float64
}

// NewPool creates a pool holding n fresh trajectories (one per agent is the
// usual arrangement). Returns computed from the pool use the given
// discount.
func NewPool(discount float64, n int) *Pool {
	p := &Pool{discount: discount}
	for i := 0; i < n; i++ {
		p.trajectories = append(p.trajectories, New())
	}
	return p
}

func (p *Pool) Add(t *Trajectory) {
	p.trajectories = append(p.trajectories, t)
}

// Extend appends every trajectory of another pool.
func (p *Pool) Extend(other *Pool) {
	p.trajectories = append(p.trajectories, other.trajectories...)
}

// AddTimestep appends a timestep to the i-th trajectory.
func (p *Pool) AddTimestep(i int, ts Timestep) error {
	if i < 0 || i >= len(p.trajectories) {
		return ErrOutOfRange
	}
	p.trajectories[i].Add(ts)
	return nil
}

func (p *Pool) NumTrajectories() int {
	return len(p.trajectories)
}

func (p *Pool) Trajectory(i int) (*Trajectory, error) {
	if i < 0 || i >= len(p.trajectories) {
		return nil, ErrOutOfRange
	}
	return p.trajectories[i], nil
}

// Len is the total number of timesteps across all trajectories.
func (p *Pool) Len() int {
	n := 0
	for _, t := range p.trajectories {
		n += t.Len()
	}
	return n
}

// Batch is the flattened, column-oriented view of pooled timesteps that a
// policy-gradient update consumes. Returns are to-go returns computed per
// source trajectory.
type Batch struct {
	States       [][]float64
	Actions      []int
	ActionProbs  [][]float64
	Returns      []float64
	NextStates   [][]float64
	LegalActions [][]bool
}

func (b Batch) Len() int {
	return len(b.Actions)
}

func (b Batch) slice(idx []int) Batch {
	out := Batch{
		States:       make([][]float64, len(idx)),
		Actions:      make([]int, len(idx)),
		ActionProbs:  make([][]float64, len(idx)),
		Returns:      make([]float64, len(idx)),
		NextStates:   make([][]float64, len(idx)),
		LegalActions: make([][]bool, len(idx)),
	}
	for j, i := range idx {
		out.States[j] = b.States[i]
		out.Actions[j] = b.Actions[i]
		out.ActionProbs[j] = b.ActionProbs[i]
		out.Returns[j] = b.Returns[i]
		out.NextStates[j] = b.NextStates[i]
		out.LegalActions[j] = b.LegalActions[i]
	}
	return out
}

// Flatten concatenates all trajectories into one batch.
func (p *Pool) Flatten() (Batch, error) {
	var out Batch
	for _, t := range p.trajectories {
		toGo, err := t.ReturnsToGo(0, p.discount)
		if err != nil {
			return Batch{}, err
		}
		for i, ts := range t.steps {
			out.States = append(out.States, ts.State)
			out.Actions = append(out.Actions, ts.Action)
			out.ActionProbs = append(out.ActionProbs, ts.ActionProbs)
			out.Returns = append(out.Returns, toGo[i])
			out.NextStates = append(out.NextStates, ts.NextState)
			out.LegalActions = append(out.LegalActions, ts.LegalActions)
		}
	}
	return out, nil
}

// Minibatches shuffles all pooled timesteps with the given generator and
// cuts them into batches of the requested size. A trailing remainder
// smaller than the batch size is dropped.
func (p *Pool) Minibatches(size int, rng *rand.Rand) ([]Batch, error) {
	if size <= 0 {
		return nil, ErrNoMinibatchSize
	}
	full, err := p.Flatten()
	if err != nil {
		return nil, err
	}

	idx := rng.Perm(full.Len())
	out := make([]Batch, 0, full.Len()/size)
	for start := 0; start+size <= full.Len(); start += size {
		out = append(out, full.slice(idx[start:start+size]))
	}
	return out, nil
}
