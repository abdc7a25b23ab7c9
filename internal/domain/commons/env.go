package commons

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrInvalidConfig   = errors.New("invalid environment config")
	ErrActionCount     = errors.New("action count does not match agent count")
	ErrInvalidAction   = errors.New("invalid action id")
	ErrEpisodeDone     = errors.New("episode is done, reset before stepping")
	ErrAgentOutOfRange = errors.New("agent index out of range")
	ErrGridTooSmall    = errors.New("grid has fewer cells than agents")
)

// ResourceCollectionReward is the reward for landing on a resource cell.
// Every agent pays the same amount as a per-tick appropriation cost when it
// does not collect, whether it moved, was blocked, or stood still.
const ResourceCollectionReward = 1.0

// Config holds the construction parameters of an environment. All fields
// are fixed for the lifetime of the environment.
type Config struct {
	NAgents    int `json:"n_agents"`
	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`

	// FOV extents: the observation window is FOVSquaresFront rows deep and
	// 2*FOVSquaresSide+1 columns wide.
	FOVSquaresFront int `json:"fov_squares_front"`
	FOVSquaresSide  int `json:"fov_squares_side"`

	// Tagging is declared for parity with the beam-equipped variants of the
	// environment; the tag action has no effect on other agents.
	TaggingAbility   bool `json:"tagging_ability"`
	BeamSquaresFront int  `json:"beam_squares_front"`
	BeamSquaresWidth int  `json:"beam_squares_width"`

	// BallRadius is the radius of the disk used for respawn density counts.
	BallRadius int `json:"ball_radius"`

	MaxSteps int   `json:"max_steps"`
	Seed     int64 `json:"seed"`
}

// DefaultConfig mirrors the canonical appropriation experiment settings.
func DefaultConfig() Config {
	return Config{
		FOVSquaresFront:  20,
		FOVSquaresSide:   10,
		TaggingAbility:   true,
		BeamSquaresFront: 20,
		BeamSquaresWidth: 5,
		BallRadius:       2,
		MaxSteps:         1000,
	}
}

func (c Config) validate() error {
	if c.NAgents <= 0 || c.GridWidth <= 0 || c.GridHeight <= 0 {
		return ErrInvalidConfig
	}
	if c.FOVSquaresFront <= 0 || c.FOVSquaresSide < 0 {
		return ErrInvalidConfig
	}
	if c.BallRadius < 0 || c.MaxSteps <= 0 {
		return ErrInvalidConfig
	}
	if c.NAgents > c.GridWidth*c.GridHeight {
		return ErrGridTooSmall
	}
	return nil
}

// StepResult is what one tick hands back to the training collaborator,
// plus a few counters for KPI collaborators.
type StepResult struct {
	Observations []Observation
	Rewards      []float64
	Dones        []bool

	Collected       int
	InfeasibleMoves int
	Respawned       int
}

// Environment is the step orchestrator: it owns the grid and all agent
// poses, and is the only writer of either. One environment is meant to be
// driven by a single goroutine; parallel training runs independent
// environment instances instead of sharing one.
type Environment struct {
	cfg  Config
	rng  *rand.Rand
	mask ballMask

	grid         *Grid
	poses        []Pose
	elapsedSteps int
	done         bool
}

// NewEnvironment validates the config and spawns a freshly reset
// environment. All stochastic draws go through a private generator seeded
// from cfg.Seed, so runs are reproducible.
func NewEnvironment(cfg Config) (*Environment, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	env := &Environment{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		mask: newBallMask(cfg.BallRadius),
	}
	env.Reset()
	return env, nil
}

// Config returns the construction parameters.
func (e *Environment) Config() Config { return e.cfg }

// Reset re-seeds the grid and agent poses and returns the episode to the
// accepting state. Each agent lands on a distinct uniformly random cell
// with a uniformly random facing; every remaining cell then independently
// holds a resource with probability 0.5.
func (e *Environment) Reset() {
	e.elapsedSteps = 0
	e.done = false
	e.grid = NewGrid(e.cfg.GridWidth, e.cfg.GridHeight)

	e.poses = make([]Pose, e.cfg.NAgents)
	for i := range e.poses {
		for {
			p := Pose{
				X:      e.rng.Intn(e.cfg.GridWidth),
				Y:      e.rng.Intn(e.cfg.GridHeight),
				Facing: Orientation(e.rng.Intn(orientationCount)),
			}
			if e.grid.At(p.X, p.Y) != CellAgent {
				e.poses[i] = p
				e.grid.PlaceAgent(p)
				break
			}
		}
	}

	for y := 0; y < e.cfg.GridHeight; y++ {
		for x := 0; x < e.cfg.GridWidth; x++ {
			if e.rng.Intn(2) == 1 {
				e.grid.PlaceResource(x, y)
			}
		}
	}
}

// isFeasible reports whether a candidate pose can be entered: it must be
// on the grid and not already hold an agent. Resource cells are walkable;
// entering one is what collects it.
func (e *Environment) isFeasible(p Pose) bool {
	return e.grid.InBounds(p.X, p.Y) && e.grid.At(p.X, p.Y) != CellAgent
}

// Step advances the simulation one tick. Agents move sequentially in index
// order, so an agent can be blocked by a lower-indexed agent that already
// moved this tick. An infeasible candidate silently resolves to standing
// still. After all moves commit the respawn pass runs, then observations
// are extracted from the final grid.
//
// A wrong-length or out-of-range action vector is rejected outright with
// no partial effect, as is stepping a finished episode.
func (e *Environment) Step(actions []Action) (StepResult, error) {
	if e.done {
		return StepResult{}, ErrEpisodeDone
	}
	if len(actions) != e.cfg.NAgents {
		return StepResult{}, fmt.Errorf("%w: got %d, want %d", ErrActionCount, len(actions), e.cfg.NAgents)
	}
	for _, a := range actions {
		if !a.Valid() {
			return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
		}
	}

	rewards := make([]float64, e.cfg.NAgents)
	collected, infeasible := 0, 0
	for i, action := range actions {
		current := e.poses[i]
		next := current.Apply(action)
		// A stationary candidate (rotation, stand still, tag) cannot
		// collide with anything; the occupancy check would otherwise see
		// the agent's own cell and wrongly reject it.
		moved := next.X != current.X || next.Y != current.Y
		if moved && !e.isFeasible(next) {
			next = current
			infeasible++
		}

		// Reward is read from the pre-move cell content: the target still
		// shows the resource until the move lands on it.
		if e.grid.At(next.X, next.Y) == CellResource {
			rewards[i] = ResourceCollectionReward
			collected++
		} else {
			rewards[i] = -ResourceCollectionReward
		}

		e.grid.MoveAgent(current, next)
		e.poses[i] = next
	}

	e.elapsedSteps++
	if e.grid.Depleted() || e.elapsedSteps >= e.cfg.MaxSteps {
		e.done = true
	}

	respawned := respawnResources(e.grid, e.mask, e.rng)

	result := StepResult{
		Rewards:         rewards,
		Dones:           make([]bool, e.cfg.NAgents),
		Observations:    make([]Observation, e.cfg.NAgents),
		Collected:       collected,
		InfeasibleMoves: infeasible,
		Respawned:       respawned,
	}
	for i := range result.Observations {
		result.Observations[i] = e.Observation(i)
		result.Dones[i] = e.done
	}
	return result, nil
}

// Observation extracts the FOV window of one agent from the current grid.
func (e *Environment) Observation(agent int) Observation {
	return extractFOV(e.grid, e.poses[agent], e.cfg.FOVSquaresFront, e.cfg.FOVSquaresSide)
}

// AgentPose returns the current pose of one agent.
func (e *Environment) AgentPose(agent int) (Pose, error) {
	if agent < 0 || agent >= len(e.poses) {
		return Pose{}, ErrAgentOutOfRange
	}
	return e.poses[agent], nil
}

func (e *Environment) NAgents() int       { return e.cfg.NAgents }
func (e *Environment) ElapsedSteps() int  { return e.elapsedSteps }
func (e *Environment) Done() bool         { return e.done }
func (e *Environment) ResourceCount() int { return e.grid.Count(CellResource) }

// Grid exposes the current grid for read-only collaborators (rendering,
// snapshots). Callers must not mutate the world through it between ticks.
func (e *Environment) Grid() *Grid { return e.grid }
