package sim

import "github.com/timf34/cpr-appropriation/internal/domain/commons"

type CreateRequest struct {
	NAgents    int   `json:"n_agents"`
	GridWidth  int   `json:"grid_width"`
	GridHeight int   `json:"grid_height"`
	Seed       int64 `json:"seed"`

	// Zero-valued extents fall back to the canonical experiment defaults.
	FOVSquaresFront  int  `json:"fov_squares_front,omitempty"`
	FOVSquaresSide   int  `json:"fov_squares_side,omitempty"`
	TaggingAbility   bool `json:"tagging_ability,omitempty"`
	BeamSquaresFront int  `json:"beam_squares_front,omitempty"`
	BeamSquaresWidth int  `json:"beam_squares_width,omitempty"`
	BallRadius       int  `json:"ball_radius,omitempty"`
	MaxSteps         int  `json:"max_steps,omitempty"`
}

type CreateResponse struct {
	EpisodeID     string         `json:"episode_id"`
	Config        commons.Config `json:"config"`
	ResourceCount int            `json:"resource_count"`
}

type ResetRequest struct {
	EpisodeID string `json:"episode_id"`
}

type ResetResponse struct {
	EpisodeID     string                `json:"episode_id"`
	ResourceCount int                   `json:"resource_count"`
	Observations  []commons.Observation `json:"observations"`
}

type StepRequest struct {
	EpisodeID string `json:"episode_id"`
	Actions   []int  `json:"actions"`
}

type StepResponse struct {
	EpisodeID     string                `json:"episode_id"`
	ElapsedSteps  int                   `json:"elapsed_steps"`
	Observations  []commons.Observation `json:"observations"`
	Rewards       []float64             `json:"rewards"`
	Dones         []bool                `json:"dones"`
	ResourceCount int                   `json:"resource_count"`
}
