package replay

import "time"

type Request struct {
	EpisodeID string `json:"episode_id"`
	FromStep  int    `json:"from_step,omitempty"`
	ToStep    int    `json:"to_step,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type Transition struct {
	Step          int       `json:"step"`
	Actions       []int     `json:"actions"`
	Rewards       []float64 `json:"rewards"`
	Done          bool      `json:"done"`
	ResourceCount int       `json:"resource_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Response struct {
	EpisodeID   string       `json:"episode_id"`
	Transitions []Transition `json:"transitions"`
}
