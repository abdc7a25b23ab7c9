package observe

import "github.com/timf34/cpr-appropriation/internal/domain/commons"

type Request struct {
	EpisodeID string `json:"episode_id"`
	Agent     int    `json:"agent"`
}

type Response struct {
	EpisodeID   string              `json:"episode_id"`
	Agent       int                 `json:"agent"`
	Pose        commons.Pose        `json:"pose"`
	Observation commons.Observation `json:"observation"`
	Shape       [3]int              `json:"shape"`
}

type RenderRequest struct {
	EpisodeID string `json:"episode_id"`
}

type RenderResponse struct {
	EpisodeID string            `json:"episode_id"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Pixels    [][]commons.Color `json:"pixels"`
}
