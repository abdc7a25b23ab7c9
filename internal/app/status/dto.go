package status

import "github.com/timf34/cpr-appropriation/internal/domain/commons"

type Request struct {
	EpisodeID string `json:"episode_id"`
}

type Response struct {
	EpisodeID     string         `json:"episode_id"`
	Status        string         `json:"status"`
	ElapsedSteps  int            `json:"elapsed_steps"`
	MaxSteps      int            `json:"max_steps"`
	Done          bool           `json:"done"`
	NAgents       int            `json:"n_agents"`
	ResourceCount int            `json:"resource_count"`
	AgentPoses    []commons.Pose `json:"agent_poses"`
}
