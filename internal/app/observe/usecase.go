package observe

import (
	"context"
	"errors"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/app/sim"
)

var ErrInvalidRequest = errors.New("invalid observe request")

// UseCase serves read-only views of a live environment: one agent's FOV
// tensor, or the whole grid as an RGB image.
type UseCase struct {
	Registry *sim.Registry
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if req.EpisodeID == "" {
		return Response{}, ErrInvalidRequest
	}
	env, ok := u.Registry.Get(req.EpisodeID)
	if !ok {
		return Response{}, ports.ErrNotFound
	}
	pose, err := env.AgentPose(req.Agent)
	if err != nil {
		return Response{}, err
	}
	obs := env.Observation(req.Agent)
	return Response{
		EpisodeID:   req.EpisodeID,
		Agent:       req.Agent,
		Pose:        pose,
		Observation: obs,
		Shape:       [3]int{len(obs), len(obs[0]), 3},
	}, nil
}

func (u UseCase) Render(_ context.Context, req RenderRequest) (RenderResponse, error) {
	if req.EpisodeID == "" {
		return RenderResponse{}, ErrInvalidRequest
	}
	env, ok := u.Registry.Get(req.EpisodeID)
	if !ok {
		return RenderResponse{}, ports.ErrNotFound
	}
	pixels := env.Render()
	return RenderResponse{
		EpisodeID: req.EpisodeID,
		Width:     env.Grid().Width(),
		Height:    env.Grid().Height(),
		Pixels:    pixels,
	}, nil
}
