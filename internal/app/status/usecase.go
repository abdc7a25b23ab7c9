package status

import (
	"context"
	"errors"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/app/sim"
	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Registry *sim.Registry
	Episodes ports.EpisodeRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.EpisodeID == "" {
		return Response{}, ErrInvalidRequest
	}
	env, ok := u.Registry.Get(req.EpisodeID)
	if !ok {
		return Response{}, ports.ErrNotFound
	}

	rec, err := u.Episodes.GetByID(ctx, req.EpisodeID)
	if err != nil {
		return Response{}, err
	}

	poses := make([]commons.Pose, env.NAgents())
	for i := range poses {
		p, err := env.AgentPose(i)
		if err != nil {
			return Response{}, err
		}
		poses[i] = p
	}

	return Response{
		EpisodeID:     req.EpisodeID,
		Status:        rec.Status,
		ElapsedSteps:  env.ElapsedSteps(),
		MaxSteps:      env.Config().MaxSteps,
		Done:          env.Done(),
		NAgents:       env.NAgents(),
		ResourceCount: env.ResourceCount(),
		AgentPoses:    poses,
	}, nil
}
