package replay

import (
	"context"
	"errors"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 200

type UseCase struct {
	Transitions ports.TransitionRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.EpisodeID == "" || req.FromStep < 0 || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.ToStep != 0 && req.ToStep < req.FromStep {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	rows, err := u.Transitions.ListByEpisodeID(ctx, req.EpisodeID, req.FromStep, req.ToStep, limit)
	if err != nil {
		return Response{}, err
	}

	out := make([]Transition, 0, len(rows))
	for _, row := range rows {
		out = append(out, Transition{
			Step:          row.Step,
			Actions:       row.Actions,
			Rewards:       row.Rewards,
			Done:          row.Done,
			ResourceCount: row.ResourceCount,
			OccurredAt:    row.OccurredAt,
		})
	}
	return Response{EpisodeID: req.EpisodeID, Transitions: out}, nil
}
