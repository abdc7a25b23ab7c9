package memory

import (
	"context"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
)

type TransitionRepo struct {
	store *Store
}

func NewTransitionRepo(store *Store) TransitionRepo {
	return TransitionRepo{store: store}
}

func (r TransitionRepo) Append(_ context.Context, rec ports.TransitionRecord) error {
	r.store.transitions[rec.EpisodeID] = append(r.store.transitions[rec.EpisodeID], rec)
	return nil
}

func (r TransitionRepo) ListByEpisodeID(_ context.Context, episodeID string, fromStep, toStep, limit int) ([]ports.TransitionRecord, error) {
	rows := r.store.transitions[episodeID]
	out := make([]ports.TransitionRecord, 0, len(rows))
	for _, row := range rows {
		if row.Step < fromStep {
			continue
		}
		if toStep > 0 && row.Step > toStep {
			continue
		}
		out = append(out, row)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
