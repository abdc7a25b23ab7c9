package memory

import (
	"context"
	"time"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
)

type EpisodeRepo struct {
	store *Store
}

func NewEpisodeRepo(store *Store) EpisodeRepo {
	return EpisodeRepo{store: store}
}

func (r EpisodeRepo) Create(_ context.Context, rec ports.EpisodeRecord) error {
	if _, ok := r.store.episodes[rec.EpisodeID]; ok {
		return ports.ErrConflict
	}
	r.store.episodes[rec.EpisodeID] = rec
	return nil
}

func (r EpisodeRepo) GetByID(_ context.Context, episodeID string) (ports.EpisodeRecord, error) {
	rec, ok := r.store.episodes[episodeID]
	if !ok {
		return ports.EpisodeRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r EpisodeRepo) UpdateProgress(_ context.Context, episodeID string, elapsedSteps int, status string, updatedAt time.Time) error {
	rec, ok := r.store.episodes[episodeID]
	if !ok {
		return ports.ErrNotFound
	}
	rec.ElapsedSteps = elapsedSteps
	rec.Status = status
	rec.UpdatedAt = updatedAt
	r.store.episodes[episodeID] = rec
	return nil
}
