package memory

import (
	"context"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
)

type GridSnapshotRepo struct {
	store *Store
}

func NewGridSnapshotRepo(store *Store) GridSnapshotRepo {
	return GridSnapshotRepo{store: store}
}

func (r GridSnapshotRepo) Save(_ context.Context, rec ports.GridSnapshotRecord) error {
	r.store.snapshots[rec.EpisodeID] = rec
	return nil
}

func (r GridSnapshotRepo) Latest(_ context.Context, episodeID string) (ports.GridSnapshotRecord, error) {
	rec, ok := r.store.snapshots[episodeID]
	if !ok {
		return ports.GridSnapshotRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
