package memory

import (
	"sync"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
)

// Store backs the in-memory repositories used by tests and DB-less runs.
type Store struct {
	mu          sync.Mutex
	episodes    map[string]ports.EpisodeRecord
	transitions map[string][]ports.TransitionRecord
	snapshots   map[string]ports.GridSnapshotRecord
}

func NewStore() *Store {
	return &Store{
		episodes:    make(map[string]ports.EpisodeRecord),
		transitions: make(map[string][]ports.TransitionRecord),
		snapshots:   make(map[string]ports.GridSnapshotRecord),
	}
}
