package ports

import (
	"context"
	"time"
)

const (
	EpisodeStatusRunning = "running"
	EpisodeStatusDone    = "done"
)

// EpisodeRecord is the persisted summary of one environment episode.
type EpisodeRecord struct {
	EpisodeID    string
	Seed         int64
	NAgents      int
	GridWidth    int
	GridHeight   int
	MaxSteps     int
	Status       string
	ElapsedSteps int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TransitionRecord is one persisted tick: the action vector the policy sent
// and the per-agent rewards it earned.
type TransitionRecord struct {
	EpisodeID     string
	Step          int
	Actions       []int
	Rewards       []float64
	Done          bool
	ResourceCount int
	OccurredAt    time.Time
}

// GridSnapshotRecord is a persisted copy of the raw grid cells at one step.
type GridSnapshotRecord struct {
	EpisodeID string
	Step      int
	Width     int
	Height    int
	Cells     []byte
	TakenAt   time.Time
}

type EpisodeRepository interface {
	Create(ctx context.Context, rec EpisodeRecord) error
	GetByID(ctx context.Context, episodeID string) (EpisodeRecord, error)
	UpdateProgress(ctx context.Context, episodeID string, elapsedSteps int, status string, updatedAt time.Time) error
}

type TransitionRepository interface {
	Append(ctx context.Context, rec TransitionRecord) error
	ListByEpisodeID(ctx context.Context, episodeID string, fromStep, toStep, limit int) ([]TransitionRecord, error)
}

type GridSnapshotRepository interface {
	Save(ctx context.Context, rec GridSnapshotRecord) error
	Latest(ctx context.Context, episodeID string) (GridSnapshotRecord, error)
}
