package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

type fakeEpisodeRepo struct {
	created map[string]ports.EpisodeRecord
	err     error
}

func (f *fakeEpisodeRepo) Create(_ context.Context, rec ports.EpisodeRecord) error {
	if f.err != nil {
		return f.err
	}
	if f.created == nil {
		f.created = map[string]ports.EpisodeRecord{}
	}
	f.created[rec.EpisodeID] = rec
	return nil
}

func (f *fakeEpisodeRepo) GetByID(_ context.Context, episodeID string) (ports.EpisodeRecord, error) {
	rec, ok := f.created[episodeID]
	if !ok {
		return ports.EpisodeRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (f *fakeEpisodeRepo) UpdateProgress(_ context.Context, episodeID string, elapsedSteps int, status string, updatedAt time.Time) error {
	rec, ok := f.created[episodeID]
	if !ok {
		return ports.ErrNotFound
	}
	rec.ElapsedSteps = elapsedSteps
	rec.Status = status
	rec.UpdatedAt = updatedAt
	f.created[episodeID] = rec
	return nil
}

type fakeTransitionRepo struct {
	rows []ports.TransitionRecord
	err  error
}

func (f *fakeTransitionRepo) Append(_ context.Context, rec ports.TransitionRecord) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rec)
	return nil
}

func (f *fakeTransitionRepo) ListByEpisodeID(_ context.Context, episodeID string, fromStep, toStep, limit int) ([]ports.TransitionRecord, error) {
	return f.rows, nil
}

type fakeSnapshotRepo struct {
	saved []ports.GridSnapshotRecord
}

func (f *fakeSnapshotRepo) Save(_ context.Context, rec ports.GridSnapshotRecord) error {
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeSnapshotRepo) Latest(_ context.Context, episodeID string) (ports.GridSnapshotRecord, error) {
	if len(f.saved) == 0 {
		return ports.GridSnapshotRecord{}, ports.ErrNotFound
	}
	return f.saved[len(f.saved)-1], nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	steps        int
	resets       int
	episodesDone int
}

func (f *fakeMetrics) RecordStep(collected, infeasible, respawned int) { f.steps++ }
func (f *fakeMetrics) RecordReset()                                    { f.resets++ }
func (f *fakeMetrics) RecordEpisodeDone(elapsedSteps int)              { f.episodesDone++ }

func newTestUseCase() (UseCase, *fakeEpisodeRepo, *fakeTransitionRepo, *fakeSnapshotRepo, *fakeMetrics) {
	episodes := &fakeEpisodeRepo{}
	transitions := &fakeTransitionRepo{}
	snapshots := &fakeSnapshotRepo{}
	metrics := &fakeMetrics{}
	uc := UseCase{
		Registry:    NewRegistry(),
		Episodes:    episodes,
		Transitions: transitions,
		Snapshots:   snapshots,
		TxManager:   passthroughTx{},
		Metrics:     metrics,
		Now:         func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	}
	return uc, episodes, transitions, snapshots, metrics
}

func TestCreateRegistersAndPersistsEpisode(t *testing.T) {
	uc, episodes, _, snapshots, metrics := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{
		NAgents:    2,
		GridWidth:  10,
		GridHeight: 8,
		Seed:       7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.EpisodeID == "" {
		t.Fatalf("expected a generated episode id")
	}
	if _, ok := uc.Registry.Get(resp.EpisodeID); !ok {
		t.Fatalf("environment not registered")
	}
	rec, ok := episodes.created[resp.EpisodeID]
	if !ok {
		t.Fatalf("episode record not persisted")
	}
	if rec.Status != ports.EpisodeStatusRunning || rec.NAgents != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(snapshots.saved) != 1 {
		t.Fatalf("expected initial grid snapshot, got %d", len(snapshots.saved))
	}
	if metrics.resets != 1 {
		t.Fatalf("expected one reset metric, got %d", metrics.resets)
	}
	// Defaults fill the unset extents.
	if resp.Config.FOVSquaresFront != 20 || resp.Config.MaxSteps != 1000 {
		t.Fatalf("defaults not applied: %+v", resp.Config)
	}
}

func TestCreateRejectsBadConfig(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase()
	if _, err := uc.Create(context.Background(), CreateRequest{}); !errors.Is(err, commons.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStepPersistsTransitionAndUpdatesProgress(t *testing.T) {
	uc, episodes, transitions, _, metrics := newTestUseCase()
	created, err := uc.Create(context.Background(), CreateRequest{
		NAgents: 1, GridWidth: 6, GridHeight: 6, Seed: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := uc.Step(context.Background(), StepRequest{
		EpisodeID: created.EpisodeID,
		Actions:   []int{int(commons.StandStill)},
	})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if resp.ElapsedSteps != 1 {
		t.Fatalf("elapsed = %d, want 1", resp.ElapsedSteps)
	}
	if len(transitions.rows) != 1 {
		t.Fatalf("transitions persisted = %d, want 1", len(transitions.rows))
	}
	if transitions.rows[0].Step != 1 || len(transitions.rows[0].Rewards) != 1 {
		t.Fatalf("bad transition %+v", transitions.rows[0])
	}
	if episodes.created[created.EpisodeID].ElapsedSteps != 1 {
		t.Fatalf("episode progress not updated")
	}
	if metrics.steps != 1 {
		t.Fatalf("step metric = %d, want 1", metrics.steps)
	}
}

func TestStepUnknownEpisode(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase()
	_, err := uc.Step(context.Background(), StepRequest{EpisodeID: "eps_missing", Actions: []int{0}})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStepWrongActionCountLeavesNothingPersisted(t *testing.T) {
	uc, _, transitions, _, _ := newTestUseCase()
	created, err := uc.Create(context.Background(), CreateRequest{
		NAgents: 2, GridWidth: 6, GridHeight: 6,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = uc.Step(context.Background(), StepRequest{
		EpisodeID: created.EpisodeID,
		Actions:   []int{0},
	})
	if !errors.Is(err, commons.ErrActionCount) {
		t.Fatalf("expected ErrActionCount, got %v", err)
	}
	if len(transitions.rows) != 0 {
		t.Fatalf("rejected step must not persist a transition")
	}
}

func TestStepMarksEpisodeDoneAndSnapshots(t *testing.T) {
	uc, episodes, _, snapshots, metrics := newTestUseCase()
	created, err := uc.Create(context.Background(), CreateRequest{
		NAgents: 1, GridWidth: 4, GridHeight: 4, MaxSteps: 1, Seed: 11,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := uc.Step(context.Background(), StepRequest{
		EpisodeID: created.EpisodeID,
		Actions:   []int{int(commons.StandStill)},
	})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !resp.Dones[0] {
		t.Fatalf("expected done with max steps 1")
	}
	if episodes.created[created.EpisodeID].Status != ports.EpisodeStatusDone {
		t.Fatalf("episode status = %s, want done", episodes.created[created.EpisodeID].Status)
	}
	if len(snapshots.saved) != 2 {
		t.Fatalf("snapshots = %d, want create + final", len(snapshots.saved))
	}
	if metrics.episodesDone != 1 {
		t.Fatalf("episode done metric = %d, want 1", metrics.episodesDone)
	}

	if _, err := uc.Step(context.Background(), StepRequest{
		EpisodeID: created.EpisodeID,
		Actions:   []int{int(commons.StandStill)},
	}); !errors.Is(err, commons.ErrEpisodeDone) {
		t.Fatalf("expected ErrEpisodeDone, got %v", err)
	}
}

func TestResetReturnsEpisodeToRunning(t *testing.T) {
	uc, episodes, _, _, _ := newTestUseCase()
	created, err := uc.Create(context.Background(), CreateRequest{
		NAgents: 1, GridWidth: 4, GridHeight: 4, MaxSteps: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uc.Step(context.Background(), StepRequest{
		EpisodeID: created.EpisodeID,
		Actions:   []int{int(commons.StandStill)},
	}); err != nil {
		t.Fatalf("Step: %v", err)
	}

	resp, err := uc.Reset(context.Background(), ResetRequest{EpisodeID: created.EpisodeID})
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(resp.Observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(resp.Observations))
	}
	rec := episodes.created[created.EpisodeID]
	if rec.Status != ports.EpisodeStatusRunning || rec.ElapsedSteps != 0 {
		t.Fatalf("episode not reset: %+v", rec)
	}
}

func TestResetUnknownEpisode(t *testing.T) {
	uc, _, _, _, _ := newTestUseCase()
	if _, err := uc.Reset(context.Background(), ResetRequest{EpisodeID: "eps_missing"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
