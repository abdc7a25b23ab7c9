package sim

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/timf34/cpr-appropriation/internal/app/ports"
	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

var ErrInvalidRequest = errors.New("invalid sim request")

// UseCase drives environment lifecycle: create, reset, step. Live
// environments sit in the registry; every committed tick is persisted as a
// transition so episodes can be replayed after the process is gone.
type UseCase struct {
	Registry    *Registry
	Episodes    ports.EpisodeRepository
	Transitions ports.TransitionRepository
	Snapshots   ports.GridSnapshotRepository
	TxManager   ports.TxManager
	Metrics     ports.StepMetrics
	Now         func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	cfg := commons.DefaultConfig()
	cfg.NAgents = req.NAgents
	cfg.GridWidth = req.GridWidth
	cfg.GridHeight = req.GridHeight
	cfg.Seed = req.Seed
	if req.FOVSquaresFront > 0 {
		cfg.FOVSquaresFront = req.FOVSquaresFront
	}
	if req.FOVSquaresSide > 0 {
		cfg.FOVSquaresSide = req.FOVSquaresSide
	}
	if req.BeamSquaresFront > 0 {
		cfg.BeamSquaresFront = req.BeamSquaresFront
	}
	if req.BeamSquaresWidth > 0 {
		cfg.BeamSquaresWidth = req.BeamSquaresWidth
	}
	if req.BallRadius > 0 {
		cfg.BallRadius = req.BallRadius
	}
	if req.MaxSteps > 0 {
		cfg.MaxSteps = req.MaxSteps
	}
	cfg.TaggingAbility = req.TaggingAbility

	env, err := commons.NewEnvironment(cfg)
	if err != nil {
		return CreateResponse{}, err
	}

	episodeID, err := newEpisodeID(u.now())
	if err != nil {
		return CreateResponse{}, err
	}

	rec := ports.EpisodeRecord{
		EpisodeID:  episodeID,
		Seed:       cfg.Seed,
		NAgents:    cfg.NAgents,
		GridWidth:  cfg.GridWidth,
		GridHeight: cfg.GridHeight,
		MaxSteps:   cfg.MaxSteps,
		Status:     ports.EpisodeStatusRunning,
		CreatedAt:  u.now(),
		UpdatedAt:  u.now(),
	}
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Episodes.Create(txCtx, rec); err != nil {
			return err
		}
		return u.saveSnapshot(txCtx, episodeID, env)
	})
	if err != nil {
		return CreateResponse{}, err
	}

	u.Registry.Put(episodeID, env)
	if u.Metrics != nil {
		u.Metrics.RecordReset()
	}
	return CreateResponse{
		EpisodeID:     episodeID,
		Config:        env.Config(),
		ResourceCount: env.ResourceCount(),
	}, nil
}

func (u UseCase) Reset(ctx context.Context, req ResetRequest) (ResetResponse, error) {
	if req.EpisodeID == "" {
		return ResetResponse{}, ErrInvalidRequest
	}
	env, ok := u.Registry.Get(req.EpisodeID)
	if !ok {
		return ResetResponse{}, ports.ErrNotFound
	}
	env.Reset()

	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Episodes.UpdateProgress(txCtx, req.EpisodeID, 0, ports.EpisodeStatusRunning, u.now()); err != nil {
			return err
		}
		return u.saveSnapshot(txCtx, req.EpisodeID, env)
	})
	if err != nil {
		return ResetResponse{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordReset()
	}
	return ResetResponse{
		EpisodeID:     req.EpisodeID,
		ResourceCount: env.ResourceCount(),
		Observations:  allObservations(env),
	}, nil
}

func (u UseCase) Step(ctx context.Context, req StepRequest) (StepResponse, error) {
	if req.EpisodeID == "" {
		return StepResponse{}, ErrInvalidRequest
	}
	env, ok := u.Registry.Get(req.EpisodeID)
	if !ok {
		return StepResponse{}, ports.ErrNotFound
	}

	actions := make([]commons.Action, len(req.Actions))
	for i, a := range req.Actions {
		actions[i] = commons.Action(a)
	}

	result, err := env.Step(actions)
	if err != nil {
		return StepResponse{}, err
	}

	status := ports.EpisodeStatusRunning
	if env.Done() {
		status = ports.EpisodeStatusDone
	}
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Transitions.Append(txCtx, ports.TransitionRecord{
			EpisodeID:     req.EpisodeID,
			Step:          env.ElapsedSteps(),
			Actions:       req.Actions,
			Rewards:       result.Rewards,
			Done:          env.Done(),
			ResourceCount: env.ResourceCount(),
			OccurredAt:    u.now(),
		}); err != nil {
			return err
		}
		if err := u.Episodes.UpdateProgress(txCtx, req.EpisodeID, env.ElapsedSteps(), status, u.now()); err != nil {
			return err
		}
		if env.Done() {
			return u.saveSnapshot(txCtx, req.EpisodeID, env)
		}
		return nil
	})
	if err != nil {
		return StepResponse{}, err
	}

	if u.Metrics != nil {
		u.Metrics.RecordStep(result.Collected, result.InfeasibleMoves, result.Respawned)
		if env.Done() {
			u.Metrics.RecordEpisodeDone(env.ElapsedSteps())
		}
	}

	return StepResponse{
		EpisodeID:     req.EpisodeID,
		ElapsedSteps:  env.ElapsedSteps(),
		Observations:  result.Observations,
		Rewards:       result.Rewards,
		Dones:         result.Dones,
		ResourceCount: env.ResourceCount(),
	}, nil
}

func (u UseCase) saveSnapshot(ctx context.Context, episodeID string, env *commons.Environment) error {
	if u.Snapshots == nil {
		return nil
	}
	grid := env.Grid()
	return u.Snapshots.Save(ctx, ports.GridSnapshotRecord{
		EpisodeID: episodeID,
		Step:      env.ElapsedSteps(),
		Width:     grid.Width(),
		Height:    grid.Height(),
		Cells:     grid.Encode(),
		TakenAt:   u.now(),
	})
}

func allObservations(env *commons.Environment) []commons.Observation {
	out := make([]commons.Observation, env.NAgents())
	for i := range out {
		out[i] = env.Observation(i)
	}
	return out
}

func newEpisodeID(now time.Time) (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate episode id: %w", err)
	}
	return "eps_" + now.Format("20060102") + "_" + hex.EncodeToString(b), nil
}
