package inmemory

import "sync"

type Snapshot struct {
	StepTotal          uint64  `json:"step_total"`
	ResetTotal         uint64  `json:"reset_total"`
	EpisodeDoneTotal   uint64  `json:"episode_done_total"`
	ResourcesCollected uint64  `json:"resources_collected"`
	ResourcesRespawned uint64  `json:"resources_respawned"`
	InfeasibleMoves    uint64  `json:"infeasible_moves"`
	MeanEpisodeLength  float64 `json:"mean_episode_length"`
}

// Recorder accumulates simulation KPIs across all live environments. It is
// the only component shared between environment goroutines, hence the lock.
type Recorder struct {
	mu           sync.Mutex
	steps        uint64
	resets       uint64
	episodesDone uint64
	collected    uint64
	respawned    uint64
	infeasible   uint64
	episodeSteps uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordStep(collected, infeasible, respawned int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps++
	r.collected += uint64(collected)
	r.infeasible += uint64(infeasible)
	r.respawned += uint64(respawned)
}

func (r *Recorder) RecordReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets++
}

func (r *Recorder) RecordEpisodeDone(elapsedSteps int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.episodesDone++
	r.episodeSteps += uint64(elapsedSteps)
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		StepTotal:          r.steps,
		ResetTotal:         r.resets,
		EpisodeDoneTotal:   r.episodesDone,
		ResourcesCollected: r.collected,
		ResourcesRespawned: r.respawned,
		InfeasibleMoves:    r.infeasible,
	}
	if r.episodesDone > 0 {
		out.MeanEpisodeLength = float64(r.episodeSteps) / float64(r.episodesDone)
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
