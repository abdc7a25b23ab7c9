package sim

import (
	"sync"

	"github.com/timf34/cpr-appropriation/internal/domain/commons"
)

// Registry holds the live environments keyed by episode id. Each
// environment is single-threaded by design; the registry lock only guards
// the map, not the stepping of individual environments.
type Registry struct {
	mu   sync.RWMutex
	envs map[string]*commons.Environment
}

func NewRegistry() *Registry {
	return &Registry{envs: make(map[string]*commons.Environment)}
}

func (r *Registry) Put(episodeID string, env *commons.Environment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs[episodeID] = env
}

func (r *Registry) Get(episodeID string) (*commons.Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.envs[episodeID]
	return env, ok
}

func (r *Registry) Remove(episodeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.envs, episodeID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.envs)
}
