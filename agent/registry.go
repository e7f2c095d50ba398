package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
)

// Factory constructs one agent. Construction may fail, in which case the
// agent is recorded as unavailable rather than aborting startup.
type Factory func() (Agent, error)

// Registry holds the fixed set of named agents loaded at process start.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Agent
	failed map[string]error
	log    *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		agents: make(map[string]Agent),
		failed: make(map[string]error),
		log:    log.WithComponent("agent-registry"),
	}
}

// Register attempts to construct and register an agent under name.
// A failed load is recorded; RunSafe reports such agents as unavailable.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := factory()
	if err != nil {
		r.failed[name] = err
		r.log.Warn("agent failed to load", logger.Fields(
			logger.FieldAgent, name,
			logger.FieldError, err.Error(),
		))
		return
	}
	if a == nil {
		r.failed[name] = fmt.Errorf("factory returned nil agent")
		return
	}
	r.agents[name] = a
	r.log.Info("agent loaded", logger.Fields(logger.FieldAgent, name))
}

// Get returns the loaded agent for name.
func (r *Registry) Get(name string) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[name]
	return a, ok
}

// Names returns the names of all loaded agents in sorted order.
// Agents that failed to load are excluded.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FailedNames returns the names of agents that failed to load.
func (r *Registry) FailedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.failed))
	for name := range r.failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckHealth reports the loaded agent pool. Agents that failed to load
// degrade the component; the remaining agents still run.
func (r *Registry) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "agents", Status: observability.HealthStatusUp}
	if failed := r.FailedNames(); len(failed) > 0 {
		h.Status = observability.HealthStatusDegraded
		h.Message = "some agents failed to load"
		h.Details = map[string]string{"failed": strings.Join(failed, ",")}
	}
	return h
}
