package service

import (
	"sort"
	"sync"

	"agent-pipeline/internal/application/port/output"
)

var _ output.AgentRegistry = (*AgentRegistryImpl)(nil)

// AgentRegistryImpl maps names to agents. Registering an existing name replaces
// the previous agent.
type AgentRegistryImpl struct {
	mu     sync.RWMutex
	agents map[string]output.Agent
}

func NewAgentRegistry() *AgentRegistryImpl {
	return &AgentRegistryImpl{
		agents: make(map[string]output.Agent),
	}
}

func (r *AgentRegistryImpl) Register(name string, agent output.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[name] = agent
}

func (r *AgentRegistryImpl) Get(name string) (output.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.agents[name]
	return agent, ok
}

func (r *AgentRegistryImpl) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]string, 0, len(r.agents))
	for name := range r.agents {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
