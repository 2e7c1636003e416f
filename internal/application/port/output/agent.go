package output

import (
	"context"

	"agent-pipeline/internal/domain/entity"
)

type Agent interface {
	Role() entity.AgentRole
	Run(ctx context.Context, in entity.AgentInput) (string, error)
}

type AgentRegistry interface {
	Register(name string, agent Agent)
	Get(name string) (Agent, bool)
	Names() []string
}
