package ports

import (
	"context"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
)

type ContextRepository interface {
	GetByName(ctx context.Context, agentName string) (domain.AgentContext, error)
	List(ctx context.Context) ([]domain.AgentContext, error)
	Save(ctx context.Context, agentContext domain.AgentContext) error
}
