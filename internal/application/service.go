package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
)

// Service owns the agent context lifecycle: registration, message appends,
// token-budget trimming and lookups. Persistence happens after every
// mutation; there is no in-process registry of agents.
type Service struct {
	contexts ports.ContextRepository
	clock    ports.Clock
}

func NewService(contexts ports.ContextRepository, clock ports.Clock) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{contexts: contexts, clock: clock}
}

// Register creates a fresh context for the agent with zero tokens and no
// messages, replacing any existing record under the same name.
func (s *Service) Register(ctx context.Context, agentName, taskFile string) (domain.AgentContext, error) {
	agentContext := domain.NewAgentContext(agentName, taskFile, s.timestamp())

	if err := s.contexts.Save(ctx, agentContext); err != nil {
		return domain.AgentContext{}, fmt.Errorf("save agent context: %w", err)
	}

	return agentContext, nil
}

// AppendResult reports the outcome of a message append.
type AppendResult struct {
	CurrentTokens int
	MessageCount  int
	Trimmed       int
}

// AppendMessage adds a message to a registered agent's context and persists
// it. When the append pushes the context over its token budget, the context
// is trimmed and persisted again.
func (s *Service) AppendMessage(ctx context.Context, agentName, role, content string, tokens int) (AppendResult, error) {
	if tokens < 0 {
		return AppendResult{}, fmt.Errorf("token cost must be non-negative, got %d", tokens)
	}

	agentContext, err := s.contexts.GetByName(ctx, agentName)
	if err != nil {
		if errors.Is(err, domain.ErrContextNotFound) {
			return AppendResult{}, fmt.Errorf("append to %s: %w", agentName, domain.ErrAgentNotRegistered)
		}
		return AppendResult{}, fmt.Errorf("load agent context: %w", err)
	}

	agentContext.Append(domain.Message{
		Role:      role,
		Content:   content,
		Timestamp: s.timestamp(),
		Tokens:    tokens,
	})

	if err := s.contexts.Save(ctx, agentContext); err != nil {
		return AppendResult{}, fmt.Errorf("save agent context: %w", err)
	}

	trimmed := 0
	if agentContext.OverBudget() {
		trimmed = agentContext.Trim()
		if err := s.contexts.Save(ctx, agentContext); err != nil {
			return AppendResult{}, fmt.Errorf("save trimmed agent context: %w", err)
		}
	}

	return AppendResult{
		CurrentTokens: agentContext.CurrentTokens,
		MessageCount:  len(agentContext.Messages),
		Trimmed:       trimmed,
	}, nil
}

// TrimResult reports the outcome of an explicit trim.
type TrimResult struct {
	Removed       int
	CurrentTokens int
}

// Trim forces a trim pass on the agent's persisted context, regardless of
// whether it is currently over budget.
func (s *Service) Trim(ctx context.Context, agentName string) (TrimResult, error) {
	agentContext, err := s.contexts.GetByName(ctx, agentName)
	if err != nil {
		return TrimResult{}, fmt.Errorf("load agent context: %w", err)
	}

	removed := agentContext.Trim()
	if removed > 0 {
		if err := s.contexts.Save(ctx, agentContext); err != nil {
			return TrimResult{}, fmt.Errorf("save trimmed agent context: %w", err)
		}
	}

	return TrimResult{Removed: removed, CurrentTokens: agentContext.CurrentTokens}, nil
}

// Load returns the persisted context for the agent, or
// domain.ErrContextNotFound when the agent was never registered.
func (s *Service) Load(ctx context.Context, agentName string) (domain.AgentContext, error) {
	agentContext, err := s.contexts.GetByName(ctx, agentName)
	if err != nil {
		return domain.AgentContext{}, err
	}

	return agentContext, nil
}

func (s *Service) timestamp() string {
	return s.clock.Now().Format(time.RFC3339)
}
