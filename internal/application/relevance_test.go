package application

import (
	"context"
	"testing"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevantContextFiltersByAuthorAndDay(t *testing.T) {
	t.Parallel()

	contexts := newTestContextRepo(t)
	annotations := newTestAnnotationRepo(t)

	other := domain.AgentContext{
		AgentName: "agent-persistence",
		Timestamp: "2026-08-30T09:00:00Z",
		TaskFile:  "TRACK-F-PERSISTENCE.md",
		MaxTokens: domain.DefaultMaxTokens,
		Messages: []domain.Message{
			{Role: "user", Content: "same day", Timestamp: "2026-08-30T10:00:00Z", Tokens: 10},
			{Role: "assistant", Content: "same day too", Timestamp: "2026-08-30T18:30:00Z", Tokens: 10},
			{Role: "user", Content: "different day", Timestamp: "2026-08-29T10:00:00Z", Tokens: 10},
		},
	}
	other.CurrentTokens = 30
	require.NoError(t, contexts.Save(context.Background(), other))

	require.NoError(t, annotations.Replace(context.Background(), domain.AnnotationIndex{
		"modules/fx-persistence.ts": {
			{
				FilePath:   "modules/fx-persistence.ts",
				LineNumber: 4,
				AgentName:  "agent-persistence",
				Timestamp:  "2026-08-30T11:00:00Z",
				TaskRef:    "TRACK-F-PERSISTENCE.md#F.1",
				Notes:      "schema creation",
			},
			{
				FilePath:   "modules/fx-persistence.ts",
				LineNumber: 20,
				AgentName:  "agent-modules-persist",
				Timestamp:  "2026-08-30T12:00:00Z",
			},
		},
	}))

	service := NewRelevanceService(contexts, annotations)

	relevant, err := service.RelevantContext(context.Background(), "agent-modules-persist", "modules/fx-persistence.ts")
	require.NoError(t, err)

	// Only the other author's annotation contributes; its two same-day
	// messages match, the prior-day message does not. The second annotation
	// belongs to the requesting agent and is skipped; its author has no
	// stored context anyway.
	require.Len(t, relevant, 2)
	for _, entry := range relevant {
		assert.Equal(t, "agent-persistence", entry.Agent)
		assert.Equal(t, "TRACK-F-PERSISTENCE.md#F.1", entry.Task)
		assert.Equal(t, "schema creation", entry.Notes)
		assert.Contains(t, entry.Message.Content, "same day")
	}
}

func TestRelevantContextSkipsAuthorsWithoutStoredContext(t *testing.T) {
	t.Parallel()

	contexts := newTestContextRepo(t)
	annotations := newTestAnnotationRepo(t)

	require.NoError(t, annotations.Replace(context.Background(), domain.AnnotationIndex{
		"a.ts": {{FilePath: "a.ts", LineNumber: 1, AgentName: "agent-gone", Timestamp: "2026-08-30T11:00:00Z"}},
	}))

	service := NewRelevanceService(contexts, annotations)

	relevant, err := service.RelevantContext(context.Background(), "agent-cli", "a.ts")
	require.NoError(t, err)
	assert.Empty(t, relevant)
}

func TestRelevantContextUnannotatedFile(t *testing.T) {
	t.Parallel()

	service := NewRelevanceService(newTestContextRepo(t), newTestAnnotationRepo(t))

	relevant, err := service.RelevantContext(context.Background(), "agent-cli", "unknown.ts")
	require.NoError(t, err)
	assert.Empty(t, relevant)
}
