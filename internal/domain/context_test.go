package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildContext(costs ...int) AgentContext {
	ctx := NewAgentContext("agent-test", "TASK.md", "2026-08-31T10:00:00Z")
	for i, cost := range costs {
		role := "user"
		if i == 0 {
			role = "system"
		}
		ctx.Append(Message{Role: role, Content: "msg", Timestamp: "2026-08-31T10:00:00Z", Tokens: cost})
	}
	return ctx
}

func TestAppendMaintainsTokenSum(t *testing.T) {
	t.Parallel()

	ctx := buildContext(100, 2_000, 30_000)

	sum := 0
	for _, msg := range ctx.Messages {
		sum += msg.Tokens
	}

	assert.Equal(t, sum, ctx.CurrentTokens)
	assert.Equal(t, 32_100, ctx.CurrentTokens)
}

func TestTrimWorkedExample(t *testing.T) {
	t.Parallel()

	ctx := buildContext(0, 50_000, 80_000, 90_000)
	require.Equal(t, 220_000, ctx.CurrentTokens)
	require.True(t, ctx.OverBudget())

	removed := ctx.Trim()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 170_000, ctx.CurrentTokens)
	require.Len(t, ctx.Messages, 3)
	assert.Equal(t, "system", ctx.Messages[0].Role)
	assert.Equal(t, 80_000, ctx.Messages[1].Tokens)
	assert.Equal(t, 90_000, ctx.Messages[2].Tokens)
}

func TestTrimNeverRemovesPinnedMessage(t *testing.T) {
	t.Parallel()

	ctx := buildContext(250_000)
	require.True(t, ctx.OverBudget())

	removed := ctx.Trim()

	assert.Equal(t, 0, removed)
	require.Len(t, ctx.Messages, 1)
	assert.Equal(t, 250_000, ctx.CurrentTokens)
}

func TestTrimStopsWhenOneMessageRemains(t *testing.T) {
	t.Parallel()

	// Pinned message alone is over the target; everything after it goes.
	ctx := buildContext(190_000, 30_000, 40_000)

	removed := ctx.Trim()

	assert.Equal(t, 2, removed)
	require.Len(t, ctx.Messages, 1)
	assert.Equal(t, 190_000, ctx.CurrentTokens)
	assert.Greater(t, ctx.CurrentTokens, ctx.TrimTarget())
}

func TestTrimNoopUnderTarget(t *testing.T) {
	t.Parallel()

	ctx := buildContext(0, 10_000, 20_000)

	removed := ctx.Trim()

	assert.Equal(t, 0, removed)
	assert.Len(t, ctx.Messages, 3)
	assert.Equal(t, 30_000, ctx.CurrentTokens)
}

func TestTrimMayOvershootTarget(t *testing.T) {
	t.Parallel()

	ctx := buildContext(0, 150_000, 60_000)
	require.Equal(t, 210_000, ctx.CurrentTokens)

	removed := ctx.Trim()

	// Removing the 150k message lands well below the 180k target.
	assert.Equal(t, 1, removed)
	assert.Equal(t, 60_000, ctx.CurrentTokens)
}

func TestNewAgentContextDefaults(t *testing.T) {
	t.Parallel()

	ctx := NewAgentContext("agent-docs", "TRACK-E-DOCS.md", "2026-08-31T10:00:00Z")

	assert.Equal(t, DefaultMaxTokens, ctx.MaxTokens)
	assert.Zero(t, ctx.CurrentTokens)
	assert.Empty(t, ctx.Messages)
	assert.False(t, ctx.OverBudget())
	assert.Equal(t, 180_000, ctx.TrimTarget())
}
