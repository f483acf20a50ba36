package report

import (
	"testing"
	"time"

	"github.com/charlpcronje/fxd-coordinator/internal/application"
	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() application.Report {
	return application.Report{
		GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Agents: []application.AgentStatus{
			{
				AgentName:     "agent-cli",
				TaskFile:      "TRACK-C-CLI.md",
				CurrentTokens: 170_000,
				MaxTokens:     200_000,
				MessageCount:  3,
			},
		},
		Tasks: []domain.TaskStatus{
			{File: "TRACK-C-CLI.md", TotalTasks: 3, Completed: 2, Status: "In progress"},
		},
		AnnotationFiles: 2,
		AnnotationTotal: 5,
	}
}

func TestRenderViewSections(t *testing.T) {
	t.Parallel()

	output := renderView(sampleReport(), newStyles())

	assert.Contains(t, output, "FXD Agent Status Report")
	assert.Contains(t, output, "generated: 2026-08-31T10:00:00Z")
	assert.Contains(t, output, "ACTIVE AGENTS")
	assert.Contains(t, output, "agent-cli")
	assert.Contains(t, output, "task: TRACK-C-CLI.md")
	assert.Contains(t, output, "messages: 3")
	assert.Contains(t, output, "170.0k/200.0k tokens")
	assert.Contains(t, output, "TASK PROGRESS")
	assert.Contains(t, output, "progress: 2/3")
	assert.Contains(t, output, "status: In progress")
	assert.Contains(t, output, "CODE ANNOTATIONS")
	assert.Contains(t, output, "total: 5")
	assert.Contains(t, output, "files: 2")
}

func TestRenderViewEmptyReport(t *testing.T) {
	t.Parallel()

	output := renderView(application.Report{GeneratedAt: time.Unix(0, 0).UTC()}, newStyles())

	assert.Contains(t, output, "No agents registered.")
	assert.Contains(t, output, "No task files found.")
}

func TestRenderViewFlagsOverBudgetAgents(t *testing.T) {
	t.Parallel()

	rep := sampleReport()
	rep.Agents[0].CurrentTokens = 250_000

	output := renderView(rep, newStyles())
	assert.Contains(t, output, "[over budget]")
}

func TestRenderThroughProgram(t *testing.T) {
	t.Parallel()

	output, err := Render(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, output, "ACTIVE AGENTS")
}

func TestRenderTokenBarWidth(t *testing.T) {
	t.Parallel()

	s := newStyles()

	assert.Equal(t, "", renderTokenBar(50, 0, s))
	assert.Contains(t, renderTokenBar(0, 4, s), "[----]")
	assert.Contains(t, renderTokenBar(100, 4, s), "[====]")
	assert.Contains(t, renderTokenBar(150, 4, s), "[====]")
}
