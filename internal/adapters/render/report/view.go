package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charlpcronje/fxd-coordinator/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const tokenBarWidth = 24

func renderView(rep application.Report, s styles) string {
	lines := []string{
		s.title.Render("FXD Agent Status Report"),
		s.header.Render("generated: " + rep.GeneratedAt.Format(time.RFC3339)),
	}

	lines = append(lines, s.section.Render(renderAgents(rep, s)))
	lines = append(lines, s.section.Render(renderTasks(rep, s)))
	lines = append(lines, s.section.Render(renderAnnotations(rep, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAgents(rep application.Report, s styles) string {
	parts := []string{s.title.Render("ACTIVE AGENTS")}

	if len(rep.Agents) == 0 {
		parts = append(parts, s.empty.Render("No agents registered."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, agent := range rep.Agents {
		parts = append(parts, s.agent.Render(agent.AgentName))
		parts = append(parts, s.detail.Render("  task: "+agent.TaskFile))
		parts = append(parts, "  "+tokenLine(agent, s))
		parts = append(parts, s.detail.Render(fmt.Sprintf("  messages: %d", agent.MessageCount)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func tokenLine(agent application.AgentStatus, s styles) string {
	usedPercent := 0.0
	if agent.MaxTokens > 0 {
		usedPercent = float64(agent.CurrentTokens) / float64(agent.MaxTokens) * 100
	}

	bar := renderTokenBar(usedPercent, tokenBarWidth, s)
	meta := s.detail.Render(fmt.Sprintf("%s/%s tokens", formatCount(agent.CurrentTokens), formatCount(agent.MaxTokens)))

	line := lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", meta)
	if usedPercent > 100 {
		line += " " + s.warning.Render("[over budget]")
	}

	return line
}

func renderTasks(rep application.Report, s styles) string {
	parts := []string{s.title.Render("TASK PROGRESS")}

	if len(rep.Tasks) == 0 && len(rep.TaskErrors) == 0 {
		parts = append(parts, s.empty.Render("No task files found."))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, task := range rep.Tasks {
		parts = append(parts, s.agent.Render(task.File))
		parts = append(parts, s.detail.Render("  progress: "+task.Progress()))
		parts = append(parts, s.detail.Render("  status: "+task.Status))
	}

	for _, failure := range rep.TaskErrors {
		parts = append(parts, s.warning.Render("  "+failure))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAnnotations(rep application.Report, s styles) string {
	parts := []string{
		s.title.Render("CODE ANNOTATIONS"),
		s.detail.Render(fmt.Sprintf("  total: %d", rep.AnnotationTotal)),
		s.detail.Render(fmt.Sprintf("  files: %d", rep.AnnotationFiles)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTokenBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatCount(v int) string {
	if v < 1000 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%.1fk", float64(v)/1000.0)
}
