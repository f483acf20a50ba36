package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
)

const (
	uncheckedMarker = "- [ ]"
	checkedMarker   = "- [x]"
)

var statusFieldPattern = regexp.MustCompile(`\*\*Status:\*\*\s*([^|\n]+)`)

// AgentStatus is the per-agent slice of the status report.
type AgentStatus struct {
	AgentName     string
	TaskFile      string
	CurrentTokens int
	MaxTokens     int
	MessageCount  int
}

// Report aggregates everything the status command shows. Task files that
// could not be read are listed in TaskErrors instead of failing the report.
type Report struct {
	GeneratedAt     time.Time
	Agents          []AgentStatus
	Tasks           []domain.TaskStatus
	TaskErrors      []string
	AnnotationFiles int
	AnnotationTotal int
}

// StatusService produces read-only status reports over the persisted
// contexts, the tasks directory and the annotation index.
type StatusService struct {
	contexts    ports.ContextRepository
	annotations ports.AnnotationRepository
	tasksDir    string
	clock       ports.Clock
}

func NewStatusService(contexts ports.ContextRepository, annotations ports.AnnotationRepository, tasksDir string, clock ports.Clock) *StatusService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &StatusService{
		contexts:    contexts,
		annotations: annotations,
		tasksDir:    tasksDir,
		clock:       clock,
	}
}

// TaskStatus reads one task file and counts its checklist markers: checked
// items as completed, unchecked items as the remaining total.
func (s *StatusService) TaskStatus(taskFile string) (domain.TaskStatus, error) {
	path := filepath.Join(s.tasksDir, taskFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.TaskStatus{}, domain.ErrTaskFileNotFound
		}
		return domain.TaskStatus{}, fmt.Errorf("read task file: %w", err)
	}

	content := string(data)
	status := "Unknown"
	if match := statusFieldPattern.FindStringSubmatch(content); match != nil {
		status = strings.TrimSpace(match[1])
	}

	return domain.TaskStatus{
		File:       taskFile,
		TotalTasks: strings.Count(content, uncheckedMarker),
		Completed:  strings.Count(content, checkedMarker),
		Status:     status,
	}, nil
}

// Report builds the full status report. Failures reading individual task
// files are recorded per file and never abort the report.
func (s *StatusService) Report(ctx context.Context) (Report, error) {
	report := Report{GeneratedAt: s.clock.Now()}

	contexts, err := s.contexts.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list agent contexts: %w", err)
	}

	for _, agentContext := range contexts {
		report.Agents = append(report.Agents, AgentStatus{
			AgentName:     agentContext.AgentName,
			TaskFile:      agentContext.TaskFile,
			CurrentTokens: agentContext.CurrentTokens,
			MaxTokens:     agentContext.MaxTokens,
			MessageCount:  len(agentContext.Messages),
		})
	}

	report.Tasks, report.TaskErrors = s.taskStatuses()

	index, err := s.annotations.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load annotation index: %w", err)
	}
	report.AnnotationFiles = len(index)
	report.AnnotationTotal = index.Total()

	return report, nil
}

func (s *StatusService) taskStatuses() ([]domain.TaskStatus, []string) {
	entries, err := os.ReadDir(s.tasksDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("read tasks directory: %v", err)}
	}

	var statuses []domain.TaskStatus
	var failures []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		status, err := s.TaskStatus(entry.Name())
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].File < statuses[j].File
	})

	return statuses, failures
}
