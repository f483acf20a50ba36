package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
)

// RelevantMessage is one message from another agent that worked on the same
// file, paired with the annotation that linked it.
type RelevantMessage struct {
	Agent   string
	Task    string
	Message domain.Message
	Notes   string
}

// RelevanceService cross-references the annotation index with other agents'
// persisted contexts.
type RelevanceService struct {
	contexts    ports.ContextRepository
	annotations ports.AnnotationRepository
}

func NewRelevanceService(contexts ports.ContextRepository, annotations ports.AnnotationRepository) *RelevanceService {
	return &RelevanceService{contexts: contexts, annotations: annotations}
}

// RelevantContext returns messages from other agents that annotated filePath,
// filtered to the calendar day of each annotation's timestamp. The match is a
// plain day-prefix comparison, nothing smarter.
func (s *RelevanceService) RelevantContext(ctx context.Context, agentName, filePath string) ([]RelevantMessage, error) {
	index, err := s.annotations.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load annotation index: %w", err)
	}

	var relevant []RelevantMessage
	for _, ann := range index[filePath] {
		if ann.AgentName == agentName {
			continue
		}

		otherContext, err := s.contexts.GetByName(ctx, ann.AgentName)
		if err != nil {
			if errors.Is(err, domain.ErrContextNotFound) {
				continue
			}
			return nil, fmt.Errorf("load context for %s: %w", ann.AgentName, err)
		}

		day := dayPrefix(ann.Timestamp)
		for _, msg := range otherContext.Messages {
			if strings.HasPrefix(msg.Timestamp, day) {
				relevant = append(relevant, RelevantMessage{
					Agent:   ann.AgentName,
					Task:    ann.TaskRef,
					Message: msg,
					Notes:   ann.Notes,
				})
			}
		}
	}

	return relevant, nil
}

// dayPrefix takes the YYYY-MM-DD head of an RFC 3339 timestamp.
func dayPrefix(timestamp string) string {
	if len(timestamp) > 10 {
		return timestamp[:10]
	}
	return timestamp
}
