package jsonfile

import "github.com/charlpcronje/fxd-coordinator/internal/domain"

// Field names match the coordinator's historical context files, so existing
// records load unchanged.

type contextSchema struct {
	AgentName     string          `json:"agent_name"`
	Timestamp     string          `json:"timestamp"`
	TaskFile      string          `json:"task_file"`
	CurrentTokens int             `json:"current_tokens"`
	MaxTokens     int             `json:"max_tokens"`
	Messages      []messageSchema `json:"messages"`
}

type messageSchema struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Tokens    int    `json:"tokens"`
}

type annotationSchema struct {
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	AgentName  string `json:"agent_name"`
	Timestamp  string `json:"timestamp"`
	TaskRef    string `json:"task_ref"`
	Notes      string `json:"notes"`
}

func toSchema(agentContext domain.AgentContext) contextSchema {
	messages := make([]messageSchema, 0, len(agentContext.Messages))
	for _, msg := range agentContext.Messages {
		messages = append(messages, messageSchema{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Tokens:    msg.Tokens,
		})
	}

	return contextSchema{
		AgentName:     agentContext.AgentName,
		Timestamp:     agentContext.Timestamp,
		TaskFile:      agentContext.TaskFile,
		CurrentTokens: agentContext.CurrentTokens,
		MaxTokens:     agentContext.MaxTokens,
		Messages:      messages,
	}
}

func fromSchema(record contextSchema) domain.AgentContext {
	maxTokens := record.MaxTokens
	if maxTokens == 0 {
		maxTokens = domain.DefaultMaxTokens
	}

	messages := make([]domain.Message, 0, len(record.Messages))
	for _, msg := range record.Messages {
		messages = append(messages, domain.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Tokens:    msg.Tokens,
		})
	}

	return domain.AgentContext{
		AgentName:     record.AgentName,
		Timestamp:     record.Timestamp,
		TaskFile:      record.TaskFile,
		CurrentTokens: record.CurrentTokens,
		MaxTokens:     maxTokens,
		Messages:      messages,
	}
}

func toAnnotationSchema(ann domain.CodeAnnotation) annotationSchema {
	return annotationSchema{
		FilePath:   ann.FilePath,
		LineNumber: ann.LineNumber,
		AgentName:  ann.AgentName,
		Timestamp:  ann.Timestamp,
		TaskRef:    ann.TaskRef,
		Notes:      ann.Notes,
	}
}

func fromAnnotationSchema(record annotationSchema) domain.CodeAnnotation {
	return domain.CodeAnnotation{
		FilePath:   record.FilePath,
		LineNumber: record.LineNumber,
		AgentName:  record.AgentName,
		Timestamp:  record.Timestamp,
		TaskRef:    record.TaskRef,
		Notes:      record.Notes,
	}
}
