package domain

const (
	// DefaultMaxTokens is the context budget applied to newly registered agents.
	DefaultMaxTokens = 200_000

	// TrimHeadroom is subtracted from the budget to form the trim target, so a
	// trimmed context has room for more messages before the next trim.
	TrimHeadroom = 20_000
)

// Message is one entry in an agent's conversation log. The token cost is
// supplied by the caller, never computed here.
type Message struct {
	Role      string
	Content   string
	Timestamp string
	Tokens    int
}

// AgentContext is the persisted conversation state for a single named agent.
type AgentContext struct {
	AgentName     string
	Timestamp     string
	TaskFile      string
	CurrentTokens int
	MaxTokens     int
	Messages      []Message
}

// NewAgentContext returns an empty context with the default token budget.
func NewAgentContext(agentName, taskFile, timestamp string) AgentContext {
	return AgentContext{
		AgentName: agentName,
		Timestamp: timestamp,
		TaskFile:  taskFile,
		MaxTokens: DefaultMaxTokens,
	}
}

// Append adds a message and grows the running token total.
func (c *AgentContext) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.CurrentTokens += msg.Tokens
}

// OverBudget reports whether the context has outgrown its token budget.
func (c *AgentContext) OverBudget() bool {
	return c.CurrentTokens > c.MaxTokens
}

// TrimTarget is the token total trimming drives the context down to.
func (c *AgentContext) TrimTarget() int {
	return c.MaxTokens - TrimHeadroom
}

// Trim discards the oldest messages after the first until the running total is
// at or below the trim target. The message at position 0 is treated as the
// pinned system message and is never removed. Trimming removes whole messages,
// so the result may land below the target, and a context whose only remaining
// message is still over budget is left as-is. Returns the number of messages
// removed.
func (c *AgentContext) Trim() int {
	target := c.TrimTarget()
	removed := 0

	for c.CurrentTokens > target && len(c.Messages) > 1 {
		dropped := c.Messages[1]
		c.Messages = append(c.Messages[:1], c.Messages[2:]...)
		c.CurrentTokens -= dropped.Tokens
		removed++
	}

	return removed
}
