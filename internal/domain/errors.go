package domain

import "errors"

var (
	ErrAgentNotRegistered = errors.New("agent not registered")
	ErrContextNotFound    = errors.New("agent context not found")
	ErrTaskFileNotFound   = errors.New("task file not found")
)
