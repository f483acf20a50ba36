package domain

import "fmt"

// TaskStatus summarizes checklist progress for one task file.
type TaskStatus struct {
	File       string
	TotalTasks int
	Completed  int
	Status     string
}

// Progress renders the completed/total checklist counts.
func (s TaskStatus) Progress() string {
	return fmt.Sprintf("%d/%d", s.Completed, s.TotalTasks)
}
