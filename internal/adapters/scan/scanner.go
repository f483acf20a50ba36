// Package scan finds agent annotation markers in source files and builds the
// reverse index keyed by file path.
package scan

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
)

// companionWindow is how many lines after an anchor are inspected for
// companion markers.
const companionWindow = 4

var (
	agentPattern     = regexp.MustCompile(`@agent:\s*(\S+)`)
	timestampPattern = regexp.MustCompile(`@timestamp:\s*(.+)`)
	taskPattern      = regexp.MustCompile(`@task:\s*(.+)`)
	notesPattern     = regexp.MustCompile(`@notes:\s*(.+)`)
)

// Scanner reads annotation markers out of source text. Warnings about
// unreadable files go to Warn; scanning itself never fails.
type Scanner struct {
	Warn io.Writer
}

func NewScanner(warn io.Writer) *Scanner {
	if warn == nil {
		warn = io.Discard
	}
	return &Scanner{Warn: warn}
}

// ScanFile returns every annotation in the file, in line order. An anchor is a
// line matching `@agent: <name>`; the four lines after it may carry
// `@timestamp:`, `@task:` and `@notes:` companions, first match per field.
// Unreadable files yield zero annotations and a warning, never an error.
func (s *Scanner) ScanFile(path string) []domain.CodeAnnotation {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.Warn, "warning: scan %s: %v\n", path, err)
		return nil
	}

	return s.scanLines(path, splitLines(string(data)))
}

func (s *Scanner) scanLines(path string, lines []string) []domain.CodeAnnotation {
	var annotations []domain.CodeAnnotation

	for i, line := range lines {
		match := agentPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		ann := domain.CodeAnnotation{
			FilePath:   path,
			LineNumber: i + 1,
			AgentName:  match[1],
		}

		end := i + 1 + companionWindow
		if end > len(lines) {
			end = len(lines)
		}
		for _, follow := range lines[i+1 : end] {
			if ann.Timestamp == "" {
				if m := timestampPattern.FindStringSubmatch(follow); m != nil {
					ann.Timestamp = strings.TrimSpace(m[1])
				}
			}
			if ann.TaskRef == "" {
				if m := taskPattern.FindStringSubmatch(follow); m != nil {
					ann.TaskRef = strings.TrimSpace(m[1])
				}
			}
			if ann.Notes == "" {
				if m := notesPattern.FindStringSubmatch(follow); m != nil {
					ann.Notes = strings.TrimSpace(m[1])
				}
			}
		}

		annotations = append(annotations, ann)
	}

	return annotations
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
