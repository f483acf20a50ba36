// Package launch generates per-agent instruction files for externally run
// coding sessions and sequences the two launch phases: one blocking agent,
// then the rest in parallel once a filesystem signal appears.
package launch

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed roster.toml
var defaultRosterTOML []byte

// Agent describes one externally launched coding agent.
type Agent struct {
	Name        string   `toml:"name"`
	TaskFile    string   `toml:"task_file"`
	Section     string   `toml:"section,omitempty"`
	Priority    string   `toml:"priority"`
	DependsOn   string   `toml:"depends_on,omitempty"`
	Description string   `toml:"description"`
	Mission     string   `toml:"mission"`
	OwnedFiles  []string `toml:"owned_files,omitempty"`
	Marker      string   `toml:"marker,omitempty"`
	StartTask   string   `toml:"start_task"`
	Coordinate  string   `toml:"coordinate,omitempty"`
}

// Roster is the ordered set of agents to launch. The first entry is the
// blocking agent; everything after it runs in phase 2.
type Roster struct {
	Agents []Agent `toml:"agents"`
}

// Blocking returns the phase-1 agent.
func (r Roster) Blocking() Agent {
	return r.Agents[0]
}

// Parallel returns the phase-2 agents.
func (r Roster) Parallel() []Agent {
	return r.Agents[1:]
}

func (r Roster) validate() error {
	if len(r.Agents) == 0 {
		return errors.New("roster has no agents")
	}

	seen := make(map[string]struct{}, len(r.Agents))
	for _, agent := range r.Agents {
		if agent.Name == "" {
			return errors.New("roster agent with empty name")
		}
		if agent.TaskFile == "" {
			return fmt.Errorf("agent %s has no task file", agent.Name)
		}
		if _, ok := seen[agent.Name]; ok {
			return fmt.Errorf("duplicate roster agent %s", agent.Name)
		}
		seen[agent.Name] = struct{}{}
	}

	return nil
}

// DefaultRoster returns the embedded roster.
func DefaultRoster() (Roster, error) {
	return decodeRoster(defaultRosterTOML)
}

// LoadRoster reads a roster file, falling back to the embedded default when
// the file does not exist.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRoster()
		}
		return Roster{}, fmt.Errorf("read roster file: %w", err)
	}

	return decodeRoster(data)
}

func decodeRoster(data []byte) (Roster, error) {
	var roster Roster
	if err := toml.Unmarshal(data, &roster); err != nil {
		return Roster{}, fmt.Errorf("decode roster: %w", err)
	}
	if err := roster.validate(); err != nil {
		return Roster{}, err
	}

	return roster, nil
}
