package launch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SignalFileName is the file the blocking agent creates under the tasks
// directory when its track is done.
const SignalFileName = ".critical-path-complete"

// ErrPhaseBlocked means phase 2 was requested before the blocking agent
// signalled completion.
var ErrPhaseBlocked = errors.New("critical path not complete")

// Launcher writes instruction files for externally run agent sessions. It
// never starts processes itself; the operator pastes each instruction file
// into a session by hand.
type Launcher struct {
	roster    Roster
	agentsDir string
	tasksDir  string
}

func NewLauncher(roster Roster, agentsDir, tasksDir string) *Launcher {
	return &Launcher{roster: roster, agentsDir: agentsDir, tasksDir: tasksDir}
}

// SignalPath is where the phase gate file is expected.
func (l *Launcher) SignalPath() string {
	return filepath.Join(l.tasksDir, SignalFileName)
}

// SignalExists reports whether the blocking agent has finished.
func (l *Launcher) SignalExists() bool {
	_, err := os.Stat(l.SignalPath())
	return err == nil
}

// WriteInstructions renders and writes one agent's instruction file,
// returning its path.
func (l *Launcher) WriteInstructions(agent Agent, blocking bool) (string, error) {
	text, err := Instructions(agent, blocking)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(l.agentsDir, 0o700); err != nil {
		return "", fmt.Errorf("create agents directory: %w", err)
	}

	path := filepath.Join(l.agentsDir, agent.Name+"-instructions.txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("write instruction file: %w", err)
	}

	return path, nil
}

// Phase1 writes the blocking agent's instruction file.
func (l *Launcher) Phase1() (string, error) {
	return l.WriteInstructions(l.roster.Blocking(), true)
}

// Phase2 writes instruction files for every parallel agent. It refuses to run
// until the blocking agent's signal file exists.
func (l *Launcher) Phase2() ([]string, error) {
	if !l.SignalExists() {
		return nil, fmt.Errorf("%w: signal file %s not found", ErrPhaseBlocked, l.SignalPath())
	}

	paths := make([]string, 0, len(l.roster.Parallel()))
	for _, agent := range l.roster.Parallel() {
		path, err := l.WriteInstructions(agent, false)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
