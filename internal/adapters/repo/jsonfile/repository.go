package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	contextsDirKey  = "contexts.dir"
	annotationsKey  = "annotations.path"
	rootEnvVar      = "FXD_ROOT"
	coordinatorDir  = "agent-coordinator"
	contextFileMode = 0o600
	contextDirMode  = 0o700
	tempFilePattern = ".context-*.json.tmp"
	contextFileExt  = ".json"
)

// Repository stores one whole-record JSON document per agent under a single
// directory. Every save overwrites the agent's file via temp file + rename.
type Repository struct {
	contextsDir string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ContextRepository = (*Repository)(nil)

// RootDir resolves the coordinated project root: the FXD_ROOT environment
// variable when set, otherwise the current working directory.
func RootDir() (string, error) {
	if root := os.Getenv(rootEnvVar); root != "" {
		return filepath.Clean(root), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	return wd, nil
}

// ApplyDefaults seeds path defaults on cfg and reads the optional config file
// at <root>/agent-coordinator/config.toml. Both repositories and the wiring
// layer share the resulting configuration.
func ApplyDefaults(cfg *viper.Viper) error {
	root, err := RootDir()
	if err != nil {
		return err
	}

	base := filepath.Join(root, coordinatorDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(base)
	cfg.SetDefault("coordinator.root", root)
	cfg.SetDefault(contextsDirKey, filepath.Join(base, "contexts"))
	cfg.SetDefault(annotationsKey, filepath.Join(base, "annotations.json"))
	cfg.SetDefault("backups.dir", filepath.Join(base, "backups"))
	cfg.SetDefault("agents.dir", filepath.Join(base, "agents"))
	cfg.SetDefault("tasks.dir", filepath.Join(root, "tasks"))
	cfg.SetDefault("scan.extensions", []string{".ts", ".js", ".go", ".py", ".sql", ".md"})
	cfg.SetDefault("scan.skip", []string{"node_modules", "dist", ".git", "vendor", coordinatorDir})
	cfg.SetDefault("daemon.interval", 300)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}

	contextsDir := cfg.GetString(contextsDirKey)
	if contextsDir == "" {
		return nil, errors.New("contexts directory is empty")
	}
	contextsDir, err := normalizePath(contextsDir)
	if err != nil {
		return nil, err
	}

	return &Repository{contextsDir: contextsDir, mu: lockForPath(contextsDir)}, nil
}

// Dir returns the directory holding the per-agent context files.
func (r *Repository) Dir() string {
	return r.contextsDir
}

func (r *Repository) Save(ctx context.Context, agentContext domain.AgentContext) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if agentContext.AgentName == "" {
		return errors.New("agent name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(toSchema(agentContext), "", "  ")
	if err != nil {
		return fmt.Errorf("encode context file: %w", err)
	}

	return writeFileAtomic(r.pathFor(agentContext.AgentName), data, tempFilePattern)
}

func (r *Repository) GetByName(ctx context.Context, agentName string) (domain.AgentContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.AgentContext{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.pathFor(agentName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.AgentContext{}, domain.ErrContextNotFound
		}
		return domain.AgentContext{}, fmt.Errorf("read context file: %w", err)
	}

	var entry contextSchema
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.AgentContext{}, fmt.Errorf("decode context file: %w", err)
	}

	return fromSchema(entry), nil
}

func (r *Repository) List(ctx context.Context) ([]domain.AgentContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.contextsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read contexts directory: %w", err)
	}

	contexts := make([]domain.AgentContext, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), contextFileExt) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.contextsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read context file %s: %w", entry.Name(), err)
		}

		var record contextSchema
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("decode context file %s: %w", entry.Name(), err)
		}

		contexts = append(contexts, fromSchema(record))
	}

	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].AgentName < contexts[j].AgentName
	})

	return contexts, nil
}

func (r *Repository) pathFor(agentName string) string {
	return filepath.Join(r.contextsDir, agentName+contextFileExt)
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeFileAtomic(path string, data []byte, pattern string) error {
	if err := os.MkdirAll(filepath.Dir(path), contextDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(contextFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(path, contextFileMode); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}

	return nil
}
