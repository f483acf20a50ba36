package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlpcronje/fxd-coordinator/internal/ports"
)

const backupDirFormat = "20060102_150405"

// BackupService takes point-in-time copies of every context file plus the
// annotation index into a timestamp-named subdirectory. Backups accumulate;
// there is no rotation.
type BackupService struct {
	contextsDir     string
	backupsDir      string
	annotationsPath string
	clock           ports.Clock
}

func NewBackupService(contextsDir, backupsDir, annotationsPath string, clock ports.Clock) *BackupService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &BackupService{
		contextsDir:     contextsDir,
		backupsDir:      backupsDir,
		annotationsPath: annotationsPath,
		clock:           clock,
	}
}

// BackupAll copies the current context files and annotation index and returns
// the backup directory it created.
func (s *BackupService) BackupAll(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	backupDir := filepath.Join(s.backupsDir, s.clock.Now().Format(backupDirFormat))
	if err := os.MkdirAll(backupDir, 0o700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	entries, err := os.ReadDir(s.contextsDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read contexts directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		src := filepath.Join(s.contextsDir, entry.Name())
		dst := filepath.Join(backupDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("backup %s: %w", entry.Name(), err)
		}
	}

	if _, err := os.Stat(s.annotationsPath); err == nil {
		dst := filepath.Join(backupDir, filepath.Base(s.annotationsPath))
		if err := copyFile(s.annotationsPath, dst); err != nil {
			return "", fmt.Errorf("backup annotation index: %w", err)
		}
	}

	return backupDir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
