package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charlpcronje/fxd-coordinator/internal/adapters/render/report"
	jsonrepo "github.com/charlpcronje/fxd-coordinator/internal/adapters/repo/jsonfile"
	"github.com/charlpcronje/fxd-coordinator/internal/application"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	service        *application.Service
	relevance      *application.RelevanceService
	status         *application.StatusService
	backup         *application.BackupService
	contexts       *jsonrepo.Repository
	annotations    *jsonrepo.AnnotationRepository
	reportRenderer func(application.Report) (string, error)
	root           string
	agentsDir      string
	tasksDir       string
	rosterPath     string
	scanExtensions []string
	scanSkip       []string
	daemonInterval time.Duration
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg := viper.New()

	contexts, err := jsonrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire context repository: %w", err)
	}

	annotations, err := jsonrepo.NewAnnotationRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire annotation repository: %w", err)
	}

	tasksDir := cfg.GetString("tasks.dir")
	clock := ports.SystemClock{}

	return &app{
		service:        application.NewService(contexts, clock),
		relevance:      application.NewRelevanceService(contexts, annotations),
		status:         application.NewStatusService(contexts, annotations, tasksDir, clock),
		backup:         application.NewBackupService(contexts.Dir(), cfg.GetString("backups.dir"), annotations.Path(), clock),
		contexts:       contexts,
		annotations:    annotations,
		reportRenderer: report.Render,
		root:           cfg.GetString("coordinator.root"),
		agentsDir:      cfg.GetString("agents.dir"),
		tasksDir:       tasksDir,
		rosterPath:     filepath.Join(filepath.Dir(annotations.Path()), "roster.toml"),
		scanExtensions: cfg.GetStringSlice("scan.extensions"),
		scanSkip:       cfg.GetStringSlice("scan.skip"),
		daemonInterval: time.Duration(cfg.GetInt("daemon.interval")) * time.Second,
		now:            time.Now,
	}, nil
}
