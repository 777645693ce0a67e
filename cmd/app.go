package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/chriserin/px/internal/config"
	"github.com/chriserin/px/internal/db"
	"github.com/chriserin/px/internal/explorer"
	"github.com/chriserin/px/internal/importer"
	"github.com/chriserin/px/internal/logging"
	"github.com/chriserin/px/internal/model"
	"github.com/chriserin/px/internal/store"
	"github.com/chriserin/px/internal/ui"
)

const (
	pxDir      = "px"
	configPath = "px/config.yaml"
)

// logOutput receives log lines; command output goes to the writer passed to
// each Run function.
var logOutput io.Writer = os.Stderr

// app holds what every command needs once `px init` has run.
type app struct {
	cfg *config.Config
	db  *sql.DB
	log *zap.Logger
	svc *explorer.Service
}

func openApp() (*app, error) {
	if _, err := os.Stat(pxDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `px init` first")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err := logging.New(cfg.LogLevel, logOutput)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg: cfg,
		db:  sqlDB,
		log: log,
		svc: explorer.New(store.NewSQLite(sqlDB)),
	}, nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	a.db.Close()
}

// importer builds an importer that reports progress to w.
func (a *app) importer(w io.Writer) *importer.Importer {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return importer.New(a.svc, a.log,
		importer.WithBatchSize(a.cfg.Import.BatchSize),
		importer.WithProgress(func(p importer.Progress) { ui.ProgressLine(w, p, tty) }),
	)
}

func (a *app) resolve(ctx context.Context, table store.Table, raw string) (string, error) {
	return a.svc.Resolve(ctx, table, raw)
}

func (a *app) printProjects(ctx context.Context, w io.Writer) error {
	projects, err := a.svc.ProjectTree(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	ui.ProjectTree(w, projects)
	return nil
}

func (a *app) printFeatures(ctx context.Context, w io.Writer) error {
	forest, err := a.svc.FeatureTree(ctx)
	switch {
	case errors.Is(err, model.ErrDetached):
		a.log.Warn("feature tree incomplete", zap.Error(err))
	case err != nil:
		return fmt.Errorf("loading features: %w", err)
	}
	ui.FeatureTree(w, forest)
	return nil
}
