// Package cli implements jiictl, which runs the dashboard analyses straight
// against the event store.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/app"
	"github.com/godilite/jii-dashboard/internal/config"
	"github.com/godilite/jii-dashboard/internal/repository"
	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/pkg/database"
)

// OpenFunc returns the store and the driver it speaks.
type OpenFunc func(ctx context.Context, cfg *config.Config) (*sql.DB, string, error)

// Runtime is what the commands share.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Open   OpenFunc
}

// OpenFromConfig connects with the configured driver and DSN.
func OpenFromConfig(ctx context.Context, cfg *config.Config) (*sql.DB, string, error) {
	driver, err := database.NormalizeDriver(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}
	db, err := database.New(ctx,
		database.WithDriver(driver),
		database.WithDataSource(cfg.DBPath),
		database.WithRetry(1, 0),
	)
	if err != nil {
		return nil, "", err
	}
	return db, driver, nil
}

type services struct {
	survey *service.SurveyService
	text   *service.TextService
	export *service.ExportService
	close  func() error
}

func (rt *Runtime) services(ctx context.Context) (*services, error) {
	db, driver, err := rt.Open(ctx, rt.Config)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	cat, err := app.LoadCatalog(rt.Config.CatalogPath, rt.Logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	analyzers := app.BuildAnalyzers(rt.Config.LexiconEnabled, rt.Config.LexiconPath, rt.Logger)
	mode := app.DefaultMode(rt.Config.SentimentMode, analyzers, rt.Logger)

	repo := repository.NewEventRepository(db, driver)
	return &services{
		survey: service.NewSurveyService(repo, cat, rt.Logger),
		text:   service.NewTextService(repo, cat, analyzers, mode, rt.Logger),
		export: service.NewExportService(repo, cat, rt.Logger),
		close:  db.Close,
	}, nil
}

// NewRootCommand builds the jiictl command tree.
func NewRootCommand(rt *Runtime) *cobra.Command {
	if rt.Open == nil {
		rt.Open = OpenFromConfig
	}
	if rt.Logger == nil {
		rt.Logger = zap.NewNop()
	}

	root := &cobra.Command{
		Use:           "jiictl",
		Short:         "Query the JII 2025 event and survey data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.Config.DBDriver, "driver", rt.Config.DBDriver, "database driver (sqlite3 or postgres)")
	flags.StringVar(&rt.Config.DBPath, "db", rt.Config.DBPath, "database path or DSN")
	flags.StringVar(&rt.Config.CatalogPath, "catalog", rt.Config.CatalogPath, "question catalog YAML (built-in when empty)")
	flags.BoolVar(&rt.Config.LexiconEnabled, "lexicon", rt.Config.LexiconEnabled, "enable lexicon sentiment")
	flags.StringVar(&rt.Config.LexiconPath, "lexicon-path", rt.Config.LexiconPath, "external sentiment lexicon file")

	root.AddCommand(
		newExportCommand(rt),
		newWordsCommand(rt),
		newSentimentCommand(rt),
		newRatingsCommand(rt),
		newCategoriesCommand(rt),
	)
	return root
}
