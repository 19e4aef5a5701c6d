package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/swingsignal/internal/archive"
	"github.com/ternarybob/swingsignal/internal/common"
	"github.com/ternarybob/swingsignal/internal/handlers"
	"github.com/ternarybob/swingsignal/internal/render"
	"github.com/ternarybob/swingsignal/internal/report"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Loader         *report.Loader
	Renderer       *render.Renderer
	ArchiveService *archive.Service

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	PageHandler   *handlers.PageHandler
	ReportHandler *handlers.ReportHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	loaderOpts := []report.LoaderOption{report.WithLogger(logger)}
	if cfg.Reports.BaseURL != "" {
		loaderOpts = append(loaderOpts, report.WithBaseURL(cfg.Reports.BaseURL))
		if cfg.Reports.RateLimit > 0 {
			loaderOpts = append(loaderOpts, report.WithRateLimit(cfg.Reports.RateLimit))
		}
	}
	app.Loader = report.NewLoader(cfg.Reports.Dir, loaderOpts...)

	app.Renderer = render.NewRenderer(logger)

	app.ArchiveService = archive.NewService(cfg.Reports.Dir, cfg.Archive.RefreshSchedule, logger)
	if err := app.ArchiveService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start archive index: %w", err)
	}

	app.APIHandler = handlers.NewAPIHandler()
	app.PageHandler = handlers.NewPageHandler(logger)
	app.ReportHandler = handlers.NewReportHandler(app.Loader, app.Renderer, app.ArchiveService, app.PageHandler, logger)

	return app, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a.ArchiveService != nil {
		a.ArchiveService.Stop()
	}
}
