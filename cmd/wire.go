package cmd

import (
	"fmt"
	"time"

	chainstore "github.com/bnema/qa-inspector/internal/adapters/evidence/chain"
	filestore "github.com/bnema/qa-inspector/internal/adapters/evidence/file"
	imagedir "github.com/bnema/qa-inspector/internal/adapters/pages/imagedir"
	"github.com/bnema/qa-inspector/internal/adapters/raster"
	verdictview "github.com/bnema/qa-inspector/internal/adapters/render/verdict"
	tomlrepo "github.com/bnema/qa-inspector/internal/adapters/repo/toml"
	"github.com/bnema/qa-inspector/internal/application"
	"github.com/bnema/qa-inspector/internal/config"
	"github.com/bnema/qa-inspector/internal/domain"
	"github.com/bnema/qa-inspector/internal/logger"
	"github.com/bnema/qa-inspector/internal/metrics"
	"github.com/bnema/qa-inspector/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	metrics    *metrics.Metrics
	documents  *application.DocumentService
	verdicts   *application.VerdictService
	evidence   ports.EvidenceStore
	rasterizer *imagedir.Rasterizer

	boardRenderer func([]application.DocumentStatus, verdictview.RenderOptions) (string, error)
	auditRenderer func(domain.Document, []domain.AuditEntry, verdictview.RenderOptions) (string, error)
	now           func() time.Time
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		FilePath: cfg.LogPath,
		Level:    cfg.LogLevel,
		Console:  cfg.LogConsole,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire document repository: %w", err)
	}

	audit, err := tomlrepo.NewAuditRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire audit repository: %w", err)
	}

	evidence, err := wireEvidenceStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire evidence store: %w", err)
	}

	m := metrics.New()
	rasterizer := imagedir.NewRasterizer()

	return &app{
		cfg:           cfg,
		logger:        log,
		metrics:       m,
		documents:     application.NewDocumentService(repo, rasterizer, rasterizer, audit),
		verdicts:      application.NewVerdictService(repo, evidence, audit, ports.SystemClock{}, m, log),
		evidence:      evidence,
		rasterizer:    rasterizer,
		boardRenderer: verdictview.Render,
		auditRenderer: verdictview.RenderAuditTrail,
		now:           time.Now,
	}, nil
}

func wireEvidenceStore(cfg config.Config) (ports.EvidenceStore, error) {
	local := filestore.NewStore(cfg.EvidencePath)
	if cfg.EvidenceSharedPath == "" {
		return local, nil
	}

	return chainstore.NewStoreChecked(filestore.NewStore(cfg.EvidenceSharedPath), local)
}

// newSession builds a document session drawing onto off-screen surfaces.
func (a *app) newSession() (*application.DocumentSession, error) {
	color, err := domain.ParseColor(a.cfg.DefaultColor)
	if err != nil {
		return nil, fmt.Errorf("default color: %w", err)
	}

	return application.NewDocumentSession(application.SessionConfig{
		Navigator:         application.NewPageNavigator(a.rasterizer, a.cfg.PageCacheTTL, a.metrics, a.logger),
		Verdicts:          a.verdicts,
		Base:              raster.NewSurface(0, 0),
		Overlay:           raster.NewSurface(0, 0),
		NewSurface:        raster.NewSnapshotSurface,
		EraserThresholdPx: a.cfg.EraserThresholdPx,
		DefaultColor:      color,
		ViewportWidth:     a.cfg.ViewportWidth,
		ViewportHeight:    a.cfg.ViewportHeight,
		Metrics:           a.metrics,
		Logger:            a.logger,
	}), nil
}

func (a *app) actor(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.ActorName
}

// flush writes the metrics textfile and syncs the logger once a command
// has run.
func (a *app) flush() {
	if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		a.logger.Warn("write metrics textfile", zap.String("path", a.cfg.MetricsTextfile), zap.Error(err))
	}
	_ = a.logger.Sync()
}
