package commands

import (
	"fmt"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/external/krx"
	"github.com/wonny/sugup/internal/external/naver"
	"github.com/wonny/sugup/internal/s0_data"
	"github.com/wonny/sugup/internal/s0_data/collector"
	"github.com/wonny/sugup/internal/universe"
	"github.com/wonny/sugup/pkg/config"
	"github.com/wonny/sugup/pkg/database"
	"github.com/wonny/sugup/pkg/httputil"
	"github.com/wonny/sugup/pkg/logger"
	"github.com/wonny/sugup/pkg/redis"
)

// app bundles the wired dependency graph every command starts from.
// ⭐ SSOT: CLI 의존성 조립은 여기서만
type app struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *database.DB
	Redis  *redis.Client

	SecurityRepo *s0_data.SecurityRepository
	FlowRepo     *s0_data.FlowRepository
	SnapshotRepo *s0_data.SnapshotRepository

	NaverClient *naver.Client
	KRXClient   *krx.Client

	Collector *collector.Collector
	Analyzer  *analysis.Analyzer
	Ranker    *analysis.FavoritesRanker
	Universe  *universe.Builder
}

// newApp loads configuration and wires the full graph.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log)
	if cfg.Redis.Enabled {
		// Shared limiter keeps several collecting processes under the
		// same upstream request ceiling.
		httpClient = httpClient.WithRateLimiter(redis.NewRateLimiter(rdb, "naver"), redis.NaverRateLimit)
	}

	naverClient := naver.NewClient(httpClient, log, cfg.Naver.BaseURL, cfg.Naver.MobileBaseURL)
	krxClient := krx.NewClient(httpClient, log, cfg.KRX.ListingURL)

	securityRepo := s0_data.NewSecurityRepository(db.Pool, log)
	flowRepo := s0_data.NewFlowRepository(db.Pool, log)
	snapshotRepo := s0_data.NewSnapshotRepository(db.Pool)

	parser := s0_data.NewParser(log)
	col := collector.NewCollector(naverClient, parser, securityRepo, flowRepo, collector.Config{
		PageSize:     cfg.Collect.PageSize,
		RequestDelay: cfg.Collect.RequestDelay,
	}, log)

	analyzer := analysis.NewAnalyzer(flowRepo, snapshotRepo, cfg.Analysis.Window, log)
	ranker := analysis.NewFavoritesRanker(flowRepo, analyzer, log)

	return &app{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		Redis:        rdb,
		SecurityRepo: securityRepo,
		FlowRepo:     flowRepo,
		SnapshotRepo: snapshotRepo,
		NaverClient:  naverClient,
		KRXClient:    krxClient,
		Collector:    col,
		Analyzer:     analyzer,
		Ranker:       ranker,
		Universe:     universe.NewBuilder(naverClient, krxClient, securityRepo, log),
	}, nil
}

// Close releases connections.
func (a *app) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
