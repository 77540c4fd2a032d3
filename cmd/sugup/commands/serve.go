package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/api"
	"github.com/wonny/sugup/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `읽기 전용 REST API 서버를 시작합니다.

Endpoints:
  GET /health                   - Health check
  GET /api/stocks               - 추적 유니버스
  GET /api/stocks/{code}/flow   - 일별 수급 데이터
  GET /api/stocks/{code}/trend  - 추세 스냅샷 (live=1: 즉시 재계산)
  GET /api/trends/{date}        - 일자별 스냅샷 목록
  GET /api/favorites            - 기관/외국인 동반 매수

Example:
  go run ./cmd/sugup serve
  go run ./cmd/sugup serve --port 8097`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sugup API Server ===")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if servePort != "" {
		a.Config.Port = servePort
	}

	stockHandler := handlers.NewStockHandler(a.SecurityRepo, a.FlowRepo, a.Logger)
	trendHandler := handlers.NewTrendHandler(
		a.SnapshotRepo, a.Analyzer, a.Ranker,
		a.Config.Analysis.FavoritesLookback, a.Config.Analysis.FavoritesMinScore,
		a.Logger,
	)

	router := api.NewRouter(stockHandler, trendHandler, a.Logger)
	server := api.New(a.Config, a.Logger, router)

	// Run server in background, wait for shutdown signal
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.Logger.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
