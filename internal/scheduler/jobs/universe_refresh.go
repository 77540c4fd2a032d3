package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/sugup/internal/universe"
	"github.com/wonny/sugup/pkg/config"
	"github.com/wonny/sugup/pkg/logger"
)

// UniverseRefreshJob rebuilds the tracked universe weekly. Membership
// churn is slow; a weekly pass keeps rankings current without hammering
// the listing endpoint.
type UniverseRefreshJob struct {
	builder *universe.Builder
	config  *config.Config
	logger  *logger.Logger
}

// NewUniverseRefreshJob creates a new universe refresh job
func NewUniverseRefreshJob(builder *universe.Builder, cfg *config.Config, log *logger.Logger) *UniverseRefreshJob {
	return &UniverseRefreshJob{
		builder: builder,
		config:  cfg,
		logger:  log,
	}
}

// Name returns the job name
func (j *UniverseRefreshJob) Name() string {
	return "universe_refresh"
}

// Schedule returns the cron schedule (Monday 7 AM, before the market opens)
func (j *UniverseRefreshJob) Schedule() string {
	return "0 0 7 * * 1"
}

// Run executes the universe refresh
func (j *UniverseRefreshJob) Run(ctx context.Context) error {
	result, err := j.builder.Refresh(ctx, j.config.Collect.UniverseSize)
	if err != nil {
		return fmt.Errorf("refresh universe: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"kospi":  result.KospiCount,
		"kosdaq": result.KosdaqCount,
		"saved":  result.Saved,
	}).Info("Scheduled universe refresh completed")

	return nil
}
