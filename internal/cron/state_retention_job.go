package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/brewcart/pkg/logger"
	"github.com/angelmondragon/brewcart/pkg/metrics"
)

const stateRetentionJobName = "state-retention"

// expiredStatePurger deletes persisted session state past its TTL.
type expiredStatePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type StateRetentionJobParams struct {
	Logger  *logger.Logger
	Store   expiredStatePurger
	Metrics *metrics.JobMetrics
}

// NewStateRetentionJob builds the job that drops expired cart, order and
// preference rows from the SQL state table.
func NewStateRetentionJob(params StateRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("state store required")
	}
	return &stateRetentionJob{
		logg:    params.Logger,
		store:   params.Store,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

type stateRetentionJob struct {
	logg    *logger.Logger
	store   expiredStatePurger
	metrics *metrics.JobMetrics
	now     func() time.Time
}

func (j *stateRetentionJob) Name() string { return stateRetentionJobName }

func (j *stateRetentionJob) Run(ctx context.Context) error {
	deleted, err := j.store.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("state retention: %w", err)
	}
	j.metrics.AddRemoved(stateRetentionJobName, deleted)
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"checked_at":   j.now().UTC(),
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "state retention complete")
	return nil
}
