package job

import (
	"context"

	"go.uber.org/zap"

	"construction-stage-api/internal/domain"
	"construction-stage-api/internal/metrics"
	"construction-stage-api/internal/repository"
	"construction-stage-api/internal/service"
)

// DurationAuditJob recomputes the derived duration of every non-deleted
// stage and repairs rows whose stored value drifted from its three
// inputs, e.g. after out-of-band writes to the table. Implements
// cron.Job.
type DurationAuditJob struct {
	stageRepo repository.StageRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewDurationAuditJob creates a new DurationAuditJob instance
func NewDurationAuditJob(
	stageRepo repository.StageRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DurationAuditJob {
	return &DurationAuditJob{
		stageRepo: stageRepo,
		metrics:   m,
		logger:    logger,
	}
}

// Run executes one audit pass
func (j *DurationAuditJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting duration audit")

	stages, err := j.stageRepo.FindAll(ctx)
	if err != nil {
		j.logger.Error("Failed to fetch stages for audit", zap.Error(err))
		return
	}

	checked := 0
	repaired := 0
	failed := 0

	for _, stage := range stages {
		if stage.Status == domain.StageStatusDeleted {
			continue
		}
		checked++

		expected := service.ComputeDuration(stage.StartDate, stage.EndDate, stage.DurationUnit)
		if durationsMatch(stage.Duration, expected) {
			continue
		}

		writeSet := map[string]interface{}{"duration": nil}
		if expected != nil {
			writeSet["duration"] = *expected
		}
		if err := j.stageRepo.UpdateFields(ctx, stage.ID, writeSet); err != nil {
			j.logger.Error("Failed to repair stage duration",
				zap.Uint("stage_id", stage.ID),
				zap.Error(err),
			)
			failed++
			continue
		}

		j.logger.Warn("Repaired drifted stage duration",
			zap.Uint("stage_id", stage.ID),
			zap.Any("stored", stage.Duration),
			zap.Any("expected", expected),
		)
		repaired++
		if j.metrics != nil {
			j.metrics.IncrementDurationRepairs()
		}
	}

	j.logger.Info("Duration audit completed",
		zap.Int("checked", checked),
		zap.Int("repaired", repaired),
		zap.Int("failed", failed),
	)
}

// durationsMatch compares at storage precision, same tolerance the
// service uses when deciding whether a patch needs a duration write.
func durationsMatch(stored, expected *float64) bool {
	if stored == nil || expected == nil {
		return stored == nil && expected == nil
	}
	diff := *stored - *expected
	if diff < 0 {
		diff = -diff
	}
	return diff < 5e-5
}
