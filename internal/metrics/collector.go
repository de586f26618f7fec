package metrics

import (
	"time"

	"go.uber.org/zap"

	"construction-stage-api/internal/database"
	"construction-stage-api/internal/domain"
)

// BusinessMetricsCollector refreshes business gauges and connection pool
// stats on a fixed interval.
type BusinessMetricsCollector struct {
	handle  *database.Handle
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a collector over a connection
// handle; until the handle is populated each tick is a no-op.
func NewBusinessMetricsCollector(handle *database.Handle, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		handle:  handle,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	db := c.handle.Get()
	if db == nil {
		return
	}

	var stageCount int64
	if err := db.Model(&domain.Stage{}).
		Where("status <> ?", domain.StageStatusDeleted).
		Count(&stageCount).Error; err != nil {
		c.logger.Warn("Failed to count stages for metrics", zap.Error(err))
	} else {
		c.metrics.SetStagesTotal(stageCount)
	}

	if sqlDB, err := db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}
}
