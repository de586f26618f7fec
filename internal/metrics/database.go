package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats refreshes the connection pool gauges from a sql.DBStats
// snapshot. The argument is untyped so callers behind the MetricsRecorder
// interface stay decoupled from database/sql; anything else is ignored.
func (m *Metrics) UpdateDBStats(snapshot interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := snapshot.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount))
		m.DBConnectionWaitDuration.Add(stats.WaitDuration.Seconds())
	})
}

// RecordDBQuery observes one query's latency and, when err is non-nil,
// counts it as failed. The operation label is lowercased so callbacks
// and manual callers land on the same series.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		op := strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(op, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(op, table).Inc()
		}
	})
}
