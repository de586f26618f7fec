package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks hooks query timing into every GORM operation
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"select", db.Callback().Query().Before("gorm:query").Register, db.Callback().Query().After("gorm:query").Register},
		{"insert", db.Callback().Create().Before("gorm:create").Register, db.Callback().Create().After("gorm:create").Register},
		{"update", db.Callback().Update().Before("gorm:update").Register, db.Callback().Update().After("gorm:update").Register},
		{"delete", db.Callback().Delete().Before("gorm:delete").Register, db.Callback().Delete().After("gorm:delete").Register},
	}

	for _, h := range hooks {
		op := h.op
		h.before("metrics:"+op+"_before", func(db *gorm.DB) {
			db.InstanceSet("metrics:start_time", time.Now())
		})
		h.after("metrics:"+op+"_after", func(db *gorm.DB) {
			start, ok := db.InstanceGet("metrics:start_time")
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(op, table, time.Since(start.(time.Time)), db.Error)
		})
	}
}
