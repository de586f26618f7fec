package metrics

// IncrementStageCreated increments stage creation counter
func (m *Metrics) IncrementStageCreated() {
	m.safeExecute("IncrementStageCreated", func() {
		m.StageCreatedTotal.Inc()
	})
}

// IncrementStageDeleted increments the soft-delete counter
func (m *Metrics) IncrementStageDeleted() {
	m.safeExecute("IncrementStageDeleted", func() {
		m.StageDeletedTotal.Inc()
	})
}

// IncrementDurationRepairs counts durations the audit job had to rewrite
func (m *Metrics) IncrementDurationRepairs() {
	m.safeExecute("IncrementDurationRepairs", func() {
		m.StageDurationRepairsTotal.Inc()
	})
}

// SetStagesTotal sets the gauge of stages not soft-deleted
func (m *Metrics) SetStagesTotal(count int64) {
	m.safeExecute("SetStagesTotal", func() {
		m.StagesTotal.Set(float64(count))
	})
}
