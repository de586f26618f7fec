package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/api/stages", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/stages", 200, 20*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/stages", 400, 5*time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/stages", "2xx")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/stages", "4xx")))
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
		{100, "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeStatus(tt.code), "code %d", tt.code)
	}
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.True(t, ShouldSkipEndpoint("/api/stages/health"))
	assert.False(t, ShouldSkipEndpoint("/api/stages/metrics"))
	assert.False(t, ShouldSkipEndpoint("/api/stages"))
	assert.False(t, ShouldSkipEndpoint("/api/stages/1"))
}

func TestBusinessMetrics(t *testing.T) {
	m := newTestMetrics()

	m.IncrementStageCreated()
	m.IncrementStageCreated()
	m.IncrementStageDeleted()
	m.IncrementDurationRepairs()
	m.SetStagesTotal(7)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.StageCreatedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StageDeletedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StageDurationRepairsTotal))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.StagesTotal))
}

func TestRecordDBQuery(t *testing.T) {
	m := newTestMetrics()

	m.RecordDBQuery("select", "construction_stages", 2*time.Millisecond, nil)
	m.RecordDBQuery("update", "construction_stages", 3*time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("update", "construction_stages")))
	assert.Equal(t, float64(0),
		testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select", "construction_stages")))
}
