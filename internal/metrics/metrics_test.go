package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/journals", "200"))
	RecordHTTPRequest("GET", "/api/journals", "200", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/journals", "200")))
}

func TestRecordRewardIgnoresNonPositive(t *testing.T) {
	xp := testutil.ToFloat64(xpAwarded)
	b := testutil.ToFloat64(bananasAwarded)

	RecordReward(10, 0)
	RecordReward(-5, -1)

	assert.Equal(t, xp+10, testutil.ToFloat64(xpAwarded))
	assert.Equal(t, b, testutil.ToFloat64(bananasAwarded))
}

func TestRecordJob(t *testing.T) {
	RecordJob("prune", errors.New("x"))
	assert.GreaterOrEqual(t, testutil.ToFloat64(jobRuns.WithLabelValues("prune", "false")), 1.0)
}

func TestHandlerServesMetrics(t *testing.T) {
	RecordSpend(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "peels_bananas_spent_total")
}
