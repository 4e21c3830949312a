package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestStarted(t *testing.T) {
	done := RequestStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(httpInFlight))

	done(http.MethodGet, "/api/student/jobs", 404)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/student/jobs", "4xx")))
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(workflowTransitions.WithLabelValues("STUDENT", "VERIFIED"))
	RecordTransition("STUDENT", "VERIFIED", 3)
	RecordTransition("STUDENT", "VERIFIED", 0)
	assert.Equal(t, before+3, testutil.ToFloat64(workflowTransitions.WithLabelValues("STUDENT", "VERIFIED")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordJobRun("close_expired_jobs", 20*time.Millisecond, true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tpcell_scheduler_job_runs_total")
}
