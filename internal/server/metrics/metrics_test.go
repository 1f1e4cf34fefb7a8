package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue reads a counter from the registry by name and labels.
func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := Registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestRecordRPC(t *testing.T) {
	labels := map[string]string{"method": "Login", "code": "OK"}
	before := counterValue(t, "citizenportal_grpc_requests_total", labels)
	RecordRPC("Login", "OK", 10*time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, "citizenportal_grpc_requests_total", labels))
}

func TestRecordJob(t *testing.T) {
	labels := map[string]string{"job": "close_votes", "success": "false"}
	before := counterValue(t, "citizenportal_jobs_runs_total", labels)
	RecordJob("close_votes", false, time.Millisecond)
	assert.Equal(t, before+1, counterValue(t, "citizenportal_jobs_runs_total", labels))
}

func TestHandler_ServesRegistry(t *testing.T) {
	RecordDelivery("sent")
	RecordRateLimited("Register")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "citizenportal_notifications_deliveries_total")
	assert.Contains(t, body, "citizenportal_grpc_rate_limited_total")
}
