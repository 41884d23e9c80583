package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CountersAndHandler(t *testing.T) {
	r := NewRegistry()
	r.Submissions.WithLabelValues("accepted").Inc()
	r.Submissions.WithLabelValues("invalid").Add(2)
	r.ObserveRequest("GET", "", 404)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Submissions.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Submissions.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "rsu_award_submissions_total")
	assert.Contains(t, string(body), "go_goroutines")
}
