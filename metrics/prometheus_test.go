package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	rec := NewRecorder(prometheus.NewRegistry())

	rec.ObserveRequest("GET", "/api/comments/:id", 200, 5*time.Millisecond)
	rec.ObserveRequest("GET", "/api/comments/:id", 404, time.Millisecond)
	rec.ObserveRequest("POST", "/api/comments", 201, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(rec.requestDuration))
	assert.Equal(t, 3, testutil.CollectAndCount(rec.requestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.requestsTotal.WithLabelValues("GET", "/api/comments/:id", "404")))
}
