package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFastpath(t *testing.T) {
	before := testutil.ToFloat64(fastpathOutcomes.WithLabelValues("executed"))
	RecordFastpath("executed")
	RecordFastpath("executed")
	assert.Equal(t, before+2, testutil.ToFloat64(fastpathOutcomes.WithLabelValues("executed")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordIntent("audio.set")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `mudabbir_intent_matches_total{capability="audio.set"}`))
	assert.Contains(t, body, "go_goroutines")
}
