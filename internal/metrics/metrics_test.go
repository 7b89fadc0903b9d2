package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAnswer(t *testing.T) {
	m := New()
	m.ObserveAnswer("guess", true)
	m.ObserveAnswer("guess", false)
	m.ObserveAnswer("guess", false)
	m.ObserveAnswer("quiz", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("guess", "correct")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues("guess", "incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("quiz", "correct")))
}

func TestHandlerExposesDrillMetrics(t *testing.T) {
	m := New()
	m.SessionsStarted.Inc()
	m.PoolSize.Set(60)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "derdiedas_sessions_started_total 1")
	assert.Contains(t, body, "derdiedas_word_pool_size 60")
}
