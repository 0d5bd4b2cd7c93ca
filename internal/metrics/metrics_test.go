package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.WebhookRequest("accepted")
	m.WebhookRequest("accepted")
	m.MessageIngested("instagram", "created")
	m.RelayForward("error")
	m.LiveSessionOpened()

	assert.InDelta(t, 2, testutil.ToFloat64(m.webhookRequests.WithLabelValues("accepted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.liveSessions), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `crm_messages_ingested_total{outcome="created",platform="instagram"} 1`)
	assert.Contains(t, rec.Body.String(), `crm_relay_forwards_total{result="error"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.WebhookRequest("x")
	m.LiveDropped()
	m.GraphSend("ok")
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
