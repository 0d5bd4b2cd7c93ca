package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPing(t *testing.T) {
	t.Parallel()

	e := newTestEcho(NewPingHandler(testLog))

	rec := serve(e, http.MethodGet, "/ping", "")
	requireStatus(t, rec, http.StatusOK)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])

	rec = serve(e, http.MethodHead, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
