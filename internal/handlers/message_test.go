package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/meta"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]error
	mid    string
}

func (f *fakeSender) SendInstagramMessage(_ context.Context, recipientID, _ string) (meta.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[recipientID]; err != nil {
		return meta.SendResult{}, err
	}
	f.sent = append(f.sent, recipientID)
	return meta.SendResult{RecipientID: recipientID, MessageID: f.mid}, nil
}

type captureRecorder struct {
	mu   sync.Mutex
	msgs []message.Canonical
}

func (r *captureRecorder) Record(_ context.Context, msg message.Canonical) (message.Message, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return message.Message{Canonical: msg}, true, nil
}

func newMessageFixture(sender *fakeSender) (*captureRecorder, *MessageHandler) {
	rec := &captureRecorder{}
	h := NewMessageHandler(testLog, sender, rec)
	h.now = func() time.Time { return time.Unix(1700000000, 42) }
	return rec, h
}

func TestSendRecordsOutboundMessage(t *testing.T) {
	t.Parallel()

	recorder, h := newMessageFixture(&fakeSender{mid: "mid.123"})
	e := newTestEcho(h)

	rec := serve(e, http.MethodPost, "/api/messages/send", `{"recipientId":"U1","text":"hello","platform":"instagram"}`)
	requireStatus(t, rec, http.StatusOK)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "mid.123", body["data"].(map[string]any)["message_id"])

	require.Len(t, recorder.msgs, 1)
	got := recorder.msgs[0]
	assert.Equal(t, message.DirectionOutbound, got.Direction)
	assert.Equal(t, "U1", got.ChatID)
	assert.Equal(t, "mid.123", got.ProviderMessageID)
	assert.Equal(t, int64(1700000000), got.Timestamp)
}

func TestSendFallbackMessageID(t *testing.T) {
	t.Parallel()

	recorder, h := newMessageFixture(&fakeSender{})
	e := newTestEcho(h)

	rec := serve(e, http.MethodPost, "/api/messages/send", `{"recipientId":"U1","text":"hello","platform":"instagram"}`)
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, recorder.msgs, 1)
	assert.Equal(t, "msg_1700000000000000042", recorder.msgs[0].ProviderMessageID)
}

func TestSendErrors(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failOn: map[string]error{
		"bad":     &meta.APIError{StatusCode: 400, Message: "invalid recipient"},
		"notoken": meta.ErrAccessTokenMissing,
	}}
	recorder, h := newMessageFixture(sender)
	e := newTestEcho(h)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unsupported platform", `{"recipientId":"U1","text":"hi","platform":"whatsapp"}`, http.StatusBadRequest},
		{"missing text", `{"recipientId":"U1","platform":"instagram"}`, http.StatusBadRequest},
		{"graph rejects", `{"recipientId":"bad","text":"hi","platform":"instagram"}`, http.StatusBadGateway},
		{"no token", `{"recipientId":"notoken","text":"hi","platform":"instagram"}`, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		rec := serve(e, http.MethodPost, "/api/messages/send", tt.body)
		assert.Equal(t, tt.code, rec.Code, tt.name)
	}
	assert.Empty(t, recorder.msgs)

	rec := serve(e, http.MethodPost, "/api/messages/send", `{"recipientId":"bad","text":"hi","platform":"instagram"}`)
	assert.Contains(t, rec.Body.String(), "invalid recipient")
}

func TestBulkSplitsResults(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{mid: "m", failOn: map[string]error{
		"U2": &meta.APIError{StatusCode: 400, Message: "blocked"},
	}}
	recorder, h := newMessageFixture(sender)
	e := newTestEcho(h)

	body := `{"text":"promo","recipients":[{"id":"U1","platform":"instagram"},{"id":"U2","platform":"instagram"},{"id":"W1","platform":"whatsapp"},{"id":"U3","platform":"instagram"}]}`
	rec := serve(e, http.MethodPost, "/api/messages/bulk", body)
	requireStatus(t, rec, http.StatusOK)

	results := decode(t, rec)["results"].(map[string]any)
	assert.Equal(t, []any{"U1", "U3"}, results["successful"])
	failed := results["failed"].([]any)
	require.Len(t, failed, 2)
	assert.Equal(t, "U2", failed[0].(map[string]any)["id"])
	assert.Equal(t, "W1", failed[1].(map[string]any)["id"])
	assert.Equal(t, "unsupported platform", failed[1].(map[string]any)["error"])

	assert.Equal(t, []string{"U1", "U3"}, sender.sent)
	assert.Len(t, recorder.msgs, 2)
}

func TestBulkRequiresRecipients(t *testing.T) {
	t.Parallel()

	_, h := newMessageFixture(&fakeSender{})
	e := newTestEcho(h)

	rec := serve(e, http.MethodPost, "/api/messages/bulk", `{"text":"x","recipients":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = serve(e, http.MethodPost, "/api/messages/bulk", `{"recipients":[{"id":"U1","platform":"instagram"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
