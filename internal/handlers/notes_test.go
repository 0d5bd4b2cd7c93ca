package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/notes"
)

type memNotes struct {
	items []notes.Note
}

func (m *memNotes) ListByChat(_ context.Context, chatID string) ([]notes.Note, error) {
	var out []notes.Note
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].ChatID == chatID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotes) Create(_ context.Context, req notes.CreateRequest) (notes.Note, error) {
	n := notes.Note{ID: strconv.Itoa(len(m.items) + 1), ChatID: req.ChatID, Content: req.Content}
	m.items = append(m.items, n)
	return n, nil
}

func (m *memNotes) Delete(_ context.Context, id string) error {
	for i, n := range m.items {
		if n.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return notes.ErrNotFound
}

func TestNotesLifecycle(t *testing.T) {
	t.Parallel()

	store := &memNotes{}
	e := newTestEcho(NewNotesHandler(testLog, store))

	rec := serve(e, http.MethodPost, "/api/notes", `{"chatId":"U1","content":"called back"}`)
	requireStatus(t, rec, http.StatusOK)
	rec = serve(e, http.MethodPost, "/api/notes", `{"chatId":"U1","content":"sent quote"}`)
	requireStatus(t, rec, http.StatusOK)

	rec = serve(e, http.MethodPost, "/api/notes", `{"chatId":"U1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodGet, "/api/notes/U1", "")
	requireStatus(t, rec, http.StatusOK)
	var list []notes.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "sent quote", list[0].Content)

	rec = serve(e, http.MethodDelete, "/api/notes/1", "")
	requireStatus(t, rec, http.StatusOK)
	rec = serve(e, http.MethodDelete, "/api/notes/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodGet, "/api/notes/U2", "")
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, "[]", rec.Body.String())
}
