package handlers

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/tags"
)

type memChatService struct {
	chats map[string]chats.Chat
}

func (m *memChatService) UpsertOnActivity(_ context.Context, in chats.ActivityInput) (chats.Chat, error) {
	c := m.chats[in.ChatID]
	c.ChatID = in.ChatID
	c.UnreadCount += in.UnreadDelta
	m.chats[in.ChatID] = c
	return c, nil
}

func (m *memChatService) List(context.Context) ([]chats.Chat, error) {
	out := make([]chats.Chat, 0, len(m.chats))
	for _, c := range m.chats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageTimestamp > out[j].LastMessageTimestamp })
	return out, nil
}

func (m *memChatService) Get(_ context.Context, id string) (chats.Chat, error) {
	c, ok := m.chats[id]
	if !ok {
		return chats.Chat{}, chats.ErrNotFound
	}
	return c, nil
}

func (m *memChatService) MarkRead(ctx context.Context, id string) (chats.Chat, error) {
	c, err := m.Get(ctx, id)
	if err != nil {
		return c, err
	}
	c.UnreadCount = 0
	m.chats[id] = c
	return c, nil
}

func (m *memChatService) Rename(_ context.Context, id, name string) error {
	if c, ok := m.chats[id]; ok {
		c.Name = name
		m.chats[id] = c
	}
	return nil
}

func (m *memChatService) Delete(_ context.Context, id string) error {
	if _, ok := m.chats[id]; !ok {
		return chats.ErrNotFound
	}
	delete(m.chats, id)
	return nil
}

type memHistory map[string][]message.Message

func (m memHistory) ListByChat(_ context.Context, chatID string) ([]message.Message, error) {
	return m[chatID], nil
}

type memChatTags struct {
	known    map[string]tags.Tag
	assigned map[string][]string
}

func (m *memChatTags) ListByChat(_ context.Context, chatID string) ([]tags.Tag, error) {
	var out []tags.Tag
	for _, id := range m.assigned[chatID] {
		out = append(out, m.known[id])
	}
	return out, nil
}

func (m *memChatTags) AddToChat(_ context.Context, chatID, tagID string) error {
	if _, ok := m.known[tagID]; !ok {
		return tags.ErrNotFound
	}
	for _, id := range m.assigned[chatID] {
		if id == tagID {
			return nil
		}
	}
	m.assigned[chatID] = append(m.assigned[chatID], tagID)
	return nil
}

func (m *memChatTags) RemoveFromChat(_ context.Context, chatID, tagID string) error {
	kept := m.assigned[chatID][:0]
	for _, id := range m.assigned[chatID] {
		if id != tagID {
			kept = append(kept, id)
		}
	}
	m.assigned[chatID] = kept
	return nil
}

func newChatFixture() (*memChatService, *memChatTags, *ChatHandler) {
	svc := &memChatService{chats: map[string]chats.Chat{
		"U1": {ChatID: "U1", Name: "User U1", LastMessageTimestamp: 100, UnreadCount: 3},
		"U2": {ChatID: "U2", Name: "User U2", LastMessageTimestamp: 200},
	}}
	history := memHistory{"U1": {
		{ID: "a", Canonical: message.Canonical{ChatID: "U1", Text: "first", Timestamp: 1}},
		{ID: "b", Canonical: message.Canonical{ChatID: "U1", Text: "second", Timestamp: 2}},
	}}
	tagSvc := &memChatTags{
		known:    map[string]tags.Tag{"t1": {ID: "t1", Name: "vip", Color: tags.DefaultColor}},
		assigned: map[string][]string{},
	}
	return svc, tagSvc, NewChatHandler(testLog, svc, history, tagSvc)
}

func TestChatListAndGet(t *testing.T) {
	t.Parallel()

	_, _, h := newChatFixture()
	e := newTestEcho(h)

	rec := serve(e, http.MethodGet, "/api/chats", "")
	requireStatus(t, rec, http.StatusOK)
	list := decode(t, rec)["chats"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "U2", list[0].(map[string]any)["chat_id"])

	rec = serve(e, http.MethodGet, "/api/chats/U1", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "User U1", decode(t, rec)["chat"].(map[string]any)["name"])

	rec = serve(e, http.MethodGet, "/api/chats/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatMessagesAscending(t *testing.T) {
	t.Parallel()

	_, _, h := newChatFixture()
	e := newTestEcho(h)

	rec := serve(e, http.MethodGet, "/api/chats/U1/messages", "")
	requireStatus(t, rec, http.StatusOK)
	msgs := decode(t, rec)["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].(map[string]any)["text"])

	rec = serve(e, http.MethodGet, "/api/chats/U9/messages", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Empty(t, decode(t, rec)["messages"])
}

func TestChatMarkReadAndDelete(t *testing.T) {
	t.Parallel()

	svc, _, h := newChatFixture()
	e := newTestEcho(h)

	rec := serve(e, http.MethodPost, "/api/chats/U1/read", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, 0, svc.chats["U1"].UnreadCount)

	rec = serve(e, http.MethodDelete, "/api/chats/U1", "")
	requireStatus(t, rec, http.StatusOK)
	assert.NotContains(t, svc.chats, "U1")

	rec = serve(e, http.MethodDelete, "/api/chats/U1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatTagAssignment(t *testing.T) {
	t.Parallel()

	_, tagSvc, h := newChatFixture()
	e := newTestEcho(h)

	for range 2 {
		rec := serve(e, http.MethodPost, "/api/chats/U1/tags/t1", "")
		requireStatus(t, rec, http.StatusOK)
	}
	assert.Equal(t, []string{"t1"}, tagSvc.assigned["U1"])

	rec := serve(e, http.MethodGet, "/api/chats/U1/tags", "")
	requireStatus(t, rec, http.StatusOK)
	list := decode(t, rec)["tags"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "vip", list[0].(map[string]any)["name"])

	rec = serve(e, http.MethodPost, "/api/chats/U1/tags/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/chats/U1/tags/t1", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Empty(t, tagSvc.assigned["U1"])
}
