package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/contacts"
)

type memContacts struct {
	byID  map[string]contacts.Contact
	saved []contacts.SaveRequest
}

func (m *memContacts) List(context.Context) ([]contacts.Contact, error) {
	out := make([]contacts.Contact, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func (m *memContacts) Get(_ context.Context, id string) (contacts.Contact, error) {
	c, ok := m.byID[id]
	if !ok {
		return contacts.Contact{}, contacts.ErrNotFound
	}
	return c, nil
}

func (m *memContacts) GetByChat(_ context.Context, chatID string) (contacts.Contact, error) {
	for _, c := range m.byID {
		if c.ChatID == chatID {
			return c, nil
		}
	}
	return contacts.Contact{}, contacts.ErrNotFound
}

func (m *memContacts) Save(_ context.Context, req contacts.SaveRequest) (contacts.Contact, error) {
	m.saved = append(m.saved, req)
	c := contacts.Contact{ID: "c-" + req.ChatID, ChatID: req.ChatID, Name: req.Name, Platform: req.Platform, Email: req.Email}
	m.byID[c.ID] = c
	return c, nil
}

func (m *memContacts) Update(_ context.Context, id string, req contacts.UpdateRequest) (contacts.Contact, error) {
	c, ok := m.byID[id]
	if !ok {
		return contacts.Contact{}, contacts.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Company != nil {
		c.Company = *req.Company
	}
	m.byID[id] = c
	return c, nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return contacts.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func TestContactSaveValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"chatId":"U1","name":"Ana","platform":"instagram"}`, http.StatusCreated},
		{"missing name", `{"chatId":"U1","platform":"instagram"}`, http.StatusBadRequest},
		{"missing chat", `{"name":"Ana","platform":"instagram"}`, http.StatusBadRequest},
		{"bad platform", `{"chatId":"U1","name":"Ana","platform":"telegram"}`, http.StatusBadRequest},
		{"bad email", `{"chatId":"U1","name":"Ana","platform":"whatsapp","email":"nope"}`, http.StatusBadRequest},
		{"not json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memContacts{byID: map[string]contacts.Contact{}}
			e := newTestEcho(NewContactsHandler(testLog, store))
			rec := serve(e, http.MethodPost, "/api/contacts", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.code == http.StatusCreated {
				require.Len(t, store.saved, 1)
				assert.Equal(t, "Ana", decode(t, rec)["contact"].(map[string]any)["name"])
			} else {
				assert.Empty(t, store.saved)
			}
		})
	}
}

func TestContactLookups(t *testing.T) {
	t.Parallel()

	store := &memContacts{byID: map[string]contacts.Contact{
		"c1": {ID: "c1", ChatID: "U1", Name: "Ana"},
	}}
	e := newTestEcho(NewContactsHandler(testLog, store))

	rec := serve(e, http.MethodGet, "/api/contacts", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode(t, rec)["contacts"], 1)

	rec = serve(e, http.MethodGet, "/api/contacts/c1", "")
	requireStatus(t, rec, http.StatusOK)

	rec = serve(e, http.MethodGet, "/api/contacts/c9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodGet, "/api/contacts/chat/U1", "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "c1", decode(t, rec)["contact"].(map[string]any)["id"])

	rec = serve(e, http.MethodGet, "/api/contacts/chat/U9", "")
	requireStatus(t, rec, http.StatusOK)
	body := decode(t, rec)
	assert.Contains(t, body, "contact")
	assert.Nil(t, body["contact"])
}

func TestContactUpdateAndDelete(t *testing.T) {
	t.Parallel()

	store := &memContacts{byID: map[string]contacts.Contact{
		"c1": {ID: "c1", ChatID: "U1", Name: "Ana"},
	}}
	e := newTestEcho(NewContactsHandler(testLog, store))

	rec := serve(e, http.MethodPut, "/api/contacts/c1", `{"company":"Acme"}`)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Acme", store.byID["c1"].Company)
	assert.Equal(t, "Ana", store.byID["c1"].Name)

	rec = serve(e, http.MethodPut, "/api/contacts/c9", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodDelete, "/api/contacts/c1", "")
	requireStatus(t, rec, http.StatusOK)
	rec = serve(e, http.MethodDelete, "/api/contacts/c1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
