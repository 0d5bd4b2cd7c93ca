package tags

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/db/sqlc"
)

type link struct {
	chatID string
	tagID  pgtype.UUID
}

type memStore struct {
	tags  []sqlc.Tag
	links map[link]bool
}

func newMemStore() *memStore {
	return &memStore{links: map[link]bool{}}
}

func (m *memStore) ListTags(context.Context) ([]sqlc.Tag, error) {
	out := append([]sqlc.Tag(nil), m.tags...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CreateTag(_ context.Context, arg sqlc.CreateTagParams) (sqlc.Tag, error) {
	for _, tag := range m.tags {
		if tag.Name == arg.Name {
			return sqlc.Tag{}, &pgconn.PgError{Code: "23505"}
		}
	}
	tag := sqlc.Tag{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, Name: arg.Name, Color: arg.Color}
	m.tags = append(m.tags, tag)
	return tag, nil
}

func (m *memStore) DeleteTag(_ context.Context, id pgtype.UUID) (int64, error) {
	for i, tag := range m.tags {
		if tag.ID == id {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			for l := range m.links {
				if l.tagID == id {
					delete(m.links, l)
				}
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) ListTagsByChat(_ context.Context, chatID string) ([]sqlc.Tag, error) {
	var out []sqlc.Tag
	for _, tag := range m.tags {
		if m.links[link{chatID, tag.ID}] {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (m *memStore) AddChatTag(_ context.Context, arg sqlc.AddChatTagParams) error {
	for _, tag := range m.tags {
		if tag.ID == arg.TagID {
			m.links[link{arg.ChatID, arg.TagID}] = true
			return nil
		}
	}
	return &pgconn.PgError{Code: "23503"}
}

func (m *memStore) RemoveChatTag(_ context.Context, arg sqlc.RemoveChatTagParams) (int64, error) {
	key := link{arg.ChatID, arg.TagID}
	if !m.links[key] {
		return 0, nil
	}
	delete(m.links, key)
	return 1, nil
}

func TestCreateAppliesDefaultColorAndRejectsDuplicates(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	tag, err := svc.Create(ctx, CreateRequest{Name: "VIP"})
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, tag.Color)

	_, err = svc.Create(ctx, CreateRequest{Name: "VIP", Color: "bg-red-500"})
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = svc.Create(ctx, CreateRequest{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatAssignmentIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	tag, err := svc.Create(ctx, CreateRequest{Name: "lead"})
	require.NoError(t, err)

	require.NoError(t, svc.AddToChat(ctx, "U1", tag.ID))
	require.NoError(t, svc.AddToChat(ctx, "U1", tag.ID))
	got, err := svc.ListByChat(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "lead", got[0].Name)

	require.NoError(t, svc.RemoveFromChat(ctx, "U1", tag.ID))
	require.NoError(t, svc.RemoveFromChat(ctx, "U1", tag.ID))
	got, err = svc.ListByChat(ctx, "U1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddUnknownTagIsNotFound(t *testing.T) {
	svc := NewService(newMemStore())
	assert.ErrorIs(t, svc.AddToChat(context.Background(), "U1", uuid.NewString()), ErrNotFound)
	assert.ErrorIs(t, svc.AddToChat(context.Background(), "U1", "bogus"), ErrNotFound)
}

func TestDeleteTag(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	tag, err := svc.Create(ctx, CreateRequest{Name: "old"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, tag.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tag.ID), ErrNotFound)
}
