// Package tags manages labels and their assignment to chats.
package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	dbpkg "github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/db/sqlc"
)

// DefaultColor is used when a tag is created without a color.
const DefaultColor = "bg-slate-500"

var (
	ErrNotFound     = errors.New("tag not found")
	ErrTagExists    = errors.New("tag already exists")
	ErrInvalidInput = errors.New("invalid tag")
)

// Tag is a named colored label.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is the body of a tag creation.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// Store is the subset of sqlc queries the tag service needs.
type Store interface {
	ListTags(ctx context.Context) ([]sqlc.Tag, error)
	CreateTag(ctx context.Context, arg sqlc.CreateTagParams) (sqlc.Tag, error)
	DeleteTag(ctx context.Context, id pgtype.UUID) (int64, error)
	ListTagsByChat(ctx context.Context, chatID string) ([]sqlc.Tag, error)
	AddChatTag(ctx context.Context, arg sqlc.AddChatTagParams) error
	RemoveChatTag(ctx context.Context, arg sqlc.RemoveChatTagParams) (int64, error)
}

// Service manages tags.
type Service struct {
	queries Store
}

// NewService creates a tag service.
func NewService(queries Store) *Service {
	return &Service{queries: queries}
}

// List returns all tags ordered by name.
func (s *Service) List(ctx context.Context) ([]Tag, error) {
	rows, err := s.queries.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return toTags(rows), nil
}

// Create adds a tag. Names are unique.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Tag{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = DefaultColor
	}
	row, err := s.queries.CreateTag(ctx, sqlc.CreateTagParams{Name: name, Color: color})
	if err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return Tag{}, ErrTagExists
		}
		return Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return toTag(row), nil
}

// Delete removes a tag and, through the foreign key, its chat assignments.
func (s *Service) Delete(ctx context.Context, id string) error {
	pgID, err := dbpkg.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	n, err := s.queries.DeleteTag(ctx, pgID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByChat returns the tags assigned to a chat.
func (s *Service) ListByChat(ctx context.Context, chatID string) ([]Tag, error) {
	rows, err := s.queries.ListTagsByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat tags: %w", err)
	}
	return toTags(rows), nil
}

// AddToChat assigns a tag to a chat. Assigning twice is a no-op.
func (s *Service) AddToChat(ctx context.Context, chatID, tagID string) error {
	pgID, err := dbpkg.ParseUUID(tagID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.queries.AddChatTag(ctx, sqlc.AddChatTagParams{ChatID: chatID, TagID: pgID}); err != nil {
		if dbpkg.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("add chat tag: %w", err)
	}
	return nil
}

// RemoveFromChat unassigns a tag. Removing an absent assignment is not an error.
func (s *Service) RemoveFromChat(ctx context.Context, chatID, tagID string) error {
	pgID, err := dbpkg.ParseUUID(tagID)
	if err != nil {
		return ErrNotFound
	}
	if _, err := s.queries.RemoveChatTag(ctx, sqlc.RemoveChatTagParams{ChatID: chatID, TagID: pgID}); err != nil {
		return fmt.Errorf("remove chat tag: %w", err)
	}
	return nil
}

func toTags(rows []sqlc.Tag) []Tag {
	out := make([]Tag, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTag(row))
	}
	return out
}

func toTag(row sqlc.Tag) Tag {
	return Tag{
		ID:        dbpkg.UUIDToString(row.ID),
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
	}
}
