// Package notes stores free-text notes attached to chats.
package notes

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

var (
	// ErrNotFound is returned when the note does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrInvalidInput wraps blank chat IDs and content.
	ErrInvalidInput = errors.New("invalid note")
)

// Note is a free-text annotation on a chat.
type Note struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is the body of a note creation.
type CreateRequest struct {
	ChatID  string `json:"chatId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Store is the subset of sqlc queries the note service needs.
type Store interface {
	ListNotesByChat(ctx context.Context, chatID string) ([]sqlc.Note, error)
	CreateNote(ctx context.Context, arg sqlc.CreateNoteParams) (sqlc.Note, error)
	DeleteNote(ctx context.Context, id pgtype.UUID) (int64, error)
}

type Service struct {
	queries Store
}

func NewService(queries Store) *Service {
	return &Service{queries: queries}
}

// ListByChat returns the notes of a chat, newest first.
func (s *Service) ListByChat(ctx context.Context, chatID string) ([]Note, error) {
	rows, err := s.queries.ListNotesByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]Note, 0, len(rows))
	for _, row := range rows {
		out = append(out, toNote(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Note, error) {
	chatID := strings.TrimSpace(req.ChatID)
	if chatID == "" || strings.TrimSpace(req.Content) == "" {
		return Note{}, fmt.Errorf("%w: chatId and content are required", ErrInvalidInput)
	}
	row, err := s.queries.CreateNote(ctx, sqlc.CreateNoteParams{ChatID: chatID, Content: req.Content})
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return toNote(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	pgID, err := dbpkg.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	n, err := s.queries.DeleteNote(ctx, pgID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toNote(row sqlc.Note) Note {
	return Note{
		ID:        dbpkg.UUIDToString(row.ID),
		ChatID:    row.ChatID,
		Content:   row.Content,
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
	}
}
