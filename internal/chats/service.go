// Package chats keeps the per-conversation summary rows shown in the inbox.
package chats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"

	dbpkg "github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/db/sqlc"
)

// ErrNotFound is returned when the chat does not exist.
var ErrNotFound = errors.New("chat not found")

// Store is the subset of sqlc queries the chat service needs.
type Store interface {
	GetChat(ctx context.Context, chatID string) (sqlc.Chat, error)
	ListChats(ctx context.Context) ([]sqlc.Chat, error)
	UpsertChatActivity(ctx context.Context, arg sqlc.UpsertChatActivityParams) (sqlc.Chat, error)
	ResetChatUnread(ctx context.Context, chatID string) (sqlc.Chat, error)
	UpdateChatName(ctx context.Context, arg sqlc.UpdateChatNameParams) (int64, error)
}

// CascadeStore deletes a chat together with its dependent rows.
type CascadeStore interface {
	DeleteMessagesByChat(ctx context.Context, chatID string) error
	DeleteNotesByChat(ctx context.Context, chatID string) error
	DeleteChatTagsByChat(ctx context.Context, chatID string) error
	DeleteContactByChat(ctx context.Context, chatID string) error
	DeleteChat(ctx context.Context, chatID string) (int64, error)
}

// TxRunner runs fn atomically.
type TxRunner func(ctx context.Context, fn func(CascadeStore) error) error

// PgTxRunner runs fn in a Postgres transaction on conn.
func PgTxRunner(conn dbpkg.Beginner) TxRunner {
	return func(ctx context.Context, fn func(CascadeStore) error) error {
		return dbpkg.InTx(ctx, conn, func(tx pgx.Tx) error {
			return fn(sqlc.New(tx))
		})
	}
}

// DBService implements Service on Postgres.
type DBService struct {
	queries Store
	tx      TxRunner
	logger  *slog.Logger
}

var _ Service = (*DBService)(nil)

// NewService creates a chat service.
func NewService(log *slog.Logger, queries Store, tx TxRunner) *DBService {
	if log == nil {
		log = slog.Default()
	}
	return &DBService{
		queries: queries,
		tx:      tx,
		logger:  log.With(slog.String("service", "chats")),
	}
}

// UpsertOnActivity creates the chat on its first message, otherwise advances the
// last-message fields. A new chat is named after its saved contact when one exists.
// Name and avatar of an existing chat are never touched, and an older message never
// replaces a newer last message.
func (s *DBService) UpsertOnActivity(ctx context.Context, in ActivityInput) (Chat, error) {
	chatID := strings.TrimSpace(in.ChatID)
	if chatID == "" {
		return Chat{}, fmt.Errorf("chat id is required")
	}
	name := strings.TrimSpace(in.DisplayNameIfNew)
	if name == "" {
		name = DefaultDisplayName(chatID)
	}
	avatar := strings.TrimSpace(in.AvatarIfNew)
	if avatar == "" {
		avatar = DefaultAvatar(in.Platform)
	}
	delta := in.UnreadDelta
	if delta < 0 {
		delta = 0
	}
	row, err := s.queries.UpsertChatActivity(ctx, sqlc.UpsertChatActivityParams{
		ChatID:               chatID,
		Name:                 name,
		Platform:             in.Platform,
		LastMessage:          in.LastText,
		LastMessageTimestamp: in.LastTimestamp,
		Avatar:               avatar,
		UnreadCount:          int32(delta),
	})
	if err != nil {
		return Chat{}, fmt.Errorf("upsert chat: %w", err)
	}
	return toChat(row), nil
}

// List returns all chats, most recent activity first.
func (s *DBService) List(ctx context.Context) ([]Chat, error) {
	rows, err := s.queries.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	out := make([]Chat, 0, len(rows))
	for _, row := range rows {
		out = append(out, toChat(row))
	}
	return out, nil
}

// Get returns one chat or ErrNotFound.
func (s *DBService) Get(ctx context.Context, chatID string) (Chat, error) {
	row, err := s.queries.GetChat(ctx, chatID)
	if err != nil {
		if dbpkg.IsNoRows(err) {
			return Chat{}, ErrNotFound
		}
		return Chat{}, fmt.Errorf("get chat: %w", err)
	}
	return toChat(row), nil
}

// MarkRead resets the unread badge.
func (s *DBService) MarkRead(ctx context.Context, chatID string) (Chat, error) {
	row, err := s.queries.ResetChatUnread(ctx, chatID)
	if err != nil {
		if dbpkg.IsNoRows(err) {
			return Chat{}, ErrNotFound
		}
		return Chat{}, fmt.Errorf("reset unread: %w", err)
	}
	return toChat(row), nil
}

// Rename sets the display name. Only the contact-save flow calls it.
// A missing chat is not an error; UpsertOnActivity takes the saved contact name
// when the chat is first created.
func (s *DBService) Rename(ctx context.Context, chatID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	n, err := s.queries.UpdateChatName(ctx, sqlc.UpdateChatNameParams{ChatID: chatID, Name: name})
	if err != nil {
		return fmt.Errorf("rename chat: %w", err)
	}
	if n == 0 {
		s.logger.Debug("rename skipped, chat not found", slog.String("chat_id", chatID))
	}
	return nil
}

// Delete removes the chat with its messages, notes, tag links and contact.
func (s *DBService) Delete(ctx context.Context, chatID string) error {
	if s.tx == nil {
		return fmt.Errorf("chat transactions not configured")
	}
	return s.tx(ctx, func(q CascadeStore) error {
		if err := q.DeleteMessagesByChat(ctx, chatID); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if err := q.DeleteNotesByChat(ctx, chatID); err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}
		if err := q.DeleteChatTagsByChat(ctx, chatID); err != nil {
			return fmt.Errorf("delete chat tags: %w", err)
		}
		if err := q.DeleteContactByChat(ctx, chatID); err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
		n, err := q.DeleteChat(ctx, chatID)
		if err != nil {
			return fmt.Errorf("delete chat: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DefaultDisplayName is the name given to a chat first seen without a sender name.
func DefaultDisplayName(chatID string) string {
	suffix := chatID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "User " + suffix
}

// DefaultAvatar returns a generated avatar URL for the platform.
func DefaultAvatar(platform string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(platform) + "&background=random"
}

func toChat(row sqlc.Chat) Chat {
	return Chat{
		ChatID:               row.ChatID,
		Name:                 row.Name,
		Platform:             row.Platform,
		LastMessage:          row.LastMessage,
		LastMessageTimestamp: row.LastMessageTimestamp,
		Avatar:               row.Avatar,
		UnreadCount:          int(row.UnreadCount),
		CreatedAt:            dbpkg.TimeFromPg(row.CreatedAt),
		UpdatedAt:            dbpkg.TimeFromPg(row.UpdatedAt),
	}
}
