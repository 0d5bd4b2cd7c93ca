// Package message persists canonical messages with provider-ID deduplication.
package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	dbpkg "github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/db/sqlc"
)

// Store is the subset of sqlc queries the message service needs.
type Store interface {
	CreateMessage(ctx context.Context, arg sqlc.CreateMessageParams) (sqlc.Message, error)
	GetMessageByProviderID(ctx context.Context, messageID pgtype.Text) (sqlc.Message, error)
	ListMessagesByChat(ctx context.Context, chatID string) ([]sqlc.Message, error)
	CountMessages(ctx context.Context) (int64, error)
}

// DBService stores messages in Postgres.
type DBService struct {
	queries Store
	logger  *slog.Logger
}

var _ Service = (*DBService)(nil)

// NewService creates a message service.
func NewService(log *slog.Logger, queries Store) *DBService {
	if log == nil {
		log = slog.Default()
	}
	return &DBService{
		queries: queries,
		logger:  log.With(slog.String("service", "message")),
	}
}

// InsertIfNew stores msg unless a message with the same provider ID already exists,
// in which case the stored row is returned with created=false.
func (s *DBService) InsertIfNew(ctx context.Context, msg Canonical) (Message, bool, error) {
	if err := validate(msg); err != nil {
		return Message{}, false, err
	}
	providerID := strings.TrimSpace(msg.ProviderMessageID)
	if providerID != "" {
		existing, err := s.queries.GetMessageByProviderID(ctx, dbpkg.TextFromString(providerID))
		if err == nil {
			s.logger.Debug("message already stored", slog.String("message_id", providerID))
			return toMessage(existing), false, nil
		}
		if !dbpkg.IsNoRows(err) {
			return Message{}, false, fmt.Errorf("lookup message: %w", err)
		}
	}

	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		MessageID:   dbpkg.TextFromString(providerID),
		ChatID:      msg.ChatID,
		Platform:    msg.Platform,
		Direction:   msg.Direction,
		MessageType: msg.MessageType,
		Text:        msg.Text,
		MediaUrl:    dbpkg.TextFromString(msg.MediaURL),
		SenderName:  dbpkg.TextFromString(msg.SenderDisplayName),
		Timestamp:   msg.Timestamp,
	})
	if err != nil {
		if providerID != "" && dbpkg.IsUniqueViolation(err) {
			// Lost the race against a concurrent delivery of the same message.
			winner, getErr := s.queries.GetMessageByProviderID(ctx, dbpkg.TextFromString(providerID))
			if getErr != nil {
				return Message{}, false, fmt.Errorf("reread message after conflict: %w", getErr)
			}
			return toMessage(winner), false, nil
		}
		return Message{}, false, fmt.Errorf("create message: %w", err)
	}
	return toMessage(row), true, nil
}

// ListByChat returns the messages of a chat in ascending timestamp order.
func (s *DBService) ListByChat(ctx context.Context, chatID string) ([]Message, error) {
	rows, err := s.queries.ListMessagesByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := make([]Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMessage(row))
	}
	return out, nil
}

// Count returns the total number of stored messages.
func (s *DBService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountMessages(ctx)
}

// ErrInvalidMessage is returned when a message lacks required fields.
var ErrInvalidMessage = errors.New("invalid message")

func validate(msg Canonical) error {
	switch {
	case strings.TrimSpace(msg.ChatID) == "":
		return fmt.Errorf("%w: chat id is required", ErrInvalidMessage)
	case !ValidPlatform(msg.Platform):
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidMessage, msg.Platform)
	case msg.Direction != DirectionInbound && msg.Direction != DirectionOutbound:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidMessage, msg.Direction)
	case msg.MessageType != TypeText && msg.MessageType != TypeAudio:
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidMessage, msg.MessageType)
	}
	return nil
}

func toMessage(row sqlc.Message) Message {
	return Message{
		ID: dbpkg.UUIDToString(row.ID),
		Canonical: Canonical{
			Platform:          row.Platform,
			ChatID:            row.ChatID,
			Text:              row.Text,
			MediaURL:          dbpkg.TextToString(row.MediaUrl),
			MessageType:       row.MessageType,
			ProviderMessageID: dbpkg.TextToString(row.MessageID),
			Direction:         row.Direction,
			Timestamp:         row.Timestamp,
			SenderDisplayName: dbpkg.TextToString(row.SenderName),
		},
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
	}
}
