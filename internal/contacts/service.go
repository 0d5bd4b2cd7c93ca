// Package contacts stores the CRM contact card attached to each chat.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/risut/crm/internal/chats"
	dbpkg "github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/db/sqlc"
)

var (
	// ErrNotFound is returned when the contact does not exist.
	ErrNotFound = errors.New("contact not found")
	// ErrInvalidInput wraps request values the store must not see.
	ErrInvalidInput = errors.New("invalid contact")
)

// Store is the subset of sqlc queries the contact service needs.
type Store interface {
	ListContacts(ctx context.Context) ([]sqlc.Contact, error)
	GetContactByID(ctx context.Context, id pgtype.UUID) (sqlc.Contact, error)
	GetContactByChatID(ctx context.Context, chatID string) (sqlc.Contact, error)
	UpsertContact(ctx context.Context, arg sqlc.UpsertContactParams) (sqlc.Contact, error)
	UpdateContact(ctx context.Context, arg sqlc.UpdateContactParams) (sqlc.Contact, error)
	DeleteContact(ctx context.Context, id pgtype.UUID) (int64, error)
	CountContacts(ctx context.Context) (int64, error)
}

// ChatRenamer updates the display name of a chat.
type ChatRenamer interface {
	Rename(ctx context.Context, chatID, name string) error
}

// TxRunner runs fn atomically. Writes through the given store and renamer commit together.
type TxRunner func(ctx context.Context, fn func(Store, ChatRenamer) error) error

// PgTxRunner runs fn in a Postgres transaction on conn.
func PgTxRunner(log *slog.Logger, conn dbpkg.Beginner) TxRunner {
	return func(ctx context.Context, fn func(Store, ChatRenamer) error) error {
		return dbpkg.InTx(ctx, conn, func(tx pgx.Tx) error {
			queries := sqlc.New(tx)
			return fn(queries, chats.NewService(log, queries, nil))
		})
	}
}

// Service manages contacts.
type Service struct {
	queries Store
	tx      TxRunner
	logger  *slog.Logger
}

// NewService creates a contact service. Without tx, saves run on queries and
// leave chat names untouched.
func NewService(log *slog.Logger, queries Store, tx TxRunner) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		tx:      tx,
		logger:  log.With(slog.String("service", "contacts")),
	}
}

func (s *Service) write(ctx context.Context, fn func(Store, ChatRenamer) error) error {
	if s.tx == nil {
		return fn(s.queries, nil)
	}
	return s.tx(ctx, fn)
}

// List returns all contacts, newest first.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	rows, err := s.queries.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	out := make([]Contact, 0, len(rows))
	for _, row := range rows {
		out = append(out, toContact(row))
	}
	return out, nil
}

// Get returns a contact by ID.
func (s *Service) Get(ctx context.Context, id string) (Contact, error) {
	pgID, err := dbpkg.ParseUUID(id)
	if err != nil {
		return Contact{}, ErrNotFound
	}
	row, err := s.queries.GetContactByID(ctx, pgID)
	if err != nil {
		return Contact{}, mapErr("get contact", err)
	}
	return toContact(row), nil
}

// GetByChat returns the contact saved for a chat.
func (s *Service) GetByChat(ctx context.Context, chatID string) (Contact, error) {
	row, err := s.queries.GetContactByChatID(ctx, chatID)
	if err != nil {
		return Contact{}, mapErr("get contact by chat", err)
	}
	return toContact(row), nil
}

// Save upserts the contact of req.ChatID and renames the chat to the contact name.
// Both writes commit or neither does.
func (s *Service) Save(ctx context.Context, req SaveRequest) (Contact, error) {
	chatID := strings.TrimSpace(req.ChatID)
	name := strings.TrimSpace(req.Name)
	if chatID == "" || name == "" || strings.TrimSpace(req.Platform) == "" {
		return Contact{}, fmt.Errorf("%w: name, platform and chatId are required", ErrInvalidInput)
	}
	var row sqlc.Contact
	err := s.write(ctx, func(q Store, renamer ChatRenamer) error {
		var err error
		row, err = q.UpsertContact(ctx, sqlc.UpsertContactParams{
			ChatID:   chatID,
			Name:     name,
			Email:    strings.TrimSpace(req.Email),
			Phone:    strings.TrimSpace(req.Phone),
			Company:  strings.TrimSpace(req.Company),
			Notes:    req.Notes,
			Platform: req.Platform,
		})
		if err != nil {
			return fmt.Errorf("upsert contact: %w", err)
		}
		if renamer == nil {
			return nil
		}
		return renamer.Rename(ctx, chatID, name)
	})
	if err != nil {
		return Contact{}, err
	}
	return toContact(row), nil
}

// Update patches a contact. A changed name is propagated to the chat in the same transaction.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Contact, error) {
	pgID, err := dbpkg.ParseUUID(id)
	if err != nil {
		return Contact{}, ErrNotFound
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return Contact{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		req.Name = &trimmed
	}
	var row sqlc.Contact
	err = s.write(ctx, func(q Store, renamer ChatRenamer) error {
		var err error
		row, err = q.UpdateContact(ctx, sqlc.UpdateContactParams{
			Name:    dbpkg.TextFromPtr(req.Name),
			Email:   dbpkg.TextFromPtr(req.Email),
			Phone:   dbpkg.TextFromPtr(req.Phone),
			Company: dbpkg.TextFromPtr(req.Company),
			Notes:   dbpkg.TextFromPtr(req.Notes),
			ID:      pgID,
		})
		if err != nil {
			return mapErr("update contact", err)
		}
		if req.Name == nil || renamer == nil {
			return nil
		}
		return renamer.Rename(ctx, row.ChatID, row.Name)
	})
	if err != nil {
		return Contact{}, err
	}
	return toContact(row), nil
}

// Delete removes a contact by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	pgID, err := dbpkg.ParseUUID(id)
	if err != nil {
		return ErrNotFound
	}
	n, err := s.queries.DeleteContact(ctx, pgID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of contacts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.queries.CountContacts(ctx)
}

func mapErr(op string, err error) error {
	if dbpkg.IsNoRows(err) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toContact(row sqlc.Contact) Contact {
	return Contact{
		ID:        dbpkg.UUIDToString(row.ID),
		ChatID:    row.ChatID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Company:   row.Company,
		Notes:     row.Notes,
		Platform:  row.Platform,
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
		UpdatedAt: dbpkg.TimeFromPg(row.UpdatedAt),
	}
}
