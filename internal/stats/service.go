// Package stats computes the dashboard counters.
package stats

import (
	"context"
	"fmt"

	"github.com/risut/crm/internal/db/sqlc"
)

// Stats is the dashboard summary.
type Stats struct {
	TotalContacts        int64            `json:"totalContacts"`
	TotalChats           int64            `json:"totalChats"`
	TotalMessages        int64            `json:"totalMessages"`
	PlatformDistribution map[string]int64 `json:"platformDistribution"`
}

// Store is the subset of sqlc queries the stats service needs.
type Store interface {
	CountContacts(ctx context.Context) (int64, error)
	CountChats(ctx context.Context) (int64, error)
	CountMessages(ctx context.Context) (int64, error)
	CountChatsByPlatform(ctx context.Context) ([]sqlc.CountChatsByPlatformRow, error)
}

type Service struct {
	queries Store
}

func NewService(queries Store) *Service {
	return &Service{queries: queries}
}

// Get returns the current counters. Chats are distributed by platform.
func (s *Service) Get(ctx context.Context) (Stats, error) {
	var out Stats
	var err error
	if out.TotalContacts, err = s.queries.CountContacts(ctx); err != nil {
		return Stats{}, fmt.Errorf("count contacts: %w", err)
	}
	if out.TotalChats, err = s.queries.CountChats(ctx); err != nil {
		return Stats{}, fmt.Errorf("count chats: %w", err)
	}
	if out.TotalMessages, err = s.queries.CountMessages(ctx); err != nil {
		return Stats{}, fmt.Errorf("count messages: %w", err)
	}
	rows, err := s.queries.CountChatsByPlatform(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count chats by platform: %w", err)
	}
	out.PlatformDistribution = make(map[string]int64, len(rows))
	for _, row := range rows {
		out.PlatformDistribution[row.Platform] = row.Count
	}
	return out, nil
}
