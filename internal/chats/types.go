package chats

import (
	"context"
	"time"
)

// Chat is one conversation with a customer, keyed by the provider-scoped counterpart ID.
type Chat struct {
	ChatID               string    `json:"chat_id"`
	Name                 string    `json:"name"`
	Platform             string    `json:"platform"`
	LastMessage          string    `json:"last_message"`
	LastMessageTimestamp int64     `json:"last_message_timestamp"`
	Avatar               string    `json:"avatar"`
	UnreadCount          int       `json:"unread_count"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ActivityInput records one message on a chat.
// DisplayNameIfNew and AvatarIfNew only apply when the chat does not exist yet.
type ActivityInput struct {
	ChatID           string
	Platform         string
	DisplayNameIfNew string
	LastText         string
	LastTimestamp    int64
	AvatarIfNew      string
	UnreadDelta      int
}

// Service manages chats.
type Service interface {
	UpsertOnActivity(ctx context.Context, in ActivityInput) (Chat, error)
	List(ctx context.Context) ([]Chat, error)
	Get(ctx context.Context, chatID string) (Chat, error)
	MarkRead(ctx context.Context, chatID string) (Chat, error)
	Rename(ctx context.Context, chatID, name string) error
	Delete(ctx context.Context, chatID string) error
}
