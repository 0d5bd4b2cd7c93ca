package message

import (
	"context"
	"time"
)

// Platform values accepted for a message.
const (
	PlatformWhatsApp  = "whatsapp"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
)

// Direction values. Inbound is from the customer, outbound from the business account.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message types.
const (
	TypeText  = "text"
	TypeAudio = "audio"
)

// Canonical is the provider-independent form of one message.
type Canonical struct {
	Platform          string `json:"platform"`
	ChatID            string `json:"chatId"`
	Text              string `json:"text"`
	MediaURL          string `json:"mediaUrl,omitempty"`
	MessageType       string `json:"messageType"`
	ProviderMessageID string `json:"providerMessageId,omitempty"`
	Direction         string `json:"direction"`
	Timestamp         int64  `json:"timestamp"`
	SenderDisplayName string `json:"senderDisplayName,omitempty"`
}

// Message is a persisted Canonical message.
type Message struct {
	ID string `json:"id"`
	Canonical
	CreatedAt time.Time `json:"createdAt"`
}

// Service persists and lists messages.
type Service interface {
	InsertIfNew(ctx context.Context, msg Canonical) (Message, bool, error)
	ListByChat(ctx context.Context, chatID string) ([]Message, error)
	Count(ctx context.Context) (int64, error)
}

// ValidPlatform reports whether p is one of the supported platforms.
func ValidPlatform(p string) bool {
	switch p {
	case PlatformWhatsApp, PlatformInstagram, PlatformFacebook:
		return true
	}
	return false
}
