package webhook

import (
	"errors"
	"strings"

	"github.com/risut/crm/internal/message"
)

// AudioPlaceholder is stored as the text of audio messages.
const AudioPlaceholder = "[Audio]"

var errEmpty = errors.New("empty")

// Normalizer maps provider envelopes to canonical messages. It performs no I/O.
type Normalizer struct {
	InstagramAccountID string
	FacebookPageID     string
}

// Normalize returns the message carried by env. ok is false when the delivery has
// nothing to ingest, such as receipts or unsupported objects.
func (n Normalizer) Normalize(env Envelope) (msg message.Canonical, ok bool, err error) {
	switch e := env.(type) {
	case *InstagramEnvelope:
		return normalizeMessaging(ObjectInstagram, message.PlatformInstagram, n.InstagramAccountID, e.Entry)
	case *FacebookPageEnvelope:
		return normalizeMessaging(ObjectPage, message.PlatformFacebook, n.FacebookPageID, e.Entry)
	case *WhatsAppEnvelope:
		return normalizeWhatsApp(e)
	default:
		return message.Canonical{}, false, nil
	}
}

func normalizeMessaging(object, platform, accountID string, entries []MessagingEntry) (message.Canonical, bool, error) {
	if len(entries) == 0 {
		return message.Canonical{}, false, &ParseError{Object: object, Path: "entry", Err: errEmpty}
	}
	entry := entries[0]
	if len(entry.Messaging) == 0 {
		return message.Canonical{}, false, &ParseError{Object: object, Path: "entry[0].messaging", Err: errEmpty}
	}
	ev := entry.Messaging[0]
	if ev.Message == nil {
		return message.Canonical{}, false, nil
	}

	msg := message.Canonical{
		Platform:          platform,
		MessageType:       message.TypeText,
		ProviderMessageID: strings.TrimSpace(ev.Message.Mid),
		Direction:         message.DirectionInbound,
		ChatID:            ev.Sender.ID,
	}
	// The chat is keyed by the customer, never by the business account.
	if accountID != "" && ev.Sender.ID == accountID {
		msg.Direction = message.DirectionOutbound
		msg.ChatID = ev.Recipient.ID
	}
	if strings.TrimSpace(msg.ChatID) == "" {
		return message.Canonical{}, false, &ParseError{Object: object, Path: "entry[0].messaging[0].sender/recipient.id", Err: errEmpty}
	}

	switch {
	case ev.Message.Text != "":
		msg.Text = ev.Message.Text
	case len(ev.Message.Attachments) > 0 && ev.Message.Attachments[0].Type == "audio":
		msg.MessageType = message.TypeAudio
		msg.Text = AudioPlaceholder
		msg.MediaURL = ev.Message.Attachments[0].Payload.URL
	default:
		return message.Canonical{}, false, nil
	}

	ts := int64(ev.Timestamp)
	if ts == 0 {
		ts = int64(entry.Time)
	}
	msg.Timestamp = ts / 1000
	return msg, true, nil
}

func normalizeWhatsApp(e *WhatsAppEnvelope) (message.Canonical, bool, error) {
	if len(e.Entry) == 0 {
		return message.Canonical{}, false, &ParseError{Object: ObjectWhatsApp, Path: "entry", Err: errEmpty}
	}
	if len(e.Entry[0].Changes) == 0 {
		return message.Canonical{}, false, &ParseError{Object: ObjectWhatsApp, Path: "entry[0].changes", Err: errEmpty}
	}
	value := e.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		if len(value.Statuses) > 0 {
			return message.Canonical{}, false, nil
		}
		return message.Canonical{}, false, &ParseError{Object: ObjectWhatsApp, Path: "entry[0].changes[0].value.messages", Err: errEmpty}
	}
	wa := value.Messages[0]
	if strings.TrimSpace(wa.From) == "" {
		return message.Canonical{}, false, &ParseError{Object: ObjectWhatsApp, Path: "entry[0].changes[0].value.messages[0].from", Err: errEmpty}
	}

	msg := message.Canonical{
		Platform:          message.PlatformWhatsApp,
		ChatID:            wa.From,
		MessageType:       message.TypeText,
		ProviderMessageID: strings.TrimSpace(wa.ID),
		Direction:         message.DirectionInbound,
		Timestamp:         int64(wa.Timestamp),
	}
	switch wa.Type {
	case "text":
		if wa.Text == nil || wa.Text.Body == "" {
			return message.Canonical{}, false, nil
		}
		msg.Text = wa.Text.Body
	case "audio", "voice":
		media := wa.Audio
		if media == nil {
			media = wa.Voice
		}
		msg.MessageType = message.TypeAudio
		msg.Text = AudioPlaceholder
		// Provider media ID, not a fetchable URL.
		if media != nil {
			msg.MediaURL = media.ID
		}
	default:
		return message.Canonical{}, false, nil
	}
	if len(value.Contacts) > 0 {
		msg.SenderDisplayName = strings.TrimSpace(value.Contacts[0].Profile.Name)
	}
	return msg, true, nil
}
