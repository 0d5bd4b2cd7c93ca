package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Provider discriminators found in the top-level "object" field.
const (
	ObjectInstagram = "instagram"
	ObjectWhatsApp  = "whatsapp_business_account"
	ObjectPage      = "page"
)

// Envelope is one decoded provider delivery. The concrete type is one of
// *InstagramEnvelope, *WhatsAppEnvelope, *FacebookPageEnvelope or *UnrecognizedEnvelope.
type Envelope interface {
	Object() string
}

// ParseError reports a delivery that could not be decoded or lacks a required path.
type ParseError struct {
	Object string
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse webhook")
	if e.Object != "" {
		b.WriteString(" " + e.Object)
	}
	if e.Path != "" {
		b.WriteString(": " + e.Path)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Party is a sender or recipient in Messenger-style events.
type Party struct {
	ID string `json:"id"`
}

// Attachment is a media item of a Messenger-style message.
type Attachment struct {
	Type    string `json:"type"`
	Payload struct {
		URL string `json:"url"`
	} `json:"payload"`
}

// MessagingMessage is the message body of a Messenger-style event.
type MessagingMessage struct {
	Mid         string       `json:"mid"`
	Text        string       `json:"text"`
	IsEcho      bool         `json:"is_echo"`
	Attachments []Attachment `json:"attachments"`
}

// MessagingEvent is one element of entry[].messaging[].
type MessagingEvent struct {
	Sender    Party             `json:"sender"`
	Recipient Party             `json:"recipient"`
	Timestamp FlexInt           `json:"timestamp"`
	Message   *MessagingMessage `json:"message"`
}

// MessagingEntry is one element of entry[] for Instagram and Page deliveries.
type MessagingEntry struct {
	ID        string           `json:"id"`
	Time      FlexInt          `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// InstagramEnvelope is an Instagram Messaging delivery.
type InstagramEnvelope struct {
	Entry []MessagingEntry `json:"entry"`
}

func (*InstagramEnvelope) Object() string { return ObjectInstagram }

// FacebookPageEnvelope is a Page Messaging delivery. Same shape as Instagram.
type FacebookPageEnvelope struct {
	Entry []MessagingEntry `json:"entry"`
}

func (*FacebookPageEnvelope) Object() string { return ObjectPage }

// WhatsAppMedia references provider-hosted media by ID.
type WhatsAppMedia struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
}

// WhatsAppMessage is one element of value.messages[].
type WhatsAppMessage struct {
	From      string  `json:"from"`
	ID        string  `json:"id"`
	Timestamp FlexInt `json:"timestamp"`
	Type      string  `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text"`
	Audio *WhatsAppMedia `json:"audio"`
	Voice *WhatsAppMedia `json:"voice"`
}

// WhatsAppContact is one element of value.contacts[].
type WhatsAppContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// WhatsAppValue is the payload of one change.
type WhatsAppValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Contacts         []WhatsAppContact `json:"contacts"`
	Messages         []WhatsAppMessage `json:"messages"`
	Statuses         []json.RawMessage `json:"statuses"`
}

// WhatsAppChange is one element of entry[].changes[].
type WhatsAppChange struct {
	Field string        `json:"field"`
	Value WhatsAppValue `json:"value"`
}

// WhatsAppEntry is one element of entry[] for WhatsApp deliveries.
type WhatsAppEntry struct {
	ID      string           `json:"id"`
	Changes []WhatsAppChange `json:"changes"`
}

// WhatsAppEnvelope is a WhatsApp Business delivery.
type WhatsAppEnvelope struct {
	Entry []WhatsAppEntry `json:"entry"`
}

func (*WhatsAppEnvelope) Object() string { return ObjectWhatsApp }

// UnrecognizedEnvelope is any delivery with an object this service does not ingest.
type UnrecognizedEnvelope struct {
	Name string
}

func (e *UnrecognizedEnvelope) Object() string { return e.Name }

// FlexInt decodes integers sent either as JSON numbers or numeric strings.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
		if len(data) == 0 {
			*f = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		// Some senders emit floats like 1.7e12.
		fl, ferr := strconv.ParseFloat(string(data), 64)
		if ferr != nil || math.IsNaN(fl) || fl < math.MinInt64 || fl >= math.MaxInt64 {
			return fmt.Errorf("invalid integer %q", data)
		}
		n = int64(fl)
	}
	*f = FlexInt(n)
	return nil
}

// ParseEnvelope decodes the object discriminator and the matching variant.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var head struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, &ParseError{Err: err}
	}
	var env Envelope
	switch head.Object {
	case ObjectInstagram:
		env = &InstagramEnvelope{}
	case ObjectWhatsApp:
		env = &WhatsAppEnvelope{}
	case ObjectPage:
		env = &FacebookPageEnvelope{}
	default:
		return &UnrecognizedEnvelope{Name: head.Object}, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, &ParseError{Object: head.Object, Err: err}
	}
	return env, nil
}
