package webhook

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/live"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/metrics"
)

// DefaultPersistTimeout bounds the storage work of one delivery.
const DefaultPersistTimeout = 5 * time.Second

// MessageStore inserts canonical messages with deduplication.
type MessageStore interface {
	InsertIfNew(ctx context.Context, msg message.Canonical) (message.Message, bool, error)
}

// ChatStore records chat activity.
type ChatStore interface {
	UpsertOnActivity(ctx context.Context, in chats.ActivityInput) (chats.Chat, error)
}

// Broadcaster publishes live events.
type Broadcaster interface {
	Broadcast(event live.Event)
}

// Relay forwards raw deliveries. Implementations must not block past their own timeout.
type Relay interface {
	Forward(ctx context.Context, raw []byte, object string)
}

// Pipeline runs one delivery through relay, normalization, storage and broadcast.
// Only authentication failures are visible to callers; everything else is logged.
type Pipeline struct {
	normalizer     Normalizer
	messages       MessageStore
	chats          ChatStore
	broadcaster    Broadcaster
	relay          Relay
	persistTimeout time.Duration
	logger         *slog.Logger
	metrics        *metrics.Metrics

	inflight sync.WaitGroup
}

// PipelineDeps wires a Pipeline. Relay, Broadcaster and Metrics may be nil.
type PipelineDeps struct {
	Normalizer     Normalizer
	Messages       MessageStore
	Chats          ChatStore
	Broadcaster    Broadcaster
	Relay          Relay
	PersistTimeout time.Duration
	Metrics        *metrics.Metrics
}

// NewPipeline creates a pipeline.
func NewPipeline(log *slog.Logger, deps PipelineDeps) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if deps.PersistTimeout <= 0 {
		deps.PersistTimeout = DefaultPersistTimeout
	}
	return &Pipeline{
		normalizer:     deps.Normalizer,
		messages:       deps.Messages,
		chats:          deps.Chats,
		broadcaster:    deps.Broadcaster,
		relay:          deps.Relay,
		persistTimeout: deps.PersistTimeout,
		logger:         log.With(slog.String("component", "webhook_pipeline")),
		metrics:        deps.Metrics,
	}
}

// Process handles one verified delivery and returns once relay and storage have finished.
func (p *Pipeline) Process(ctx context.Context, raw []byte) {
	env, parseErr := ParseEnvelope(raw)
	object := ""
	if parseErr == nil {
		object = env.Object()
	}

	var relayDone sync.WaitGroup
	if p.relay != nil {
		relayDone.Add(1)
		go func() {
			defer relayDone.Done()
			p.relay.Forward(context.WithoutCancel(ctx), raw, object)
		}()
	}
	defer relayDone.Wait()

	if parseErr != nil {
		p.metrics.MessageIngested("unknown", "malformed")
		p.logger.Warn("malformed webhook payload", slog.Any("error", parseErr))
		return
	}

	msg, ok, err := p.normalizer.Normalize(env)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			p.metrics.MessageIngested(object, "malformed")
			p.logger.Warn("webhook payload missing expected fields", slog.String("object", object), slog.Any("error", err))
			return
		}
		p.logger.Error("normalize webhook failed", slog.String("object", object), slog.Any("error", err))
		return
	}
	if !ok {
		p.metrics.MessageIngested(object, "ignored")
		p.logger.Debug("webhook carried no message", slog.String("object", object))
		return
	}

	if _, _, err := p.Record(ctx, msg); err != nil {
		p.logger.Error("persist webhook message failed",
			slog.String("platform", msg.Platform),
			slog.String("chat_id", msg.ChatID),
			slog.String("message_id", msg.ProviderMessageID),
			slog.Any("error", err))
	}
}

// Record stores msg, updates its chat and broadcasts it when it is new.
// It runs under the persist timeout, detached from ctx cancellation.
func (p *Pipeline) Record(ctx context.Context, msg message.Canonical) (message.Message, bool, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.persistTimeout)
	defer cancel()

	stored, created, err := p.messages.InsertIfNew(ctx, msg)
	if err != nil {
		p.metrics.MessageIngested(msg.Platform, "error")
		return message.Message{}, false, err
	}

	unread := 0
	if created && msg.Direction == message.DirectionInbound {
		unread = 1
	}
	// Runs for duplicates too so a chat update lost on the first delivery is repaired.
	if _, err := p.chats.UpsertOnActivity(ctx, chats.ActivityInput{
		ChatID:           msg.ChatID,
		Platform:         msg.Platform,
		DisplayNameIfNew: msg.SenderDisplayName,
		LastText:         msg.Text,
		LastTimestamp:    msg.Timestamp,
		UnreadDelta:      unread,
	}); err != nil {
		p.logger.Error("update chat activity failed", slog.String("chat_id", msg.ChatID), slog.Any("error", err))
	}

	if !created {
		p.metrics.MessageIngested(msg.Platform, "duplicate")
		p.logger.Debug("duplicate delivery", slog.String("message_id", msg.ProviderMessageID))
		return stored, false, nil
	}
	p.metrics.MessageIngested(msg.Platform, "created")
	if p.broadcaster != nil {
		p.broadcaster.Broadcast(live.Event{Name: live.EventNewMessage, Data: stored})
	}
	return stored, true, nil
}

// Dispatch processes raw in the background. Wait blocks until dispatched work is done.
func (p *Pipeline) Dispatch(raw []byte) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.Process(context.Background(), raw)
	}()
}

// Wait blocks until every dispatched delivery has been processed.
func (p *Pipeline) Wait() {
	p.inflight.Wait()
}

// WaitContext is Wait bounded by ctx.
func (p *Pipeline) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
