package chats_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/contacts"
	"github.com/risut/crm/internal/db/sqlc"
	"github.com/risut/crm/internal/logger"
	"github.com/risut/crm/internal/message"
)

func setupIntegrationTest(t *testing.T) (*chats.DBService, *message.DBService, func()) {
	t.Helper()
	chatSvc, msgSvc, _, cleanup := setupIntegrationServices(t)
	return chatSvc, msgSvc, cleanup
}

func setupIntegrationServices(t *testing.T) (*chats.DBService, *message.DBService, *contacts.Service, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("skip integration test: TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("skip integration test: cannot connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skip integration test: database ping failed: %v", err)
	}

	queries := sqlc.New(pool)
	log := logger.Discard()
	return chats.NewService(log, queries, chats.PgTxRunner(pool)),
		message.NewService(log, queries),
		contacts.NewService(log, queries, contacts.PgTxRunner(log, pool)),
		pool.Close
}

func TestIntegrationDuplicateDeliveryStoresOneRow(t *testing.T) {
	chatSvc, msgSvc, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()
	chatID := fmt.Sprintf("it_%d", time.Now().UnixNano())
	msg := message.Canonical{
		Platform:          message.PlatformInstagram,
		ChatID:            chatID,
		Text:              "hi",
		MessageType:       message.TypeText,
		ProviderMessageID: "mid_" + chatID,
		Direction:         message.DirectionInbound,
		Timestamp:         1700000000,
	}

	first, created, err := msgSvc.InsertIfNew(ctx, msg)
	require.NoError(t, err)
	require.True(t, created)
	second, created, err := msgSvc.InsertIfNew(ctx, msg)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	_, err = chatSvc.UpsertOnActivity(ctx, chats.ActivityInput{
		ChatID: chatID, Platform: msg.Platform, LastText: msg.Text, LastTimestamp: msg.Timestamp, UnreadDelta: 1,
	})
	require.NoError(t, err)

	list, err := msgSvc.ListByChat(ctx, chatID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, chatSvc.Delete(ctx, chatID))
	list, err = msgSvc.ListByChat(ctx, chatID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIntegrationNewChatTakesSavedContactName(t *testing.T) {
	chatSvc, _, contactSvc, cleanup := setupIntegrationServices(t)
	defer cleanup()

	ctx := context.Background()
	chatID := fmt.Sprintf("it_%d", time.Now().UnixNano())

	_, err := contactSvc.Save(ctx, contacts.SaveRequest{ChatID: chatID, Name: "Jane Doe", Platform: "instagram"})
	require.NoError(t, err)

	chat, err := chatSvc.UpsertOnActivity(ctx, chats.ActivityInput{
		ChatID: chatID, Platform: message.PlatformInstagram, LastText: "hi", LastTimestamp: 1700000000, UnreadDelta: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", chat.Name)

	require.NoError(t, chatSvc.Delete(ctx, chatID))
}
