package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-leave/internal/messaging/kafka"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOutboxTest(t *testing.T) (*gorm.DB, kafka.OutboxRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&kafka.OutboxEvent{}))
	return db, kafka.NewOutboxRepository(db)
}

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "leave_request",
		AggregateID:   "42",
		EventType:     "leave.status_changed",
		Topic:         "hr.leave.status.v1",
		Payload:       []byte(`{"leave_request_id":42}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_CreateAndListPending(t *testing.T) {
	ctx := context.Background()
	_, repo := setupOutboxTest(t)

	event := pendingEvent()
	require.NoError(t, repo.Create(ctx, event))

	listed, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, event.ID, listed[0].ID)
	assert.Equal(t, event.Topic, listed[0].Topic)
	assert.Equal(t, event.Payload, listed[0].Payload)
}

func TestOutboxRepository_CreateValidation(t *testing.T) {
	ctx := context.Background()
	_, repo := setupOutboxTest(t)

	t.Run("missing topic", func(t *testing.T) {
		event := pendingEvent()
		event.Topic = ""
		assert.Error(t, repo.Create(ctx, event))
	})

	t.Run("empty payload", func(t *testing.T) {
		event := pendingEvent()
		event.Payload = nil
		assert.Error(t, repo.Create(ctx, event))
	})

	t.Run("bogus status", func(t *testing.T) {
		event := pendingEvent()
		event.Status = "in-flight"
		assert.Error(t, repo.Create(ctx, event))
	})
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	event := pendingEvent()
	require.NoError(t, repo.Create(ctx, event))
	require.NoError(t, repo.MarkSent(ctx, event.ID))

	var stored kafka.OutboxEvent
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.Equal(t, kafka.OutboxStatusSent, stored.Status)
	assert.NotNil(t, stored.ProcessedAt)

	listed, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	db, repo := setupOutboxTest(t)

	event := pendingEvent()
	require.NoError(t, repo.Create(ctx, event))
	require.NoError(t, repo.MarkFailed(ctx, event, "broker unreachable"))

	var stored kafka.OutboxEvent
	require.NoError(t, db.First(&stored, "id = ?", event.ID).Error)
	assert.Equal(t, kafka.OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "broker unreachable", *stored.ErrorMessage)
	require.NotNil(t, stored.NextRetryAt)
	assert.True(t, stored.NextRetryAt.After(time.Now().UTC()))

	// Backed off, so not eligible yet.
	listed, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, listed)
}
