package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/events"
)

func pendingEvent(maxAttempts int8) *events.Event {
	return &events.Event{
		ID:          uuid.New(),
		Name:        "test.created",
		Payload:     []byte(`{}`),
		Status:      events.EventStatusPending,
		MaxAttempts: maxAttempts,
		ScheduledAt: time.Now().Add(-time.Second),
		CreatedAt:   time.Now(),
	}
}

func TestMemoryStorage_ClaimLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()
	consumerID := uuid.New()

	ev := pendingEvent(3)
	require.NoError(t, storage.Append(ctx, ev))

	claimed, err := storage.Claim(ctx, consumerID, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, claimed.ID)
	assert.Equal(t, events.EventStatusProcessing, claimed.Status)

	// Locked events are not claimable again within the lock window.
	_, err = storage.Claim(ctx, consumerID, time.Minute)
	assert.ErrorIs(t, err, events.ErrNoEventToClaim)

	require.NoError(t, storage.MarkDelivered(ctx, ev.ID))
	stored := storage.Events()
	require.Len(t, stored, 1)
	assert.Equal(t, events.EventStatusDelivered, stored[0].Status)
	assert.NotNil(t, stored[0].DeliveredAt)
}

func TestMemoryStorage_ExpiredLockIsReclaimable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()

	ev := pendingEvent(3)
	require.NoError(t, storage.Append(ctx, ev))

	// Claim with an already-expired lock, simulating a crashed consumer.
	_, err := storage.Claim(ctx, uuid.New(), -time.Second)
	require.NoError(t, err)

	reclaimed, err := storage.Claim(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, reclaimed.ID)
}

func TestMemoryStorage_MarkFailedReschedules(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()

	ev := pendingEvent(3)
	require.NoError(t, storage.Append(ctx, ev))

	_, err := storage.Claim(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)
	require.NoError(t, storage.MarkFailed(ctx, ev.ID, "send failed"))

	stored := storage.Events()
	require.Len(t, stored, 1)
	assert.Equal(t, events.EventStatusPending, stored[0].Status)
	assert.EqualValues(t, 1, stored[0].Attempts)
	require.NotNil(t, stored[0].LastError)
	assert.Equal(t, "send failed", *stored[0].LastError)
	assert.True(t, stored[0].ScheduledAt.After(time.Now()))
}

func TestMemoryStorage_MarkFailedExhaustsAttempts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()

	ev := pendingEvent(1)
	require.NoError(t, storage.Append(ctx, ev))

	_, err := storage.Claim(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)
	require.NoError(t, storage.MarkFailed(ctx, ev.ID, "send failed"))

	stored := storage.Events()
	require.Len(t, stored, 1)
	assert.Equal(t, events.EventStatusFailed, stored[0].Status)
}

func TestMemoryStorage_MoveToDeadLetter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()

	ev := pendingEvent(1)
	require.NoError(t, storage.Append(ctx, ev))

	_, err := storage.Claim(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)
	require.NoError(t, storage.MarkFailed(ctx, ev.ID, "send failed"))
	require.NoError(t, storage.MoveToDeadLetter(ctx, ev.ID))

	assert.Empty(t, storage.Events())

	dead := storage.DeadEvents()
	require.Len(t, dead, 1)
	assert.Equal(t, ev.ID, dead[0].EventID)
	assert.Equal(t, "send failed", dead[0].Error)
}

func TestMemoryStorage_UnknownEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := events.NewMemoryStorage()

	assert.ErrorIs(t, storage.MarkDelivered(ctx, uuid.New()), events.ErrEventNotFound)
	assert.ErrorIs(t, storage.MarkFailed(ctx, uuid.New(), "x"), events.ErrEventNotFound)
	assert.ErrorIs(t, storage.MoveToDeadLetter(ctx, uuid.New()), events.ErrEventNotFound)
}
