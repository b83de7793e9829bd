package redis_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/address-search/internal/domain"
	"github.com/address-search/internal/domain/repository"
	redisRepo "github.com/address-search/internal/repository/redis"
)

const (
	testStream = "test:stream:location:selected"
	testGroup  = "test-group"
)

// newTestRepository поднимает miniredis и возвращает репозиторий поверх него
func newTestRepository(t *testing.T) (repository.StreamRepository, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisRepo.NewStreamRepository(client, zap.NewNop()), client
}

func testEvent() *domain.SelectionEvent {
	return domain.NewSelectionEvent("session-1", &domain.LocationCandidate{
		ID:          "123",
		Label:       "Paris, Île-de-France, France",
		Category:    "city",
		Coordinates: domain.Coordinates{Lat: "48.8588897", Lon: "2.3200410"},
		Raw:         json.RawMessage(`{"place_id":123}`),
	})
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	repo, client := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))

	// группа существует: чтение через нее не дает NOGROUP
	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 1)
	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Equal(t, int64(1), client.Exists(ctx, testStream).Val())

	// Повторное создание не ошибка (BUSYGROUP)
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	repo, client := newTestRepository(t)
	ctx := context.Background()

	event := testEvent()
	require.NoError(t, repo.PublishToStream(ctx, testStream, event))

	messages, err := client.XRange(ctx, testStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)

	data, ok := messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.SelectionEvent
	require.NoError(t, json.Unmarshal([]byte(data), &received))
	assert.Equal(t, event.EventID, received.EventID)
	assert.Equal(t, "session-1", received.SessionID)
	require.NotNil(t, received.Candidate)
	assert.Equal(t, "Paris, Île-de-France, France", received.Candidate.Label)
	assert.JSONEq(t, `{"place_id":123}`, string(received.Candidate.Raw))
}

func TestStreamRepository_ConsumeAndAck(t *testing.T) {
	repo, client := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testStream, testEvent()))
	}

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	for _, msg := range batch {
		assert.NotEmpty(t, msg.ID)
		var event domain.SelectionEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Data), &event))
		assert.Equal(t, "selected", event.Kind())
	}

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Count)

	ids := []string{batch[0].ID, batch[1].ID}
	require.NoError(t, repo.AckMessages(ctx, testStream, testGroup, ids))

	pending, err = client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	rest, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 10)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestStreamRepository_ConsumeSkipsMessagesWithoutData(t *testing.T) {
	repo, client := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"other": "value"},
	}).Err())
	require.NoError(t, repo.PublishToStream(ctx, testStream, testEvent()))

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 10)
	require.NoError(t, err)
	assert.Len(t, batch, 1)

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}

func TestStreamRepository_AckEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.NoError(t, repo.AckMessages(context.Background(), testStream, testGroup, nil))
}
