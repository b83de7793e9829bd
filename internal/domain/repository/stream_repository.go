package repository

import (
	"context"

	"github.com/address-search/internal/domain"
)

// StreamRepository - Redis Streams для событий выбора адреса
type StreamRepository interface {
	// PublishToStream кладет data в поле "data" как JSON
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup создает группу (и стрим через MKSTREAM); существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до maxCount новых сообщений группы
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error
}
