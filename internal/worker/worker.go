package worker

import "context"

// Worker - потребитель одного Redis Stream внутри consumer group
type Worker interface {
	Name() string
	// Stream - ключ стрима, который читает воркер
	Stream() string
	// Start блокирует до Stop или отмены ctx
	Start(ctx context.Context) error
	Stop() error
}
