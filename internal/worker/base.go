package worker

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общая часть stream-воркеров: стрим, группа, имя consumer'а и сигнал остановки
type BaseWorker struct {
	name     string
	stream   string
	group    string
	consumer string
	logger   *zap.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewBaseWorker - consumer именуется hostname-pid, чтобы несколько процессов делили группу
func NewBaseWorker(name, stream, group string, logger *zap.Logger) *BaseWorker {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "worker"
	}
	consumer := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BaseWorker{
		name:     name,
		stream:   stream,
		group:    group,
		consumer: consumer,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("stream", stream),
			zap.String("consumer", consumer)),
		stopCh: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string   { return w.name }
func (w *BaseWorker) Stream() string { return w.stream }

// Stop закрывает канал остановки; повторные вызовы ничего не делают
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopCh)
	})
	return nil
}

// Stopping - закрыт после Stop
func (w *BaseWorker) Stopping() <-chan struct{} {
	return w.stopCh
}

func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}

func (w *BaseWorker) ConsumerGroup() string { return w.group }
func (w *BaseWorker) ConsumerName() string  { return w.consumer }
func (w *BaseWorker) Logger() *zap.Logger   { return w.logger }
