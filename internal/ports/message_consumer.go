package ports

import (
	"context"
	"errors"
)

// ErrConsumerStopped — цикл консьюмера завершился после принудительной остановки.
var ErrConsumerStopped = errors.New("consumer stopped on request")

type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
