package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel — часть *amqp.Channel, нужная консьюмеру; подменяется в тестах.
type channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Cancel(consumer string, noWait bool) error
	Close() error
}

var _ channel = (*amqp.Channel)(nil)

// Connection — соединение с брокером; каналы открываются по одному на консьюмер,
// потому что prefetch задаётся на канал.
type Connection struct {
	conn *amqp.Connection
}

// Dial — подключение по AMQP URL.
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	return &Connection{conn: conn}, nil
}

// Channel — новый канал.
func (c *Connection) Channel() (*amqp.Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	return ch, nil
}

// IsClosed — соединение закрыто (брокером или нами).
func (c *Connection) IsClosed() bool { return c.conn.IsClosed() }

func (c *Connection) Close() error {
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}
