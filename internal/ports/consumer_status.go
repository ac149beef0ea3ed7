package ports

import "github.com/Gunvolt24/consumer_handler/internal/domain"

// ConsumerStatusReader — снимок состояния всех консьюмеров в порядке имён.
type ConsumerStatusReader interface {
	ConsumerStatuses() []domain.ConsumerStatus
}
