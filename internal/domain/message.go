package domain

import "time"

// Message — сообщение из брокера в нейтральном для транспорта виде.
type Message struct {
	ID         string            `json:"id"`
	Consumer   string            `json:"consumer"`
	Key        string            `json:"key,omitempty"`
	Payload    []byte            `json:"payload"`
	Headers    map[string]string `json:"headers,omitempty"`
	ReceivedAt time.Time         `json:"received_at"`
}
