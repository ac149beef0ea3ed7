package ports

import "context"

// MessageCache — кэш идентификаторов уже обработанных сообщений (защита от повторной доставки).
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type MessageCache interface {
	// Seen — true, если сообщение с таким ID уже обработано и запись не истекла.
	Seen(ctx context.Context, messageID string) bool

	// Remember — запомнить ID обработанного сообщения.
	Remember(ctx context.Context, messageID string)
}
