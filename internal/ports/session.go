package ports

import "context"

// Session — долгоживущая сессия хранилища (unit of work), общая для всех сообщений консьюмера.
type Session interface {
	// Clear — сбросить накопленное между сообщениями состояние.
	Clear(ctx context.Context)
	// IsUsable — false, если сессия сломана безвозвратно.
	IsUsable(ctx context.Context) bool
}
