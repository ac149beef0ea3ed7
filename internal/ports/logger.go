package ports

import "context"

// Logger — минимальный контракт логгера для внешних слоёв.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof — информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf — предупреждения.
	Errorf(ctx context.Context, format string, args ...any) // Errorf — ошибки.

	// Errorw — ошибка со структурированными полями (пары ключ/значение).
	Errorw(ctx context.Context, msg string, keysAndValues ...any)
}

// Level — уровень для обобщённого логирования через обработчик консьюмера.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)
