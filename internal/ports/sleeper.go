package ports

// Sleeper — блокирующая пауза; выделена, чтобы подменять в тестах.
type Sleeper interface {
	Sleep(seconds int)
}
