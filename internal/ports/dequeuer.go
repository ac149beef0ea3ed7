package ports

// Dequeuer — возможность клиента брокера перестать забирать новые сообщения.
// Остановка вступает в силу после обработки текущего сообщения.
type Dequeuer interface {
	ForceStop()
}
