package sleeper

import (
	"time"

	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

// Проверка, что Sleeper удовлетворяет порту.
var _ ports.Sleeper = Sleeper{}

// Sleeper — настоящая пауза на wall-clock. Прерывание не поддерживается.
type Sleeper struct{}

func New() Sleeper { return Sleeper{} }

// Sleep блокирует текущую горутину на seconds секунд; seconds <= 0 — без паузы.
func (Sleeper) Sleep(seconds int) {
	if seconds <= 0 {
		return
	}
	time.Sleep(time.Duration(seconds) * time.Second)
}
