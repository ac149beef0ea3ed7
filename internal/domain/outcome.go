package domain

// Outcome — решение о подтверждении сообщения, которое возвращается циклу брокера.
type Outcome int

const (
	// OutcomeAck — сообщение обработано, подтверждаем.
	OutcomeAck Outcome = iota + 1
	// OutcomeReject — отбрасываем сообщение без возврата в очередь.
	OutcomeReject
	// OutcomeRejectRequeue — отбрасываем и возвращаем в очередь.
	OutcomeRejectRequeue
	// OutcomeSingleNackRequeue — nack только этого сообщения с возвратом в очередь.
	OutcomeSingleNackRequeue
)

// Valid — входит ли значение в множество известных кодов.
func (o Outcome) Valid() bool {
	return o >= OutcomeAck && o <= OutcomeSingleNackRequeue
}

// Requeue — должно ли сообщение вернуться в очередь.
func (o Outcome) Requeue() bool {
	return o == OutcomeRejectRequeue || o == OutcomeSingleNackRequeue
}

func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeReject:
		return "reject"
	case OutcomeRejectRequeue:
		return "reject_requeue"
	case OutcomeSingleNackRequeue:
		return "single_nack_requeue"
	default:
		return "unknown"
	}
}
