package appointment

// ===============================
// Confirmation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

func StatusOf(confirmed bool) Status {
	if confirmed {
		return StatusConfirmed
	}
	return StatusPending
}

// ===============================
// Booking-Record transitions
// ===============================

type Transition int

const (
	TransitionNone Transition = iota
	// cria ou atualiza o BookingRecord vinculado
	TransitionSync
	// remove o BookingRecord vinculado
	TransitionRemove
)

// NextTransition decide o efeito sobre o BookingRecord depois de salvar.
// previous é nil quando o turno acabou de ser criado.
func NextTransition(previous *bool, confirmed bool) Transition {
	if confirmed {
		return TransitionSync
	}
	if previous != nil && *previous {
		return TransitionRemove
	}
	return TransitionNone
}
