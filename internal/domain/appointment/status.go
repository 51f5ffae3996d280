package appointment

import "github.com/BruksfildServices01/salon-comanda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusAbsent     Status = "absent"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// ActiveStatuses são os status que ocupam a agenda do profissional.
// Completed e canceled liberam o horário.
func ActiveStatuses() []string {
	return []string{
		string(StatusScheduled),
		string(StatusConfirmed),
		string(StatusWaiting),
		string(StatusInProgress),
		string(StatusAbsent),
	}
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusWaiting,
		StatusInProgress, StatusAbsent, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal indica se o status encerra o agendamento.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusWaiting, StatusInProgress, StatusAbsent, StatusCompleted, StatusCanceled},
	StatusConfirmed:  {StatusWaiting, StatusInProgress, StatusAbsent, StatusCompleted, StatusCanceled},
	StatusWaiting:    {StatusInProgress, StatusAbsent, StatusCompleted, StatusCanceled},
	StatusInProgress: {StatusCompleted, StatusCanceled},
	StatusAbsent:     {StatusScheduled, StatusCanceled},
}

// CanTransition valida a mudança de status segundo a máquina de estados.
func CanTransition(from, to Status) error {
	if !IsValidStatus(to) {
		return httperr.Validation("invalid_status", "Status desconhecido.")
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrConflict("invalid_state", "Transição de status não permitida.")
}

func InitialStatus() Status {
	return StatusScheduled
}
