package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus executa a transição validada e carimba os timestamps
// terminais quando for o caso.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCanceled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}
