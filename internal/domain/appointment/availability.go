package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// Overlaps testa a interseção de dois intervalos semiabertos [aStart, aEnd)
// e [bStart, bEnd). Intervalos adjacentes não conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictSet é o resultado da checagem de disponibilidade: vazio = livre.
// "Horário ocupado" é resultado de negócio, não erro.
type ConflictSet struct {
	Conflicts []models.Appointment `json:"conflicts"`
}

func (cs ConflictSet) Empty() bool {
	return len(cs.Conflicts) == 0
}

// TotalDuration soma a duração dos serviços escolhidos, respeitando a
// quantidade de cada um.
func TotalDuration(services []models.Service, quantities map[uint]int) time.Duration {
	var total time.Duration
	for _, svc := range services {
		qty := quantities[svc.ID]
		if qty <= 0 {
			qty = 1
		}
		total += time.Duration(svc.DurationMin*qty) * time.Minute
	}
	return total
}

type AvailabilityInput struct {
	SalonID    uint
	EmployeeID uint
	ServiceIDs []uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
