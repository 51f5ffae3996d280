package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/cache"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	slots *cache.Availability
}

func NewGetAvailability(
	repo domain.Repository,
	slots *cache.Availability,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		slots: slots,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salão não encontrado.")
	}

	quantities := make(map[uint]int, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		quantities[id]++
	}

	services, err := uc.repo.ListServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(quantities) {
		return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}

	slotDuration := domain.TotalDuration(services, quantities)
	if slotDuration <= 0 {
		return nil, httperr.Validation("invalid_duration", "Serviços sem duração definida.")
	}

	day := in.Date.Format("2006-01-02")
	durationMin := int(slotDuration / time.Minute)

	var cached []domain.TimeSlot
	if uc.slots.Get(ctx, in.EmployeeID, day, durationMin, &cached) {
		return cached, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(salon.OpenTime)
	dayEnd := parseHM(salon.CloseTime)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.EmployeeID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}
	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// avança agendamentos já encerrados antes do slot
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	uc.slots.Set(ctx, in.EmployeeID, day, durationMin, slots)

	return slots, nil
}
