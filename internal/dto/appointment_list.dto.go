package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type AppointmentListDTO struct {
	ID         uint      `json:"id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	Services   []string  `json:"services"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:         ap.ID,
		StartTime:  ap.StartTime,
		EndTime:    ap.EndTime,
		Status:     ap.Status,
		ClientName: ap.Client.Name,
	}
	for _, as := range ap.Services {
		out.Services = append(out.Services, as.Service.Name)
	}
	return out
}
