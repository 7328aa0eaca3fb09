package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ServiceID   uint      `json:"service_id"`
	ServiceName string    `json:"service_name"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Confirmed   bool      `json:"confirmed"`
	Status      string    `json:"status"`
}

func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			ServiceID:   ap.ServiceID,
			ServiceName: ap.Service.Name,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			ClientEmail: ap.ClientEmail,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Confirmed:   ap.Confirmed,
			Status:      string(domain.StatusOf(ap.Confirmed)),
		})
	}
	return out
}
