package models

import "time"

// Registro de reserva usado em relatórios. Espelha um Appointment confirmado.
type BookingRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	AppointmentID *uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientName  string    `gorm:"size:100;not null" json:"client_name"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`

	// preenchido apenas em bancos vindos do esquema antigo (código textual do serviço)
	LegacyService *string `gorm:"size:50" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
