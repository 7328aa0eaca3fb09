package models

import "time"

// Turno solicitado por um cliente. O par (serviço, início) é único no banco;
// a sobreposição de intervalos é verificada pela aplicação.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null;uniqueIndex:idx_appointment_service_start" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`
	ClientEmail string `gorm:"size:254" json:"client_email"`

	StartTime time.Time `gorm:"not null;uniqueIndex:idx_appointment_service_start" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Confirmed bool `gorm:"not null;default:false" json:"confirmed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
