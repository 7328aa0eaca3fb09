package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// serializa escritas concorrentes do mesmo serviço até o fim da transação
	LockService(
		ctx context.Context,
		serviceID uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	FindServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	CreateService(
		ctx context.Context,
		svc *models.Service,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		serviceID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	ListAppointmentsForService(
		ctx context.Context,
		serviceID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Booking record --------
	GetBookingRecordByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.BookingRecord, error)

	SaveBookingRecord(
		ctx context.Context,
		rec *models.BookingRecord,
	) error

	DeleteBookingRecordByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (int64, error)
}
