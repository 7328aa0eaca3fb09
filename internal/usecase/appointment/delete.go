package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove o BookingRecord vinculado e depois o turno, na mesma transação.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID *uint,
) error {

	var removed int64
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetAppointment(ctx, appointmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		n, err := tx.DeleteBookingRecordByAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		removed = n

		return tx.DeleteAppointment(ctx, appointmentID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"booking_records_removed": removed},
	})

	return nil
}
