package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type writeOptions struct {
	// mantém EndTime como veio; caso contrário é recalculado pela duração
	ExplicitEnd bool
	// o intervalo não mudou (ex.: só a confirmação), não há o que verificar
	SkipConflictCheck bool
}

// writer concentra o caminho de escrita compartilhado pelos casos de uso.
// Deve ser chamado dentro de uma transação.
type writer struct {
	sync *SyncBookingRecord
}

func (w writer) persist(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	opts writeOptions,
) (domain.Transition, error) {

	if err := domain.ValidateContact(ap); err != nil {
		return domain.TransitionNone, err
	}

	service, err := tx.GetService(ctx, ap.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransitionNone, httperr.ErrBusiness("invalid_service")
		}
		return domain.TransitionNone, err
	}

	var previous *bool
	if ap.ID != 0 {
		prev, err := tx.GetAppointment(ctx, ap.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.TransitionNone, httperr.ErrBusiness("appointment_not_found")
			}
			return domain.TransitionNone, err
		}
		wasConfirmed := prev.Confirmed
		previous = &wasConfirmed
		ap.CreatedAt = prev.CreatedAt
	}

	if !opts.ExplicitEnd {
		ap.EndTime = time.Time{}
	}
	domain.DeriveEndTime(ap, service.DurationMin)

	if !ap.EndTime.After(ap.StartTime) {
		return domain.TransitionNone, httperr.ErrBusiness("invalid_time_range")
	}

	if err := tx.LockService(ctx, service.ID); err != nil {
		return domain.TransitionNone, err
	}

	if !opts.SkipConflictCheck {
		if err := tx.AssertNoTimeConflict(
			ctx,
			service.ID,
			ap.StartTime,
			ap.EndTime,
			ap.ID,
		); err != nil {
			return domain.TransitionNone, err
		}
	}

	if ap.ID == 0 {
		err = tx.CreateAppointment(ctx, ap)
	} else {
		err = tx.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			return domain.TransitionNone, httperr.ErrBusiness("time_conflict")
		}
		return domain.TransitionNone, err
	}

	transition, err := w.sync.Apply(ctx, tx, ap, service, previous)
	if err != nil {
		return domain.TransitionNone, err
	}

	ap.Service = *service
	return transition, nil
}

func transitionAction(t domain.Transition, fallback string) string {
	switch t {
	case domain.TransitionSync:
		return "appointment_confirmed"
	case domain.TransitionRemove:
		return "appointment_unconfirmed"
	}
	return fallback
}
