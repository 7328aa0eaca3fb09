package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
)

// SetConfirmation implementa as ações em massa "confirmar" e "cancelar".
type SetConfirmation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	w     writer
}

func NewSetConfirmation(
	repo domain.Repository,
	sync *SyncBookingRecord,
	audit *audit.Dispatcher,
) *SetConfirmation {
	return &SetConfirmation{
		repo:  repo,
		audit: audit,
		w:     writer{sync: sync},
	}
}

// Execute devolve quantos turnos mudaram de estado. Cada turno é gravado
// em sua própria transação; ids inexistentes são ignorados.
func (uc *SetConfirmation) Execute(
	ctx context.Context,
	ids []uint,
	confirmed bool,
	actorID *uint,
) (int, error) {

	updated := 0
	for _, id := range ids {
		changed := false

		err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
			ap, err := tx.GetAppointment(ctx, id)
			if err != nil {
				return err
			}

			if !domain.SetConfirmed(ap, confirmed) {
				return nil
			}

			if _, err := uc.w.persist(ctx, tx, ap, writeOptions{
				ExplicitEnd:       true,
				SkipConflictCheck: true,
			}); err != nil {
				return err
			}

			changed = true
			return nil
		})
		if err != nil {
			if isNotFound(err) || httperr.IsBusiness(err, "appointment_not_found") {
				continue
			}
			return updated, err
		}

		if !changed {
			continue
		}
		updated++

		apID := id
		action := "appointment_unconfirmed"
		if confirmed {
			action = "appointment_confirmed"
		}
		uc.audit.Dispatch(audit.Event{
			UserID:   actorID,
			Action:   action,
			Entity:   "appointment",
			EntityID: &apID,
		})
	}

	return updated, nil
}
