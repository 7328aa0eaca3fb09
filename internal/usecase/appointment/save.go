package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SaveAppointmentInput struct {
	// zero cria um turno novo
	ID uint

	ServiceID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	StartTime time.Time
	// nil = início + duração do serviço
	EndTime *time.Time

	Confirmed bool

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// SaveAppointment é a escrita feita pelo painel (criação e edição).
type SaveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	w     writer
}

func NewSaveAppointment(
	repo domain.Repository,
	sync *SyncBookingRecord,
	audit *audit.Dispatcher,
) *SaveAppointment {
	return &SaveAppointment{
		repo:  repo,
		audit: audit,
		w:     writer{sync: sync},
	}
}

func (uc *SaveAppointment) Execute(
	ctx context.Context,
	in SaveAppointmentInput,
) (*models.Appointment, error) {

	ap := &models.Appointment{
		ID:          in.ID,
		ServiceID:   in.ServiceID,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		StartTime:   in.StartTime,
		Confirmed:   in.Confirmed,
	}
	if in.EndTime != nil {
		ap.EndTime = *in.EndTime
	}

	if ap.ClientName == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}
	if ap.StartTime.IsZero() {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	var transition domain.Transition
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		transition, err = uc.w.persist(ctx, tx, ap, writeOptions{
			ExplicitEnd: in.EndTime != nil,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	action := "appointment_updated"
	if in.ID == 0 {
		action = "appointment_created"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"status":     domain.StatusOf(ap.Confirmed),
			"booking":    transitionAction(transition, "none"),
			"service_id": ap.ServiceID,
		},
	})

	return ap, nil
}
