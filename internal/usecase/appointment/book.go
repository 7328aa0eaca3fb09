package appointment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
)

const defaultClientName = "Cliente"

// ======================================================
// INPUT
// ======================================================

// BookAppointmentInput chega do formulário público, campos crus.
type BookAppointmentInput struct {
	ServiceID   string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	ClientName  string
	ClientPhone string
	ClientEmail string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	slots domain.SlotConfig
	loc   *time.Location
	w     writer
}

func NewBookAppointment(
	repo domain.Repository,
	sync *SyncBookingRecord,
	audit *audit.Dispatcher,
	slots domain.SlotConfig,
	loc *time.Location,
) *BookAppointment {
	if loc == nil {
		loc = time.UTC
	}
	return &BookAppointment{
		repo:  repo,
		audit: audit,
		slots: slots,
		loc:   loc,
		w:     writer{sync: sync},
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	serviceID := strings.TrimSpace(in.ServiceID)
	date := strings.TrimSpace(in.Date)
	hour := strings.TrimSpace(in.Time)

	if serviceID == "" || date == "" || hour == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	id, err := strconv.ParseUint(serviceID, 10, 64)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	service, err := uc.repo.GetService(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_service")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		timezone.DateLayout+" 15:04",
		date+" "+hour,
		uc.loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if !domain.WithinOpeningHours(uc.slots, start) {
		return nil, httperr.ErrBusiness("outside_opening_hours")
	}

	// --------------------------------------------------
	// 4️⃣ Telefone obrigatório
	// --------------------------------------------------
	phone := strings.TrimSpace(in.ClientPhone)
	if phone == "" {
		return nil, httperr.ErrBusiness("phone_required")
	}

	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		name = defaultClientName
	}

	ap := &models.Appointment{
		ServiceID:   service.ID,
		ClientName:  name,
		ClientPhone: phone,
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		StartTime:   start,
		EndTime:     start.Add(uc.slots.Window(service)),
		Confirmed:   false,
	}

	// --------------------------------------------------
	// 5️⃣ Conflito + gravação (transação com lock do serviço)
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		_, err := uc.w.persist(ctx, tx, ap, writeOptions{ExplicitEnd: true})
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_requested",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"service_id": ap.ServiceID,
			"start":      ap.StartTime,
			"end":        ap.EndTime,
		},
	})

	return ap, nil
}
