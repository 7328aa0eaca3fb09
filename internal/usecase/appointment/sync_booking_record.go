package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// CatalogInvalidator descarta a lista pública de serviços em cache.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SyncBookingRecord mantém o BookingRecord de relatório alinhado ao turno.
// Roda depois de cada escrita do turno, dentro da mesma transação.
type SyncBookingRecord struct {
	catalog CatalogInvalidator
}

func NewSyncBookingRecord() *SyncBookingRecord {
	return &SyncBookingRecord{}
}

// WithCatalog faz a criação de um serviço de relatório invalidar o catálogo.
func (s *SyncBookingRecord) WithCatalog(c CatalogInvalidator) *SyncBookingRecord {
	s.catalog = c
	return s
}

func (s *SyncBookingRecord) Apply(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	service *models.Service,
	previous *bool,
) (domain.Transition, error) {

	transition := domain.NextTransition(previous, ap.Confirmed)

	switch transition {
	case domain.TransitionSync:
		return transition, s.upsert(ctx, repo, ap, service)
	case domain.TransitionRemove:
		_, err := repo.DeleteBookingRecordByAppointment(ctx, ap.ID)
		return transition, err
	}

	return transition, nil
}

func (s *SyncBookingRecord) upsert(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	service *models.Service,
) error {

	reporting, created, err := resolveReportingService(ctx, repo, service.Name)
	if err != nil {
		return err
	}
	if created && s.catalog != nil {
		// falha aqui só atrasa o catálogo até o TTL
		_ = s.catalog.Invalidate(ctx)
	}

	rec, err := repo.GetBookingRecordByAppointment(ctx, ap.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = &models.BookingRecord{}
	} else if err != nil {
		return err
	}

	apID := ap.ID
	svcID := reporting.ID

	rec.ServiceID = &svcID
	rec.AppointmentID = &apID
	rec.ClientName = ap.ClientName
	rec.ScheduledAt = ap.StartTime

	return repo.SaveBookingRecord(ctx, rec)
}

// resolveReportingService procura o serviço pelo nome (sem diferenciar
// maiúsculas); sem resultado, usa o rótulo normalizado e cria se preciso.
func resolveReportingService(
	ctx context.Context,
	repo domain.Repository,
	name string,
) (*models.Service, bool, error) {

	svc, err := repo.FindServiceByName(ctx, name)
	if err == nil {
		return svc, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	label := domain.ReportingLabel(name)

	svc, err = repo.FindServiceByName(ctx, label)
	if err == nil {
		return svc, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	svc = &models.Service{Name: label, DurationMin: 30}
	if err := repo.CreateService(ctx, svc); err != nil {
		return nil, false, err
	}
	return svc, true, nil
}
