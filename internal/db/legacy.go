package db

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// ======================================================
// Migração de registros de reserva do esquema antigo
// ======================================================
//
// Bancos antigos guardavam o serviço da reserva como código textual
// (legacy_service) e não tinham vínculo com o turno. A migração converte o
// código em service_id e religa o registro ao turno com mesmo nome de
// cliente e mesmo início, somente quando existe exatamente um candidato.

func migrateLegacyBookingRecords(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		converted, err := convertLegacyServices(tx)
		if err != nil {
			return err
		}

		relinked, err := relinkBookingRecords(tx)
		if err != nil {
			return err
		}

		if converted > 0 || relinked > 0 {
			logger.Info("legacy booking records migrated",
				"services_converted", converted,
				"records_relinked", relinked,
			)
		}
		return nil
	})
}

func convertLegacyServices(tx *gorm.DB) (int, error) {
	var records []models.BookingRecord
	if err := tx.Where("legacy_service IS NOT NULL").Find(&records).Error; err != nil {
		return 0, err
	}

	serviceByCode := map[string]uint{}
	for _, rec := range records {
		code := *rec.LegacyService

		id, ok := serviceByCode[code]
		if !ok {
			svc, err := findOrCreateService(tx, domain.LegacyServiceLabel(code))
			if err != nil {
				return 0, err
			}
			id = svc.ID
			serviceByCode[code] = id
		}

		if err := tx.Model(&models.BookingRecord{}).
			Where("id = ?", rec.ID).
			Updates(map[string]any{
				"service_id":     id,
				"legacy_service": nil,
			}).Error; err != nil {
			return 0, err
		}
	}

	return len(records), nil
}

func findOrCreateService(tx *gorm.DB, name string) (*models.Service, error) {
	var svc models.Service
	err := tx.Where("LOWER(name) = LOWER(?)", name).Order("id ASC").First(&svc).Error
	if err == nil {
		return &svc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	svc = models.Service{Name: name, DurationMin: 30}
	if err := tx.Create(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func relinkBookingRecords(tx *gorm.DB) (int, error) {
	var records []models.BookingRecord
	if err := tx.Where("appointment_id IS NULL").Find(&records).Error; err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	var linkedIDs []uint
	if err := tx.Model(&models.BookingRecord{}).
		Where("appointment_id IS NOT NULL").
		Pluck("appointment_id", &linkedIDs).Error; err != nil {
		return 0, err
	}

	linked := make(map[uint]bool, len(linkedIDs))
	for _, id := range linkedIDs {
		linked[id] = true
	}

	relinked := 0
	for _, rec := range records {
		var matches []models.Appointment
		if err := tx.Select("id").
			Where("client_name = ? AND start_time = ?", rec.ClientName, rec.ScheduledAt).
			Find(&matches).Error; err != nil {
			return 0, err
		}

		apID, ok := relinkTarget(matches, linked)
		if !ok {
			continue
		}

		if err := tx.Model(&models.BookingRecord{}).
			Where("id = ?", rec.ID).
			Update("appointment_id", apID).Error; err != nil {
			return 0, err
		}
		linked[apID] = true
		relinked++
	}

	return relinked, nil
}

// relinkTarget só aceita um candidato único que ainda não tenha registro.
func relinkTarget(matches []models.Appointment, linked map[uint]bool) (uint, bool) {
	if len(matches) != 1 {
		return 0, false
	}
	id := matches[0].ID
	if linked[id] {
		return 0, false
	}
	return id, true
}
