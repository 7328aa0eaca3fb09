package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httpresp"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
)

// BookingRecordHandler expõe os registros de reserva (somente leitura e remoção;
// a escrita acontece pela sincronização dos turnos).
type BookingRecordHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewBookingRecordHandler(db *gorm.DB, audit *audit.Dispatcher, loc *time.Location) *BookingRecordHandler {
	return &BookingRecordHandler{db: db, audit: audit, loc: loc}
}

func (h *BookingRecordHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.BookingRecord{})

	if serviceID, ok := queryUint(c, "service_id"); ok {
		q = q.Where("service_id = ?", serviceID)
	}

	if from := c.Query("from"); from != "" {
		if d, err := timezone.ParseDate(from, h.loc); err == nil {
			q = q.Where("scheduled_at >= ?", d)
		}
	}

	if to := c.Query("to"); to != "" {
		if d, err := timezone.ParseDate(to, h.loc); err == nil {
			q = q.Where("scheduled_at < ?", d.AddDate(0, 0, 1))
		}
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(client_name) LIKE ?", "%"+query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "booking_record_count_failed", "Error al contar reservas.")
		return
	}

	var records []models.BookingRecord
	if err := q.
		Preload("Service").
		Order("scheduled_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {

		httperr.Internal(c, "booking_record_list_failed", "Error al listar reservas.")
		return
	}

	httpresp.Page(c, page, limit, total, records)
}

func (h *BookingRecordHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var rec models.BookingRecord
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Service").
		First(&rec, id).Error; err != nil {

		if isRecordNotFound(err) {
			httperr.NotFound(c, "booking_record_not_found", "Reserva no encontrada.")
			return
		}
		httperr.Internal(c, "booking_record_get_failed", "Error al obtener la reserva.")
		return
	}

	httpresp.OK(c, rec)
}

func (h *BookingRecordHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.BookingRecord{}, id)
	if res.Error != nil {
		httperr.Internal(c, "booking_record_delete_failed", "Error al eliminar la reserva.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "booking_record_not_found", "Reserva no encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "booking_record_deleted",
		Entity:   "booking_record",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
