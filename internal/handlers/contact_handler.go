package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httpresp"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type ContactHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewContactHandler(db *gorm.DB, audit *audit.Dispatcher) *ContactHandler {
	return &ContactHandler{db: db, audit: audit}
}

func (h *ContactHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.ContactMessage{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "contact_count_failed", "Error al contar mensajes.")
		return
	}

	var msgs []models.ContactMessage
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {

		httperr.Internal(c, "contact_list_failed", "Error al listar mensajes.")
		return
	}

	httpresp.Page(c, page, limit, total, msgs)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var msg models.ContactMessage
	if err := h.db.WithContext(c.Request.Context()).First(&msg, id).Error; err != nil {
		if isRecordNotFound(err) {
			httperr.NotFound(c, "contact_message_not_found", "Mensaje no encontrado.")
			return
		}
		httperr.Internal(c, "contact_get_failed", "Error al obtener el mensaje.")
		return
	}

	httpresp.OK(c, msg)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		httperr.Internal(c, "contact_delete_failed", "Error al eliminar el mensaje.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "contact_message_not_found", "Mensaje no encontrado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   "contact_message_deleted",
		Entity:   "contact_message",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}
