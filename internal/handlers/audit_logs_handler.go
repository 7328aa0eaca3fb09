package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httpresp"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if entityID, ok := queryUint(c, "entity_id"); ok {
		q = q.Where("entity_id = ?", entityID)
	}

	if from := c.Query("from"); from != "" {
		if d, err := timezone.ParseDate(from, h.loc); err == nil {
			q = q.Where("created_at >= ?", d)
		}
	}

	if to := c.Query("to"); to != "" {
		if d, err := timezone.ParseDate(to, h.loc); err == nil {
			q = q.Where("created_at < ?", d.AddDate(0, 0, 1))
		}
	}

	// --------------------------------------------------
	// Total + listagem
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Error al contar registros.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Error al listar registros.")
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
