package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/dto"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httpresp"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db      *gorm.DB
	repo    domain.Repository
	save    *ucAppointment.SaveAppointment
	del     *ucAppointment.DeleteAppointment
	confirm *ucAppointment.SetConfirmation
	loc     *time.Location
}

func NewAppointmentHandler(
	db *gorm.DB,
	repo domain.Repository,
	save *ucAppointment.SaveAppointment,
	del *ucAppointment.DeleteAppointment,
	confirm *ucAppointment.SetConfirmation,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:      db,
		repo:    repo,
		save:    save,
		del:     del,
		confirm: confirm,
		loc:     loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ServiceID   uint       `json:"service_id" binding:"required"`
	ClientName  string     `json:"client_name" binding:"notblank,max=100"`
	ClientPhone string     `json:"client_phone" binding:"max=20"`
	ClientEmail string     `json:"client_email" binding:"omitempty,email,max=254"`
	StartTime   time.Time  `json:"start_time" binding:"required"`
	EndTime     *time.Time `json:"end_time"`
	Confirmed   bool       `json:"confirmed"`
}

type BulkActionRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1,dive,min=1"`
}

func (r AppointmentRequest) input(id uint, actor *uint) ucAppointment.SaveAppointmentInput {
	return ucAppointment.SaveAppointmentInput{
		ID:          id,
		ServiceID:   r.ServiceID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Confirmed:   r.Confirmed,
		ActorID:     actor,
	}
}

// ======================================================
// LIST
// ======================================================

// List filtra por service_id, confirmed, fecha (dia no fuso do salão) e
// query (cliente ou nome do serviço).
func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Joins("JOIN services ON services.id = appointments.service_id")

	if serviceID, ok := queryUint(c, "service_id"); ok {
		q = q.Where("appointments.service_id = ?", serviceID)
	}

	switch c.Query("confirmed") {
	case "true", "1":
		q = q.Where("appointments.confirmed = ?", true)
	case "false", "0":
		q = q.Where("appointments.confirmed = ?", false)
	}

	if fecha := c.Query("fecha"); fecha != "" {
		day, err := timezone.ParseDate(fecha, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Formato de fecha no válido.")
			return
		}
		q = q.Where(
			"appointments.start_time >= ? AND appointments.start_time < ?",
			day, day.AddDate(0, 0, 1),
		)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(appointments.client_name) LIKE ? OR LOWER(appointments.client_phone) LIKE ? OR LOWER(appointments.client_email) LIKE ? OR LOWER(services.name) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "appointment_count_failed", "Error al contar turnos.")
		return
	}

	var apps []models.Appointment
	if err := q.
		Preload("Service").
		Order("appointments.start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error; err != nil {

		httperr.Internal(c, "appointment_list_failed", "Error al listar turnos.")
		return
	}

	httpresp.Page(c, page, limit, total, dto.AppointmentList(apps))
}

// ======================================================
// CRUD
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), id)
	if err != nil {
		if isRecordNotFound(err) {
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
			return
		}
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.save.Execute(c.Request.Context(), req.input(0, middleware.ActorID(c)))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.save.Execute(c.Request.Context(), req.input(id, middleware.ActorID(c)))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.del.Execute(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// BULK ACTIONS
// ======================================================

// Action: POST /admin/appointments/actions/:action (confirm | cancel).
func (h *AppointmentHandler) Action(c *gin.Context) {
	var confirmed bool
	switch c.Param("action") {
	case "confirm":
		confirmed = true
	case "cancel":
		confirmed = false
	default:
		httperr.NotFound(c, "unknown_action", "Acción desconocida.")
		return
	}

	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	n, err := h.confirm.Execute(c.Request.Context(), req.IDs, confirmed, middleware.ActorID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": n})
}
