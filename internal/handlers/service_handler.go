package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/media"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.CatalogCache
	images  media.Store
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewServiceHandler(
	db *gorm.DB,
	catalog *cache.CatalogCache,
	images media.Store,
	audit *audit.Dispatcher,
	logger *slog.Logger,
) *ServiceHandler {
	return &ServiceHandler{
		db:      db,
		catalog: catalog,
		images:  images,
		audit:   audit,
		log:     logger,
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"notblank,max=100"`
	Description string          `json:"description"`
	DurationMin int             `json:"duration_min" binding:"required,min=1,max=600"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name,omitempty" binding:"omitempty,notblank,max=100"`
	Description *string          `json:"description,omitempty"`
	DurationMin *int             `json:"duration_min,omitempty" binding:"omitempty,min=1,max=600"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Service{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		h.notFoundOr(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
		return
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price.Round(2),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	h.changed(c, "service_created", svc.ID)
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		h.notFoundOr(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
			return
		}
		svc.Price = req.Price.Round(2)
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	h.changed(c, "service_updated", svc.ID)
	c.JSON(http.StatusOK, svc)
}

// Delete remove o serviço; o banco remove os turnos em cascata e solta os
// registros de reserva (service_id nulo).
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Error al eliminar el servicio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	h.changed(c, "service_deleted", id)
	c.Status(http.StatusNoContent)
}

// UploadImage: multipart "image" -> webp -> S3.
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "La carga de imágenes no está configurada.")
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var svc models.Service
	if err := h.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		h.notFoundOr(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "Falta el archivo de imagen.")
		return
	}
	if fh.Size > media.MaxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "La imagen supera los 5 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "image_required", "Falta el archivo de imagen.")
		return
	}
	defer f.Close()

	data, err := media.ProcessServiceImage(f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Formato de imagen no soportado.")
		return
	}

	url, err := h.images.Upload(ctx, media.ServiceImageKey(time.Now()), "image/webp", data)
	if err != nil {
		middleware.RequestLog(c, h.log).Error("image upload failed", "service_id", id, "error", err)
		httperr.Internal(c, "upload_failed", "Error al subir la imagen.")
		return
	}

	svc.ImageURL = url
	if err := h.db.WithContext(ctx).Model(&svc).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	h.changed(c, "service_image_uploaded", svc.ID)
	c.JSON(http.StatusOK, svc)
}

// --------- helpers ---------

func (h *ServiceHandler) changed(c *gin.Context, action string, id uint) {
	if err := h.catalog.Invalidate(c.Request.Context()); err != nil {
		middleware.RequestLog(c, h.log).Warn("catalog cache invalidate failed", "error", err)
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   action,
		Entity:   "service",
		EntityID: &id,
	})
}

func (h *ServiceHandler) notFoundOr(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}
	httperr.Internal(c, "failed_to_get_service", "Error al obtener el servicio.")
}
