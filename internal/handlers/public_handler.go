package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

// PublicHandler expõe os endpoints JSON públicos.
type PublicHandler struct {
	availability *ucAppointment.GetAvailability
	loc          *time.Location
}

func NewPublicHandler(
	availability *ucAppointment.GetAvailability,
	loc *time.Location,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		loc:          loc,
	}
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Availability: GET /api/servicios/:id/disponibilidad?fecha=YYYY-MM-DD
func (h *PublicHandler) Availability(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service", "Servicio no válido.")
		return
	}

	fecha := c.Query("fecha")
	if fecha == "" {
		httperr.BadRequest(c, "missing_fields", "El parámetro fecha es obligatorio.")
		return
	}

	day, err := timezone.ParseDate(fecha, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Formato de fecha no válido.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceID: uint(serviceID),
		Date:      day,
	})
	if err != nil {
		if httperr.IsBusiness(err, "invalid_service") {
			httperr.NotFound(c, "invalid_service", "Servicio no válido.")
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_id": serviceID,
		"date":       fecha,
		"slots":      slots,
	})
}
