package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
)

// mensagens mostradas ao cliente nas páginas públicas
const (
	msgBookingCreated  = "Reserva creada correctamente."
	msgBookingFailed   = "Ocurrió un error al procesar la reserva. Intenta nuevamente más tarde."
	msgContactReceived = "Gracias, hemos recibido tu mensaje. Te responderemos pronto."
	msgContactFailed   = "Ocurrió un error al enviar el mensaje. Intenta nuevamente más tarde."
	msgTooManyRequests = "Demasiadas solicitudes, intenta nuevamente en un minuto."
)

var businessMessages = map[string]string{
	"missing_fields":        "Por favor completa todos los campos.",
	"invalid_service":       "Servicio no válido.",
	"invalid_date_or_time":  "Formato de fecha/hora no válido.",
	"outside_opening_hours": "El horario elegido está fuera del horario de atención.",
	"phone_required":        "El campo Teléfono es obligatorio.",
	"time_conflict":         "Lo siento, ese horario se solapa con otra reserva. Elige otro horario.",
	"client_name_required":  "El nombre del cliente es obligatorio.",
	"invalid_time_range":    "La hora de fin debe ser posterior a la de inicio.",
	"appointment_not_found": "Turno no encontrado.",
}

var businessStatus = map[string]int{
	"time_conflict":         http.StatusConflict,
	"appointment_not_found": http.StatusNotFound,
}

// messageFor devolve a mensagem pública de um erro de negócio; erros
// inesperados viram a mensagem genérica.
func messageFor(err error, fallback string) string {
	if msg, ok := businessMessages[httperr.CodeOf(err)]; ok {
		return msg
	}
	return fallback
}

// writeError responde JSON para o painel.
func writeError(c *gin.Context, err error) {
	code := httperr.CodeOf(err)
	if code == "" {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Recurso no encontrado.")
			return
		}
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	status, ok := businessStatus[code]
	if !ok {
		status = http.StatusBadRequest
	}
	httperr.Write(c, status, code, messageFor(err, code))
}
