package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

// ContactStore grava as mensagens do formulário de contato.
type ContactStore interface {
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// ======================================================
// HANDLER
// ======================================================

type PublicWebHandler struct {
	catalog  serviceCatalog
	book     *ucAppointment.BookAppointment
	contacts ContactStore
	audit    *audit.Dispatcher
	slots    domain.SlotConfig
	log      *slog.Logger
}

func NewPublicWebHandler(
	repo domain.Repository,
	catalogCache *cache.CatalogCache,
	book *ucAppointment.BookAppointment,
	contacts ContactStore,
	audit *audit.Dispatcher,
	slots domain.SlotConfig,
	logger *slog.Logger,
) *PublicWebHandler {
	return &PublicWebHandler{
		catalog:  serviceCatalog{repo: repo, cache: catalogCache, log: logger},
		book:     book,
		contacts: contacts,
		audit:    audit,
		slots:    slots,
		log:      logger,
	}
}

// ======================================================
// FORMS
// ======================================================

type ContactForm struct {
	Name    string `form:"nombre" binding:"notblank,max=150"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"mensaje" binding:"notblank"`
}

// ======================================================
// PAGES
// ======================================================

func (h *PublicWebHandler) page(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flash"] = popFlash(c)
	c.HTML(http.StatusOK, name, data)
}

func (h *PublicWebHandler) Index(c *gin.Context) {
	h.page(c, "index.html", "", nil)
}

func (h *PublicWebHandler) Services(c *gin.Context) {
	services, err := h.catalog.list(c.Request.Context())
	if err != nil {
		middleware.RequestLog(c, h.log).Error("list services failed", "error", err)
		c.String(http.StatusInternalServerError, "Error al cargar los servicios.")
		return
	}

	h.page(c, "servicios.html", "Servicios", gin.H{"Services": services})
}

func (h *PublicWebHandler) BookingSuccess(c *gin.Context) {
	h.page(c, "reserva_exitosa.html", "Reserva exitosa", nil)
}

// --------------------------------------------------
// /reservar/
// --------------------------------------------------

func (h *PublicWebHandler) BookingForm(c *gin.Context) {
	services, err := h.catalog.list(c.Request.Context())
	if err != nil {
		middleware.RequestLog(c, h.log).Error("list services failed", "error", err)
		c.String(http.StatusInternalServerError, "Error al cargar los servicios.")
		return
	}

	// ?servicio=<id> preseleciona; valor inválido é ignorado
	var selected uint
	if v, err := strconv.ParseUint(strings.TrimSpace(c.Query("servicio")), 10, 64); err == nil {
		selected = uint(v)
	}

	h.page(c, "reservar.html", "Reservar turno", gin.H{
		"Services":          services,
		"Hours":             domain.EnumerateSlots(h.slots),
		"SelectedServiceID": selected,
	})
}

func (h *PublicWebHandler) Book(c *gin.Context) {
	_, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ServiceID:   c.PostForm("servicio"),
		Date:        c.PostForm("fecha"),
		Time:        c.PostForm("hora"),
		ClientName:  c.PostForm("nombre_cliente"),
		ClientPhone: c.PostForm("cliente_telefono"),
		ClientEmail: c.PostForm("cliente_email"),
	})
	if err != nil {
		msg := messageFor(err, msgBookingFailed)
		if msg == msgBookingFailed {
			middleware.RequestLog(c, h.log).Error("booking failed", "error", err)
		}
		setFlash(c, "error", msg)
		c.Redirect(http.StatusFound, "/reservar/")
		return
	}

	setFlash(c, "success", msgBookingCreated)
	c.Redirect(http.StatusFound, "/reserva-exitosa/")
}

// --------------------------------------------------
// /contacto/
// --------------------------------------------------

func (h *PublicWebHandler) ContactForm(c *gin.Context) {
	h.page(c, "contacto.html", "Contacto", nil)
}

func (h *PublicWebHandler) Contact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, "error", msgContactFailed)
		c.Redirect(http.StatusFound, "/contacto/")
		return
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: strings.TrimSpace(form.Message),
	}

	if err := h.contacts.CreateContactMessage(c.Request.Context(), &msg); err != nil {
		middleware.RequestLog(c, h.log).Error("save contact message failed", "error", err)
		setFlash(c, "error", msgContactFailed)
		c.Redirect(http.StatusFound, "/contacto/")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   "contact_message_received",
		Entity:   "contact_message",
		EntityID: &msg.ID,
	})

	setFlash(c, "success", msgContactReceived)
	c.Redirect(http.StatusFound, "/contacto/")
}

// FormRateLimited responde aos POST bloqueados pelo limitador.
func FormRateLimited(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		setFlash(c, "error", msgTooManyRequests)
		c.Redirect(http.StatusFound, redirectTo)
	}
}
