package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/audit"
	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	"github.com/BruksfildServices01/salon-de-belleza/internal/config"
	"github.com/BruksfildServices01/salon-de-belleza/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-de-belleza/internal/infra/repository"
	"github.com/BruksfildServices01/salon-de-belleza/internal/media"
	"github.com/BruksfildServices01/salon-de-belleza/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/web"
)

// Infra agrupa os recursos criados no main (e fechados por ele).
type Infra struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Images   media.Store
	Audit    *audit.Dispatcher
	Location *time.Location
	Logger   *slog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, infra Infra) error {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(infra.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(infra.DB)
	contactRepo := infraRepo.NewContactGormRepository(infra.DB)
	staffRepo := infraRepo.NewStaffGormRepository(infra.DB)

	catalogCache := cache.NewCatalogCache(infra.Redis, cfg.CatalogCacheTTL)
	formLimiter := cache.NewFixedWindowLimiter(infra.Redis, cfg.FormRateLimitPerMin, time.Minute)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	syncBookingRecord := ucAppointment.NewSyncBookingRecord().WithCatalog(catalogCache)

	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		syncBookingRecord,
		infra.Audit,
		cfg.Slots,
		infra.Location,
	)

	saveAppointmentUC := ucAppointment.NewSaveAppointment(
		appointmentRepo,
		syncBookingRecord,
		infra.Audit,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		infra.Audit,
	)

	setConfirmationUC := ucAppointment.NewSetConfirmation(
		appointmentRepo,
		syncBookingRecord,
		infra.Audit,
	)

	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		cfg.Slots,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicWebHandler := handlers.NewPublicWebHandler(
		appointmentRepo,
		catalogCache,
		bookAppointmentUC,
		contactRepo,
		infra.Audit,
		cfg.Slots,
		infra.Logger,
	)
	publicHandler := handlers.NewPublicHandler(getAvailabilityUC, infra.Location)

	authHandler := handlers.NewAuthHandler(staffRepo, cfg, infra.Audit)
	serviceHandler := handlers.NewServiceHandler(infra.DB, catalogCache, infra.Images, infra.Audit, infra.Logger)
	appointmentHandler := handlers.NewAppointmentHandler(
		infra.DB,
		appointmentRepo,
		saveAppointmentUC,
		deleteAppointmentUC,
		setConfirmationUC,
		infra.Location,
	)
	bookingRecordHandler := handlers.NewBookingRecordHandler(infra.DB, infra.Audit, infra.Location)
	contactHandler := handlers.NewContactHandler(infra.DB, infra.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(infra.DB, infra.Location)

	// ======================================================
	// 🌍 ROTAS WEB (HTML)
	// ======================================================
	r.GET("/", publicWebHandler.Index)
	r.GET("/servicios/", publicWebHandler.Services)
	r.GET("/reserva-exitosa/", publicWebHandler.BookingSuccess)

	r.GET("/reservar/", publicWebHandler.BookingForm)
	r.POST("/reservar/",
		middleware.RateLimit(formLimiter, "reservar", infra.Logger, handlers.FormRateLimited("/reservar/")),
		publicWebHandler.Book,
	)

	r.GET("/contacto/", publicWebHandler.ContactForm)
	r.POST("/contacto/",
		middleware.RateLimit(formLimiter, "contacto", infra.Logger, handlers.FormRateLimited("/contacto/")),
		publicWebHandler.Contact,
	)

	// ======================================================
	// 🌐 API PÚBLICA (JSON)
	// ======================================================
	r.GET("/health", publicHandler.Health)
	r.GET("/api/servicios/:id/disponibilidad", publicHandler.Availability)

	// ======================================================
	// 🔐 ADMIN
	// ======================================================
	r.POST("/admin/login", authHandler.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	{
		admin.GET("/services", serviceHandler.List)
		admin.POST("/services", serviceHandler.Create)
		admin.GET("/services/:id", serviceHandler.Get)
		admin.PUT("/services/:id", serviceHandler.Update)
		admin.DELETE("/services/:id", serviceHandler.Delete)
		admin.POST("/services/:id/image", serviceHandler.UploadImage)

		admin.GET("/appointments", appointmentHandler.List)
		admin.POST("/appointments", appointmentHandler.Create)
		admin.POST("/appointments/actions/:action", appointmentHandler.Action)
		admin.GET("/appointments/:id", appointmentHandler.Get)
		admin.PUT("/appointments/:id", appointmentHandler.Update)
		admin.DELETE("/appointments/:id", appointmentHandler.Delete)

		admin.GET("/booking-records", bookingRecordHandler.List)
		admin.GET("/booking-records/:id", bookingRecordHandler.Get)
		admin.DELETE("/booking-records/:id", bookingRecordHandler.Delete)

		admin.GET("/contact-messages", contactHandler.List)
		admin.GET("/contact-messages/:id", contactHandler.Get)
		admin.DELETE("/contact-messages/:id", contactHandler.Delete)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}

	return nil
}
