package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-de-belleza/internal/config"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/testfixtures"
	ucAppointment "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Code
}

// --------------------------------------------------
// appointments
// --------------------------------------------------

func newAppointmentRouter(repo *testfixtures.MemoryRepository) *gin.Engine {
	sync := ucAppointment.NewSyncBookingRecord()
	h := NewAppointmentHandler(
		nil,
		repo,
		ucAppointment.NewSaveAppointment(repo, sync, nil),
		ucAppointment.NewDeleteAppointment(repo, nil),
		ucAppointment.NewSetConfirmation(repo, sync, nil),
		time.UTC,
	)

	r := gin.New()
	r.POST("/admin/appointments", h.Create)
	r.POST("/admin/appointments/actions/:action", h.Action)
	r.GET("/admin/appointments/:id", h.Get)
	r.PUT("/admin/appointments/:id", h.Update)
	r.DELETE("/admin/appointments/:id", h.Delete)
	return r
}

func TestAdminAppointmentLifecycle(t *testing.T) {
	t.Parallel()

	repo := testfixtures.NewMemoryRepository()
	svc := repo.AddService(models.Service{Name: "Corte de Pelo", DurationMin: 60})
	r := newAppointmentRouter(repo)

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	w := doJSON(r, http.MethodPost, "/admin/appointments", gin.H{
		"service_id":   svc.ID,
		"client_name":  "Ana",
		"client_phone": "1155550000",
		"start_time":   start,
		"confirmed":    true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body=%s", w.Code, w.Body.String())
	}

	var created models.Appointment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.EndTime.Equal(start.Add(time.Hour)) {
		t.Fatalf("end = %v", created.EndTime)
	}
	if len(repo.BookingRecords()) != 1 {
		t.Fatalf("confirmed appointment must have a booking record")
	}

	t.Run("overlap is a conflict", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/admin/appointments", gin.H{
			"service_id":   svc.ID,
			"client_name":  "Bea",
			"client_phone": "1",
			"start_time":   start.Add(30 * time.Minute),
		})
		if w.Code != http.StatusConflict || errorCode(t, w) != "time_conflict" {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("phone is required", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/admin/appointments", gin.H{
			"service_id":  svc.ID,
			"client_name": "Bea",
			"start_time":  start.Add(3 * time.Hour),
		})
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "phone_required" {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("update unknown", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/admin/appointments/999", gin.H{
			"service_id":   svc.ID,
			"client_name":  "Bea",
			"client_phone": "1",
			"start_time":   start.Add(3 * time.Hour),
		})
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("get", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/admin/appointments/"+idString(created.ID), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if w := doJSON(r, http.MethodGet, "/admin/appointments/abc", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("invalid id: status = %d", w.Code)
		}
	})

	t.Run("delete removes booking record", func(t *testing.T) {
		w := doJSON(r, http.MethodDelete, "/admin/appointments/"+idString(created.ID), nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}
		if len(repo.BookingRecords()) != 0 {
			t.Fatalf("booking record left behind")
		}

		w = doJSON(r, http.MethodDelete, "/admin/appointments/"+idString(created.ID), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("second delete: status = %d", w.Code)
		}
	})
}

func TestAdminBulkActions(t *testing.T) {
	t.Parallel()

	repo := testfixtures.NewMemoryRepository()
	svc := repo.AddService(models.Service{Name: "Uñas", DurationMin: 45})
	r := newAppointmentRouter(repo)

	var ids []uint
	for _, hour := range []int{9, 11} {
		w := doJSON(r, http.MethodPost, "/admin/appointments", gin.H{
			"service_id":   svc.ID,
			"client_name":  "Cliente",
			"client_phone": "1",
			"start_time":   time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC),
		})
		var ap models.Appointment
		_ = json.Unmarshal(w.Body.Bytes(), &ap)
		ids = append(ids, ap.ID)
	}

	w := doJSON(r, http.MethodPost, "/admin/appointments/actions/confirm", gin.H{"ids": ids})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d body=%s", w.Code, w.Body.String())
	}

	var res struct {
		Updated int `json:"updated"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Updated != 2 || len(repo.BookingRecords()) != 2 {
		t.Fatalf("updated = %d, records = %d", res.Updated, len(repo.BookingRecords()))
	}

	w = doJSON(r, http.MethodPost, "/admin/appointments/actions/cancel", gin.H{"ids": ids[:1]})
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Updated != 1 || len(repo.BookingRecords()) != 1 {
		t.Fatalf("updated = %d, records = %d", res.Updated, len(repo.BookingRecords()))
	}

	if w := doJSON(r, http.MethodPost, "/admin/appointments/actions/archive", gin.H{"ids": ids}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown action: status = %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/admin/appointments/actions/confirm", gin.H{"ids": []uint{}}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty ids: status = %d", w.Code)
	}
}

// --------------------------------------------------
// login
// --------------------------------------------------

type staffByEmail map[string]models.StaffUser

func (s staffByEmail) FindByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	u, ok := s[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3creta"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	cfg := &config.Config{JWTSecret: "secret"}
	h := NewAuthHandler(staffByEmail{
		"admin@salon.test": {ID: 4, Name: "Admin", Email: "admin@salon.test", PasswordHash: string(hash), Role: "admin"},
	}, cfg, nil)

	r := gin.New()
	r.POST("/admin/login", h.Login)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/admin/login", gin.H{"email": "Admin@Salon.test", "password": "s3creta"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
		}

		var body struct {
			Token string `json:"token"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)

		token, err := jwt.Parse(body.Token, func(*jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("invalid token: %v", err)
		}
		if sub := token.Claims.(jwt.MapClaims)["sub"]; sub != float64(4) {
			t.Fatalf("sub = %v", sub)
		}
	})

	for name, body := range map[string]gin.H{
		"wrong password": {"email": "admin@salon.test", "password": "nope"},
		"unknown user":   {"email": "otra@salon.test", "password": "s3creta"},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/admin/login", body)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d", w.Code)
			}
		})
	}
}
