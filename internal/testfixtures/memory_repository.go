// Package testfixtures provides in-memory collaborators for use-case and
// handler tests.
package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// MemoryRepository implements the appointment repository over maps. Transactions
// are serialized and roll back every change when the callback fails, which
// mirrors the advisory-lock behaviour of the PostgreSQL implementation.
type MemoryRepository struct {
	txMu sync.Mutex
	mu   sync.Mutex

	state memoryState

	// LockedServices records every LockService call in order.
	LockedServices []uint
	// FailCreateAppointment, when set, is returned by CreateAppointment.
	FailCreateAppointment error
}

type memoryState struct {
	nextID       uint
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	records      map[uint]models.BookingRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		state: memoryState{
			nextID:       1,
			services:     map[uint]models.Service{},
			appointments: map[uint]models.Appointment{},
			records:      map[uint]models.BookingRecord{},
		},
	}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		nextID:       s.nextID,
		services:     make(map[uint]models.Service, len(s.services)),
		appointments: make(map[uint]models.Appointment, len(s.appointments)),
		records:      make(map[uint]models.BookingRecord, len(s.records)),
	}
	for k, v := range s.services {
		out.services[k] = v
	}
	for k, v := range s.appointments {
		out.appointments[k] = v
	}
	for k, v := range s.records {
		out.records[k] = v
	}
	return out
}

func (r *MemoryRepository) id() uint {
	id := r.state.nextID
	r.state.nextID++
	return id
}

// --------------------------------------------------
// Seeding / inspection helpers
// --------------------------------------------------

func (r *MemoryRepository) AddService(svc models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = r.id()
	}
	r.state.services[svc.ID] = svc
	return svc
}

func (r *MemoryRepository) AddBookingRecord(rec models.BookingRecord) models.BookingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = r.id()
	}
	r.state.records[rec.ID] = rec
	return rec
}

func (r *MemoryRepository) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.state.appointments))
	for _, ap := range r.state.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryRepository) BookingRecords() []models.BookingRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.BookingRecord, 0, len(r.state.records))
	for _, rec := range r.state.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryRepository) Services() []models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Service, 0, len(r.state.services))
	for _, svc := range r.state.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *MemoryRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := r.state.clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.state = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemoryRepository) LockService(ctx context.Context, serviceID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LockedServices = append(r.LockedServices, serviceID)
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *MemoryRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.state.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &svc, nil
}

func (r *MemoryRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	out := r.Services()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) FindServiceByName(ctx context.Context, name string) (*models.Service, error) {
	want := domain.NormalizeName(name)
	for _, svc := range r.Services() {
		if domain.NormalizeName(svc.Name) == want {
			svc := svc
			return &svc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) CreateService(ctx context.Context, svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc.ID = r.id()
	r.state.services[svc.ID] = *svc
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.state.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	ap.Service = r.state.services[ap.ServiceID]
	return &ap, nil
}

func (r *MemoryRepository) uniqueTaken(ap *models.Appointment) bool {
	for _, other := range r.state.appointments {
		if other.ID != ap.ID && other.ServiceID == ap.ServiceID && other.StartTime.Equal(ap.StartTime) {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateAppointment != nil {
		return r.FailCreateAppointment
	}
	if r.uniqueTaken(ap) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointment_service_start"}
	}
	ap.ID = r.id()
	stored := *ap
	stored.Service = models.Service{}
	r.state.appointments[ap.ID] = stored
	return nil
}

func (r *MemoryRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if r.uniqueTaken(ap) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointment_service_start"}
	}
	stored := *ap
	stored.Service = models.Service{}
	r.state.appointments[ap.ID] = stored
	return nil
}

// DeleteAppointment applies the storage rule: linked booking records keep
// existing with a null appointment reference.
func (r *MemoryRepository) DeleteAppointment(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.state.appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.state.appointments, id)
	for k, rec := range r.state.records {
		if rec.AppointmentID != nil && *rec.AppointmentID == id {
			rec.AppointmentID = nil
			r.state.records[k] = rec
		}
	}
	return nil
}

func (r *MemoryRepository) AssertNoTimeConflict(
	ctx context.Context,
	serviceID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {
	apps, _ := r.ListAppointmentsForService(ctx, serviceID, start, end)
	if domain.FindConflict(apps, domain.Interval{Start: start, End: end}, excludeID) != nil {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

func (r *MemoryRepository) ListAppointmentsForService(
	ctx context.Context,
	serviceID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	window := domain.Interval{Start: start, End: end}
	var out []models.Appointment
	for _, ap := range r.Appointments() {
		if ap.ServiceID == serviceID && domain.Overlaps(domain.IntervalOf(ap), window) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// --------------------------------------------------
// Booking record
// --------------------------------------------------

func (r *MemoryRepository) GetBookingRecordByAppointment(ctx context.Context, appointmentID uint) (*models.BookingRecord, error) {
	for _, rec := range r.BookingRecords() {
		if rec.AppointmentID != nil && *rec.AppointmentID == appointmentID {
			rec := rec
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) SaveBookingRecord(ctx context.Context, rec *models.BookingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.AppointmentID != nil {
		for _, other := range r.state.records {
			if other.ID != rec.ID && other.AppointmentID != nil && *other.AppointmentID == *rec.AppointmentID {
				return &pgconn.PgError{Code: "23505"}
			}
		}
	}
	if rec.ID == 0 {
		rec.ID = r.id()
	}
	stored := *rec
	stored.Service = nil
	stored.Appointment = nil
	r.state.records[rec.ID] = stored
	return nil
}

func (r *MemoryRepository) DeleteBookingRecordByAppointment(ctx context.Context, appointmentID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, rec := range r.state.records {
		if rec.AppointmentID != nil && *rec.AppointmentID == appointmentID {
			delete(r.state.records, k)
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*MemoryRepository)(nil)
