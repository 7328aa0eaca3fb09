package appointment_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	"github.com/BruksfildServices01/salon-de-belleza/internal/testfixtures"
	usecase "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

// renamedServiceRepo esconde um nome das buscas, como quando o serviço foi
// renomeado depois de carregado.
type renamedServiceRepo struct {
	domain.Repository
	hidden string
}

func (r renamedServiceRepo) FindServiceByName(ctx context.Context, name string) (*models.Service, error) {
	if name == r.hidden {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Repository.FindServiceByName(ctx, name)
}

func TestSyncInvalidatesCatalogWhenReportingServiceIsCreated(t *testing.T) {
	t.Parallel()

	repo := testfixtures.NewMemoryRepository()
	svc := repo.AddService(models.Service{Name: "Corte clásico", DurationMin: 60})
	ap := &models.Appointment{
		ID:         77,
		ServiceID:  svc.ID,
		ClientName: "Rosa",
		StartTime:  at(10, 0),
		Confirmed:  true,
	}

	inv := &countingInvalidator{}
	sync := usecase.NewSyncBookingRecord().WithCatalog(inv)

	_, err := sync.Apply(context.Background(), renamedServiceRepo{Repository: repo, hidden: svc.Name}, ap, &svc, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if inv.calls != 1 {
		t.Fatalf("invalidations = %d, want 1", inv.calls)
	}
	if len(repo.Services()) != 2 {
		t.Fatalf("services = %d, want the reporting service to be created", len(repo.Services()))
	}

	t.Run("existing reporting service does not invalidate", func(t *testing.T) {
		ap2 := *ap
		ap2.ID = 78
		ap2.StartTime = at(12, 0)

		if _, err := sync.Apply(context.Background(), renamedServiceRepo{Repository: repo, hidden: svc.Name}, &ap2, &svc, nil); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if inv.calls != 1 {
			t.Fatalf("invalidations = %d, want 1", inv.calls)
		}
	})
}
