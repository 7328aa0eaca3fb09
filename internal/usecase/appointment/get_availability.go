package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	slots domain.SlotConfig
}

func NewGetAvailability(repo domain.Repository, slots domain.SlotConfig) *GetAvailability {
	return &GetAvailability{repo: repo, slots: slots}
}

// Execute lista as franjas livres do serviço na data (in.Date já no fuso do salão).
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("invalid_service")
		}
		return nil, err
	}

	starts := domain.SlotStarts(uc.slots, in.Date)
	if len(starts) == 0 {
		return []domain.TimeSlot{}, nil
	}

	window := uc.slots.Window(service)

	appointments, err := uc.repo.ListAppointmentsForService(
		ctx,
		service.ID,
		starts[0],
		starts[len(starts)-1].Add(window),
	)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, start := range starts {
		candidate := domain.Interval{Start: start, End: start.Add(window)}
		if domain.FindConflict(appointments, candidate, 0) != nil {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start: candidate.Start.Format("15:04"),
			End:   candidate.End.Format("15:04"),
		})
	}

	return slots, nil
}
