package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// Interval semiaberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func IntervalOf(ap models.Appointment) Interval {
	return Interval{Start: ap.StartTime, End: ap.EndTime}
}

func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FindConflict devolve o primeiro turno que se sobrepõe ao candidato,
// ignorando excludeID (o próprio turno numa edição).
func FindConflict(
	existing []models.Appointment,
	candidate Interval,
	excludeID uint,
) *models.Appointment {
	for i := range existing {
		if excludeID != 0 && existing[i].ID == excludeID {
			continue
		}
		if Overlaps(IntervalOf(existing[i]), candidate) {
			return &existing[i]
		}
	}
	return nil
}
