package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// ===============================
// Domain Rules
// ===============================

// ValidateContact exige telefone (regra de negócio do salão).
func ValidateContact(ap *models.Appointment) error {
	if strings.TrimSpace(ap.ClientPhone) == "" {
		return httperr.ErrBusiness("phone_required")
	}
	return nil
}

// DeriveEndTime preenche o fim como início + duração quando não informado.
func DeriveEndTime(ap *models.Appointment, durationMin int) {
	if !ap.EndTime.IsZero() {
		return
	}
	ap.EndTime = ap.StartTime.Add(time.Duration(durationMin) * time.Minute)
}

// SetConfirmed altera a flag e informa se houve mudança.
func SetConfirmed(ap *models.Appointment, confirmed bool) bool {
	if ap.Confirmed == confirmed {
		return false
	}
	ap.Confirmed = confirmed
	return true
}
