package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

// SlotConfig define a janela de atendimento oferecida no formulário.
// EndHour é exclusivo. FixedWindowMinutes > 0 faz todo turno do formulário
// durar esse tempo em vez da duração do serviço.
type SlotConfig struct {
	StartHour          int
	EndHour            int
	SlotMinutes        int
	FixedWindowMinutes int
}

func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		StartHour:   9,
		EndHour:     18,
		SlotMinutes: 60,
	}
}

func (c SlotConfig) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("start hour out of range: %d", c.StartHour)
	}
	if c.EndHour < 1 || c.EndHour > 24 {
		return fmt.Errorf("end hour out of range: %d", c.EndHour)
	}
	if c.EndHour <= c.StartHour {
		return fmt.Errorf("end hour %d must be after start hour %d", c.EndHour, c.StartHour)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("slot minutes must be positive: %d", c.SlotMinutes)
	}
	if c.FixedWindowMinutes < 0 {
		return fmt.Errorf("fixed window minutes must not be negative: %d", c.FixedWindowMinutes)
	}
	return nil
}

// EnumerateSlots gera os rótulos "HH:MM" de início de cada franja.
func EnumerateSlots(cfg SlotConfig) []string {
	if cfg.SlotMinutes <= 0 || cfg.EndHour <= cfg.StartHour {
		return []string{}
	}

	labels := make([]string, 0, (cfg.EndHour-cfg.StartHour)*60/cfg.SlotMinutes+1)
	for m := cfg.StartHour * 60; m < cfg.EndHour*60; m += cfg.SlotMinutes {
		labels = append(labels, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return labels
}

// Window devolve a duração usada para um turno do formulário público.
func (c SlotConfig) Window(service *models.Service) time.Duration {
	if c.FixedWindowMinutes > 0 {
		return time.Duration(c.FixedWindowMinutes) * time.Minute
	}
	return time.Duration(service.DurationMin) * time.Minute
}

// SlotStarts devolve o início de cada franja no dia informado, no fuso de day.
func SlotStarts(cfg SlotConfig, day time.Time) []time.Time {
	if cfg.SlotMinutes <= 0 || cfg.EndHour <= cfg.StartHour {
		return nil
	}

	loc := day.Location()
	starts := make([]time.Time, 0, (cfg.EndHour-cfg.StartHour)*60/cfg.SlotMinutes+1)
	for m := cfg.StartHour * 60; m < cfg.EndHour*60; m += cfg.SlotMinutes {
		starts = append(starts, time.Date(
			day.Year(), day.Month(), day.Day(),
			m/60, m%60, 0, 0,
			loc,
		))
	}
	return starts
}
