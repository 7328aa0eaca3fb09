package appointment

import "time"

// WithinOpeningHours informa se start cai dentro do expediente configurado,
// no fuso do próprio start. O fim do turno pode passar do fechamento, como
// acontece com a última franja de um serviço longo.
func WithinOpeningHours(cfg SlotConfig, start time.Time) bool {
	minute := start.Hour()*60 + start.Minute()
	return minute >= cfg.StartHour*60 && minute < cfg.EndHour*60
}
