package appointment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var spanishLower = cases.Lower(language.Spanish)

// códigos do antigo campo textual de Reserva
var legacyServiceLabels = map[string]string{
	"Unas":       "Uñas",
	"Corte_Pelo": "Corte de Pelo",
	"Tintura":    "Tintura",
}

// NormalizeName deixa o nome comparável: NFC, minúsculas, sem espaços nas pontas.
func NormalizeName(name string) string {
	return spanishLower.String(norm.NFC.String(strings.TrimSpace(name)))
}

// ReportingLabel é o nome de serviço usado no registro de reserva quando
// não existe serviço com o mesmo nome.
func ReportingLabel(name string) string {
	n := NormalizeName(name)

	switch {
	case strings.Contains(n, "uña"):
		return "Uñas"
	case strings.Contains(n, "tint"):
		return "Tintura"
	case strings.Contains(n, "corte"):
		return "Corte de Pelo"
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return "Servicio"
}

func LegacyServiceLabel(code string) string {
	if label, ok := legacyServiceLabels[code]; ok {
		return label
	}
	return code
}
