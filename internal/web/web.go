package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var files embed.FS

// Templates carrega as páginas públicas. Cada arquivo define um template
// com o nome da página (ex.: "reservar.html").
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"price": func(d decimal.Decimal) string {
			return "$ " + d.StringFixed(2)
		},
		"year": func() int {
			return time.Now().Year()
		},
		"eqID": func(a uint, b uint) bool {
			return a == b
		},
	}).ParseFS(files, "templates/*.html")
}
