package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type service struct {
	ID          uint
	Name        string
	Description string
	DurationMin int
	Price       decimal.Decimal
	ImageURL    string
}

func TestTemplatesRender(t *testing.T) {
	t.Parallel()

	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, name := range []string{"index.html", "servicios.html", "reservar.html", "reserva_exitosa.html", "contacto.html"} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %s not defined", name)
		}
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "reservar.html", map[string]any{
		"Title":             "Reservar",
		"Services":          []service{{ID: 1, Name: "Uñas", DurationMin: 45}, {ID: 2, Name: "Tintura", DurationMin: 90}},
		"SelectedServiceID": uint(2),
		"Hours":             []string{"09:00", "10:00"},
		"Flash":             map[string]string{"Level": "error", "Message": "El campo Teléfono es obligatorio."},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`<option value="2" selected>Tintura (90 min)</option>`,
		`<option value="09:00">09:00</option>`,
		"El campo Teléfono es obligatorio.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestServiciosPrice(t *testing.T) {
	t.Parallel()

	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "servicios.html", map[string]any{
		"Services": []service{{ID: 3, Name: "Corte de Pelo", DurationMin: 30, Price: decimal.RequireFromString("4500")}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "$ 4500.00") {
		t.Fatalf("price not formatted: %s", buf.String())
	}
}
