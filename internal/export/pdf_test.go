package export

import (
	"bytes"
	"testing"

	"github.com/tomasvidal/escriba/internal/session"
)

func TestFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Reunión semanal", "Reunión_semanal.pdf"},
		{"  espacios   extra  ", "espacios_extra.pdf"},
		{"", "transcripcion.pdf"},
		{"   ", "transcripcion.pdf"},
		{"una\tpalabra\ncada\tvez", "una_palabra_cada_vez.pdf"},
	}
	for _, tc := range cases {
		if got := FileName(tc.title); got != tc.want {
			t.Errorf("FileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestReportRendersPDF(t *testing.T) {
	s := session.New("Reunión semanal", "Se revisó el presupuesto anual.",
		[]string{"Ana", "Luis"},
		[]session.Segment{
			{Speaker: "Ana", Text: "Hola, empecemos con el presupuesto."},
			{Speaker: "Luis", Text: "De acuerdo, aquí están las cifras."},
		},
		[]string{"reunion.mp3"})
	s, _ = s.WithNoteAdded("Revisar cifras del segundo trimestre.")
	s, _ = s.WithQA("¿Qué se revisó?", "El presupuesto anual.")

	data, err := Report(s)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("report should not be empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("report should start with %%PDF, got %q", data[:8])
	}
}

func TestReportEmptySections(t *testing.T) {
	s := session.New("Sin contenido", "", nil, nil, nil)

	data, err := Report(s)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report with empty sections should still render")
	}
}
