// Package export renders a session as a paginated PDF report.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/tomasvidal/escriba/internal/session"
)

// FileName derives the report file name from the session title, collapsing
// whitespace runs to single underscores.
func FileName(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "transcripcion"
	}
	return name + ".pdf"
}

// Report renders the fixed report layout: heading, title, generation time,
// summary, speakers, full transcript, notes, and Q&A history.
func Report(s session.Session) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 for accented text
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(width, 12, tr("Informe de Transcripción"), "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(width, 7, tr(s.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(width, 5, tr("Generado: "+time.Now().Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sectionTitle(pdf, tr, width, "Resumen Automático")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(width, 6, tr(s.Summary), "", "L", false)
	pdf.Ln(4)

	sectionTitle(pdf, tr, width, "Interlocutores")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(width, 6, tr(strings.Join(s.Speakers, ", ")), "", "L", false)
	pdf.Ln(4)

	sectionTitle(pdf, tr, width, "Transcripción Completa")
	for _, seg := range s.Transcript {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(width, 5, tr(seg.Speaker+":"), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5, tr(seg.Text), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(3)

	sectionTitle(pdf, tr, width, "Notas del Usuario")
	pdf.SetFont("Helvetica", "", 11)
	if len(s.Notes) == 0 {
		pdf.MultiCell(width, 6, tr("No hay notas."), "", "L", false)
	} else {
		for _, n := range s.Notes {
			pdf.MultiCell(width, 6, tr("- "+n.Content), "", "L", false)
		}
	}
	pdf.Ln(4)

	sectionTitle(pdf, tr, width, "Historial de Preguntas y Respuestas")
	if len(s.QAHistory) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(width, 6, tr("No hay preguntas y respuestas."), "", "L", false)
	} else {
		for _, qa := range s.QAHistory {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(width, 5, tr("P: "+qa.Question), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(width, 5, tr("R: "+qa.Answer), "", "L", false)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, width float64, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 80, 160)
	pdf.CellFormat(width, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}
