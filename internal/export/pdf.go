package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdxmph/todos/internal/db"
)

// PDF renders a printable task report
type PDF struct{}

func (PDF) Name() string      { return "pdf" }
func (PDF) Extension() string { return ".pdf" }

var pdfColumns = []struct {
	title string
	width float64
}{
	{"#", 10},
	{"Task", 70},
	{"Category", 30},
	{"Priority", 20},
	{"Due", 25},
	{"Done", 15},
}

func (PDF) Write(w io.Writer, tasks []db.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todos")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		due := t.DueDate.String
		if !t.DueDate.Valid {
			due = "-"
		}
		done := "no"
		if t.IsDone() {
			done = "yes"
		}
		cells := []string{
			fmt.Sprint(t.ID),
			tr(t.Task),
			tr(t.Category),
			string(t.Priority),
			due,
			done,
		}
		for i, c := range pdfColumns {
			pdf.CellFormat(c.width, 6, truncate(pdf, cells[i], c.width-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// truncate shortens s until it fits in width mm at the current font.
// s is already single-byte encoded, so cutting bytes is safe.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func init() {
	mustRegister(PDF{})
}
