// Package export writes a task view as CSV, JSON or a PDF report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasktable/internal/store"
	"tasktable/internal/task"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "pdf"}

// Export writes tasks to w in the given format.
func Export(w io.Writer, format string, tasks []task.Task) error {
	switch strings.ToLower(format) {
	case "csv":
		return writeCSV(w, tasks)
	case "json":
		return writeJSON(w, tasks)
	case "pdf":
		return writePDF(w, tasks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeCSV(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "description", "status"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{strconv.Itoa(t.ID), t.Title, t.Description, string(t.Status)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// PDF column widths in mm; A4 portrait leaves 190mm between margins.
var pdfCols = []struct {
	header string
	width  float64
}{
	{"Task ID", 20},
	{"Title", 80},
	{"Description", 60},
	{"Status", 30},
}

func writePDF(w io.Writer, tasks []task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task List", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range pdfCols {
			pdf.CellFormat(c.width, 7, c.header, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, t := range tasks {
		if pdf.GetY()+6 > pageHeight-bottom-10 {
			pdf.AddPage()
			header()
		}
		cells := []string{strconv.Itoa(t.ID), t.Title, t.Description, string(t.Status)}
		for i, c := range pdfCols {
			pdf.CellFormat(c.width, 6, tr(fit(pdf, cells[i], c.width-2)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr(rowCounts(tasks)))

	return pdf.Output(w)
}

// rowCounts summarizes the exported rows by status. A filtered export
// counts only its own rows, so the line says so.
func rowCounts(tasks []task.Task) string {
	counts := store.Count(tasks)
	parts := make([]string, 0, len(task.Statuses))
	for _, st := range task.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", st, counts[st]))
	}
	noun := "rows"
	if len(tasks) == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%d exported %s   %s", len(tasks), noun, strings.Join(parts, "   "))
}

// fit truncates s with an ellipsis so it renders within width mm.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	s = strings.Join(strings.Fields(s), " ")
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
