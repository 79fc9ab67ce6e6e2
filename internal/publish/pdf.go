package publish

import (
	"fmt"
	"io"

	"todo-cli/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes an A4 checklist of tasks to w.
//
// Text goes through the cp1252 translator of the core fonts; runes outside cp1252
// come out as "?". Markdown export has no such limit.
func WritePDF(w io.Writer, tasks []model.Task, opt RenderOptions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(opt.title(), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(opt.title()))
	pdf.Ln(12)
	if opt.Subtitle != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 6, tr(opt.Subtitle))
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.Cell(0, 7, "(no tasks)")
		pdf.Ln(8)
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		pdf.SetFont("Courier", "", 11)
		pdf.CellFormat(12, 7, box, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 7, tr(escapeLine(t.Text)), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
