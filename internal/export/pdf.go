package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"peels/internal/models"
)

func writePDF(w io.Writer, title string, entries []models.Entry) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.SetCreator("Peels", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.Ln(4)

	for i, e := range entries {
		if i > 0 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 15)
		pdf.MultiCell(0, 8, tr(e.Title), "", "L", false)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, tr(subtitle(e, true)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, blk := range entryDocument(e).Blocks {
			switch blk.Type {
			case "header-one":
				pdf.SetFont("Helvetica", "B", 16)
			case "header-two":
				pdf.SetFont("Helvetica", "B", 14)
			case "header-three":
				pdf.SetFont("Helvetica", "B", 12)
			case "blockquote":
				pdf.SetFont("Helvetica", "I", 11)
			default:
				pdf.SetFont("Helvetica", "", 11)
			}

			text := blk.Text
			if blk.Type == "unordered-list-item" {
				text = "- " + text
			}
			pdf.MultiCell(0, 5.5, tr(text), "", "L", false)
			pdf.Ln(1.5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
