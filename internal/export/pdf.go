package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"RodaClientPortal/internal/config"
)

// Roda brand palette.
var (
	rodaYellow = [3]int{235, 255, 0}
	rodaBlack  = [3]int{12, 13, 13}
	rodaGray   = [3]int{107, 114, 128}
	bodyText   = [3]int{51, 51, 51}
	stripeFill = [3]int{248, 249, 250}
)

const (
	pdfMargin     = 15.0
	bannerHeight  = 25.0
	tableLineH    = 4.5
	footerReserve = 20.0
)

// renderPDF emits the branded PDF: banner header, title/subtitle block,
// striped data table with wrapped cells, per-page footer with page count
// and attribution. Column widths are fixed per the header count, never
// content-driven; long cell text wraps instead of truncating.
func renderPDF(report *TabularReport, req Request) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	orient := "P"
	if req.Orientation == Landscape {
		orient = "L"
	}
	size := "A4"
	if req.PageSize == PageLetter {
		size = "Letter"
	}

	pdf := gofpdf.New(orient, "mm", size, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, footerReserve)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(rodaGray[0], rodaGray[1], rodaGray[2])
		pdf.CellFormat(0, 6, tr(config.ExportAttribution), "", 0, "L", false, 0, "")
		pdf.SetY(-12)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// Brand banner across the full page width
	pdf.SetFillColor(rodaYellow[0], rodaYellow[1], rodaYellow[2])
	pdf.Rect(0, 0, pageW, bannerHeight, "F")
	pdf.SetTextColor(rodaBlack[0], rodaBlack[1], rodaBlack[2])
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pdfMargin, 15, "RODA")

	if report.Title != "" {
		pdf.SetFont("Helvetica", "", 16)
		pdf.Text(pdfMargin, 35, tr(report.Title))
	}
	if report.Subtitle != "" {
		pdf.SetTextColor(rodaGray[0], rodaGray[1], rodaGray[2])
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(pdfMargin, 45, tr(report.Subtitle))
	}

	// The generation line shifts down when a subtitle occupies its slot
	genY, startY := 50.0, 60.0
	if report.Subtitle != "" {
		genY, startY = 55.0, 65.0
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(rodaGray[0], rodaGray[1], rodaGray[2])
	pdf.Text(pdfMargin, genY, tr("Generado el: "+FormatDateTime(reportNow())))

	if len(report.Headers) > 0 {
		drawPDFTable(pdf, tr, report, startY, pageW, pageH)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPDFTable(pdf *gofpdf.Fpdf, tr func(string) string, report *TabularReport, startY, pageW, pageH float64) {
	cols := len(report.Headers)
	colW := (pageW - 2*pdfMargin) / float64(cols)
	bottom := pageH - footerReserve

	drawHead := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(rodaYellow[0], rodaYellow[1], rodaYellow[2])
		pdf.SetTextColor(rodaBlack[0], rodaBlack[1], rodaBlack[2])
		pdf.SetX(pdfMargin)
		for _, h := range report.Headers {
			pdf.CellFormat(colW, 8, tr(h), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetY(startY)
	drawHead()
	pdf.SetFont("Helvetica", "", 10)

	for i, row := range report.Rows {
		lines := make([][]string, cols)
		maxLines := 1
		for j, cell := range row {
			wrapped := pdf.SplitText(tr(cellString(cell)), colW-3)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			lines[j] = wrapped
			if len(wrapped) > maxLines {
				maxLines = len(wrapped)
			}
		}
		rowH := float64(maxLines)*tableLineH + 3

		if pdf.GetY()+rowH > bottom {
			pdf.AddPage()
			pdf.SetY(pdfMargin)
			drawHead()
			pdf.SetFont("Helvetica", "", 10)
		}

		y := pdf.GetY()
		if i%2 == 1 {
			pdf.SetFillColor(stripeFill[0], stripeFill[1], stripeFill[2])
			pdf.Rect(pdfMargin, y, colW*float64(cols), rowH, "F")
		}
		pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
		x := pdfMargin
		for j := range lines {
			for li, line := range lines[j] {
				pdf.Text(x+1.5, y+tableLineH*float64(li)+4, line)
			}
			x += colW
		}
		pdf.SetY(y + rowH)
	}
}
