package report

import(
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

)

// https://godoc.org/github.com/jung-kurt/gofpdf

const(
	pageMargin = 10.0
	lineHeight = 6.0
	chartWidth = 190.0
	chartHeight = 60.0

	maxPDFRows = 200 // the rest are in the CSV
)

// {{{ bucketCounts

// bucketCounts bins the summary's distances into the buckets of its histogram, so the
// chart and the histogram stats describe the same values.
func bucketCounts(s Summary) ([]int, float64) {
	n := s.H.NumBuckets
	if n <= 0 { return nil, 0 }
	min,max := float64(s.H.ValMin), float64(s.H.ValMax)
	width := (max - min) / float64(n)
	counts := make([]int, n)
	for _,d := range s.Distances {
		i := 0
		if width > 0 { i = int((d - min) / width) }
		if i < 0 { i = 0 }
		if i >= n { i = n-1 }
		counts[i]++
	}
	return counts, width
}

// }}}
// {{{ drawHistogram

func drawHistogram(pdf *gofpdf.Fpdf, s Summary, x, y float64) {
	counts,width := bucketCounts(s)
	max := 0
	for _,c := range counts {
		if c > max { max = c }
	}

	pdf.SetDrawColor(0x00, 0x00, 0x00)
	pdf.SetLineWidth(0.3)
	pdf.Line(x, y+chartHeight, x+chartWidth, y+chartHeight)
	if max == 0 { return }

	minKM,maxKM := float64(s.H.ValMin), float64(s.H.ValMax)
	barWidth := chartWidth / float64(len(counts))
	pdf.SetFillColor(0x00, 0x00, 0xcc)
	for i,c := range counts {
		if c == 0 { continue }
		h := chartHeight * float64(c) / float64(max)
		pdf.Rect(x + float64(i)*barWidth, y+chartHeight-h, barWidth*0.9, h, "F")
	}

	pdf.SetFont("Arial", "", 7)
	for i := 0; i <= 4; i++ {
		km := minKM + (maxKM-minKM)*float64(i)/4
		pdf.Text(x + chartWidth*float64(i)/4, y+chartHeight+3, fmt.Sprintf("%.0fkm", km))
	}
	pdf.Text(x, y-1, fmt.Sprintf("max %d routes per %.0fkm bucket", max, width))
}

// }}}
// {{{ WritePDF

// WritePDF renders the summary on A4: the metadata, a histogram of distances, and the
// first rows of the table.
func WritePDF(w io.Writer, s Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(s.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _,kv := range s.MetadataTable() {
		pdf.CellFormat(120, lineHeight, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, tr(kv[1]), "", 1, "R", false, 0, "")
	}

	pdf.Ln(lineHeight)
	drawHistogram(pdf, s, pageMargin, pdf.GetY()+4)
	pdf.SetY(pdf.GetY() + chartHeight + 12)

	if len(s.HeadersText) > 0 {
		colWidth := chartWidth / float64(len(s.HeadersText))
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(0xdd, 0xdd, 0xdd)
		for _,h := range s.HeadersText {
			pdf.CellFormat(colWidth, lineHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for i,row := range s.RowsText {
			if i == maxPDFRows {
				pdf.CellFormat(0, lineHeight, fmt.Sprintf("(%d more rows)", len(s.RowsText)-i), "", 1, "L", false, 0, "")
				break
			}
			for _,v := range row {
				pdf.CellFormat(colWidth, lineHeight, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %v", err)
	}
	return pdf.Output(w)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
