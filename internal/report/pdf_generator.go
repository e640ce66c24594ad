package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/rdplot_go/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and the flowing Y position for PDF generation.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageBottom  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageBottom:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageBottom {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// addImage places an encoded image scaled to width, keeping the given height/width ratio.
func (s *pdfStyler) addImage(imageBytes []byte, imageName, imageType string, width, aspect float64, caption string) {
	s.pdf.RegisterImageReader(imageName, imageType, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		width = pdfContentWidth
	}
	height := width * aspect
	if maxHeight := s.pageBottom - s.contentTopY - 2*s.lineHeight; height > maxHeight {
		height = maxHeight
		width = height / aspect
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(imageName, x, s.currentY, width, height, false, imageType, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// writeTable draws a bordered table with equal-width columns, repeating the header after page breaks.
func (s *pdfStyler) writeTable(headers []string, rows [][]string) {
	colWidth := pdfContentWidth / float64(len(headers))
	drawHeader := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for _, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidth, s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += colWidth
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	drawHeader()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageBottom {
			s.newPage()
			drawHeader()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for _, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidth, s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += colWidth
		}
		s.currentY += s.lineHeight
	}
}

// PDFReport is everything BuildPDFReport puts on the page.
type PDFReport struct {
	Title      string
	Set        *parser.MeasurementSet
	Labels     parser.Labels
	ChartPaths map[parser.Metric]string // exported chart images, PNG or JPEG
	Aspect     float64                  // chart height / width
}

func pdfImageType(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		return "JPG"
	}
	return "PNG"
}

// BuildPDFReport writes a landscape report: a summary page, one page per metric
// chart, then the measurement table of every codec.
func BuildPDFReport(filepath string, rep PDFReport) error {
	if rep.Set == nil {
		return errors.New("no measurements for PDF report")
	}
	aspect := rep.Aspect
	if aspect <= 0 {
		aspect = 5.0 / 8.0
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(rep.Title, true)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph(fmt.Sprintf("Rate-Distortion Comparison: %s", rep.Title), "h1", "C")
	styler.addSpacer(5)

	codecNames := make([]string, 0, len(rep.Set.Codecs))
	for _, c := range rep.Set.Codecs {
		n := 0
		if s := rep.Set.Get(c); s != nil {
			n = s.Len()
		}
		codecNames = append(codecNames, fmt.Sprintf("%s (%d points)", rep.Labels.Codec(c), n))
	}
	metricNames := make([]string, 0, len(rep.Set.Metrics))
	for _, m := range rep.Set.Metrics {
		metricNames = append(metricNames, rep.Labels.Metric(m))
	}
	styler.writeParagraph("Codecs: "+strings.Join(codecNames, ", "), "normal", "L")
	styler.writeParagraph("Metrics: "+strings.Join(metricNames, ", "), "normal", "L")
	styler.writeParagraph("Rate: "+XAxisTitle, "normal", "L")

	for _, m := range rep.Set.Metrics {
		styler.newPage()
		styler.writeParagraph(rep.Labels.Metric(m), "h2", "L")
		path, ok := rep.ChartPaths[m]
		if !ok {
			styler.writeParagraph(fmt.Sprintf("Chart for %s not available.", rep.Labels.Metric(m)), "normal", "L")
			continue
		}
		imgBytes, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read chart %s", path)
		}
		styler.addImage(imgBytes, string(m), pdfImageType(path), pdfContentWidth*0.9, aspect,
			fmt.Sprintf("%s versus %s", rep.Labels.Metric(m), XAxisTitle))
	}

	headers := measurementHeaders(rep.Set.Metrics, rep.Labels)
	for _, c := range rep.Set.Codecs {
		s := rep.Set.Get(c)
		if s == nil {
			continue
		}
		styler.newPage()
		styler.writeParagraph(fmt.Sprintf("Measurements: %s", rep.Labels.Codec(c)), "h2", "L")
		if s.Len() == 0 {
			styler.writeParagraph("No rows.", "normal", "L")
			continue
		}
		styler.writeTable(headers, measurementRows(s, rep.Set.Metrics))
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "failed to build PDF report")
	}
	logrus.Debugf("PDF report has %d pages", pdf.PageCount())
	return pdf.OutputFileAndClose(filepath)
}
