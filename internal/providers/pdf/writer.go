package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

var (
	// ErrTemplateUnavailable means the letterhead template could not be
	// loaded or parsed. No partial document is produced.
	ErrTemplateUnavailable = errors.New("template_unavailable")
	// ErrPageClone means cloning a fresh template page failed mid-render.
	// The whole render aborts rather than emitting a truncated document.
	ErrPageClone = errors.New("page_clone_failed")
)

// pageWriter is the drawing surface the layout walk runs against. The fpdf
// implementation stamps the letterhead template onto every page it adds;
// tests substitute a recorder.
type pageWriter interface {
	// AddPage appends a fresh template page and makes it the active page.
	AddPage() error
	// Cell draws a bordered cell of one row height at the given bottom-up
	// row position.
	Cell(x, y, width float64, text string)
	// Text draws bare text (no border) at the given bottom-up position.
	Text(x, y, size float64, text string)
	PageCount() int
	Output() ([]byte, error)
}

const (
	cellPadX = 2
	// The cell rectangle hangs 5pt below the text baseline row position and
	// the text sits 2pt above it, matching the letterhead's printed grid.
	cellDropY = 5
	textRiseY = 2
)

// templateWriter renders over an imported letterhead PDF page.
type templateWriter struct {
	doc      *fpdf.Fpdf
	importer *gofpdi.Importer
	template int
	pageW    float64
	pageH    float64
	layout   Layout
	pages    int
}

// newTemplateWriter loads the letterhead and prepares a document sized to
// the template's media box. The template file is parsed once; every page of
// the output stamps the same imported page.
func newTemplateWriter(templatePath string, layout Layout) (w *templateWriter, err error) {
	if _, statErr := os.Stat(templatePath); statErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, statErr)
	}

	// gofpdi reports parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			w = nil
			err = fmt.Errorf("%w: %v", ErrTemplateUnavailable, r)
		}
	}()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", layout.FontSize)
	doc.SetAutoPageBreak(false, 0)

	importer := gofpdi.NewImporter()
	template := importer.ImportPage(doc, templatePath, 1, "/MediaBox")

	pageW, pageH := 595.28, 841.89
	if box, ok := importer.GetPageSizes()[1]["/MediaBox"]; ok {
		if box["w"] > 0 && box["h"] > 0 {
			pageW, pageH = box["w"], box["h"]
		}
	}

	return &templateWriter{
		doc:      doc,
		importer: importer,
		template: template,
		pageW:    pageW,
		pageH:    pageH,
		layout:   layout,
	}, nil
}

func (w *templateWriter) AddPage() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPageClone, r)
		}
	}()

	w.doc.AddPageFormat("P", fpdf.SizeType{Wd: w.pageW, Ht: w.pageH})
	w.importer.UseImportedTemplate(w.doc, w.template, 0, 0, w.pageW, w.pageH)
	if docErr := w.doc.Error(); docErr != nil {
		return fmt.Errorf("%w: %v", ErrPageClone, docErr)
	}
	w.pages++
	return nil
}

func (w *templateWriter) Cell(x, y, width float64, text string) {
	w.doc.SetFont("Helvetica", "", w.layout.FontSize)
	w.doc.Rect(x, w.pageH-(y-cellDropY)-w.layout.RowHeight, width, w.layout.RowHeight, "D")
	w.doc.Text(x+cellPadX, w.pageH-(y+textRiseY), text)
}

func (w *templateWriter) Text(x, y, size float64, text string) {
	w.doc.SetFont("Helvetica", "", size)
	w.doc.Text(x, w.pageH-y, text)
}

func (w *templateWriter) PageCount() int { return w.pages }

func (w *templateWriter) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
