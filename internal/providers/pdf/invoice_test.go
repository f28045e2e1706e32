package pdf

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCell struct {
	page int
	x, y float64
	text string
}

// fakeWriter records the draw commands the layout walk emits.
type fakeWriter struct {
	pages      int
	cells      []fakeCell
	texts      []fakeCell
	failPageAt int // AddPage fails when about to open this page number
}

func (f *fakeWriter) AddPage() error {
	if f.failPageAt > 0 && f.pages+1 == f.failPageAt {
		return ErrPageClone
	}
	f.pages++
	return nil
}

func (f *fakeWriter) Cell(x, y, width float64, text string) {
	f.cells = append(f.cells, fakeCell{page: f.pages, x: x, y: y, text: text})
}

func (f *fakeWriter) Text(x, y, size float64, text string) {
	f.texts = append(f.texts, fakeCell{page: f.pages, x: x, y: y, text: text})
}

func (f *fakeWriter) PageCount() int { return f.pages }

func (f *fakeWriter) Output() ([]byte, error) { return nil, nil }

func (f *fakeWriter) cellsOnPage(page int) []fakeCell {
	var out []fakeCell
	for _, c := range f.cells {
		if c.page == page {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeWriter) countText(text string) int {
	n := 0
	for _, c := range f.cells {
		if c.text == text {
			n++
		}
	}
	return n
}

// testLayout holds 7 data rows below a header before the bottom margin.
func testLayout() Layout {
	return Layout{
		StartX:            200,
		RowHeight:         20,
		FontSize:          10,
		BottomMargin:      50,
		TopMargin:         200,
		FirstPageY:        200,
		DisclaimerSize:    9,
		DisclaimerLeading: 15,
	}
}

func itemRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"Saree", "1"}
	}
	return rows
}

func TestDrawTable_FitsWithoutBreak(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, w.AddPage())
	c := &cursor{w: w, l: testLayout(), y: 200}

	err := drawTable(c, table{
		headers: []string{"Category", "Qty"},
		widths:  []float64{90, 40},
		rows:    itemRows(7),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, w.pages)
	assert.Equal(t, 1, w.countText("Category"), "header drawn once")
	// Cursor advanced one row height per row plus the header.
	assert.InDelta(t, 200-8*20, c.y, 1e-9)
}

func TestDrawTable_OverflowRepeatsHeader(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, w.AddPage())
	c := &cursor{w: w, l: testLayout(), y: 200}

	err := drawTable(c, table{
		headers: []string{"Category", "Qty"},
		widths:  []float64{90, 40},
		rows:    itemRows(8),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, w.pages, "one row past capacity forces exactly one extra page")
	assert.Equal(t, 2, w.countText("Category"), "header repeated on the new page")

	// The repeated header sits at the top margin of the cloned page with the
	// same column offsets as the original.
	page2 := w.cellsOnPage(2)
	require.NotEmpty(t, page2)
	assert.Equal(t, "Category", page2[0].text)
	assert.InDelta(t, 200, page2[0].y, 1e-9)
	assert.InDelta(t, 200, page2[0].x, 1e-9)
	assert.Equal(t, "Qty", page2[1].text)
	assert.InDelta(t, 290, page2[1].x, 1e-9)
}

func TestDrawTable_ColumnOffsetsAccumulate(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, w.AddPage())
	c := &cursor{w: w, l: testLayout(), y: 200}

	require.NoError(t, drawTable(c, table{
		headers: []string{"A", "B", "C"},
		widths:  []float64{90, 40, 70},
		rows:    nil,
	}))

	require.Len(t, w.cells, 3)
	assert.InDelta(t, 200, w.cells[0].x, 1e-9)
	assert.InDelta(t, 290, w.cells[1].x, 1e-9)
	assert.InDelta(t, 330, w.cells[2].x, 1e-9)
}

func TestDrawTable_PageCloneFailureAborts(t *testing.T) {
	w := &fakeWriter{failPageAt: 2}
	require.NoError(t, w.AddPage())
	c := &cursor{w: w, l: testLayout(), y: 200}

	err := drawTable(c, table{
		headers: []string{"Category", "Qty"},
		widths:  []float64{90, 40},
		rows:    itemRows(20),
	})
	assert.ErrorIs(t, err, ErrPageClone)
}

func testBill(items int) domain.Bill {
	bill := domain.Bill{
		BillNumber:    "2509123456",
		BillDate:      time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Default Name",
		CustomerPhone: "0000000000",
		PaymentMode:   domain.PaymentModeCash,
		TotalAmount:   1000,
		TotalDiscount: 100,
		NetAmount:     900,
		TaxRate:       5,
		TaxableAmount: 857.142857,
		TaxAmount:     42.857143,
		AmountPaid:    0,
		BalanceAmount: 900,
	}
	for i := 0; i < items; i++ {
		bill.Items = append(bill.Items, domain.BillItem{
			Category: "Lehenga", Quantity: 1, MRP: 1000, DiscountPercent: 10, Rate: 900, Amount: 900,
		})
	}
	return bill
}

func testRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{
		currencyPrefix: "Rs.",
		layout:         DefaultLayout(),
		log:            zap.NewNop(),
	}
}

func TestRenderDocument_SingleItemSinglePage(t *testing.T) {
	w := &fakeWriter{}
	r := testRenderer()

	require.NoError(t, r.renderDocument(w, testBill(1)))

	assert.Equal(t, 1, w.pages)
	assert.Equal(t, 1, w.countText("Bill Number"))
	assert.Equal(t, 1, w.countText("2509123456"))
	assert.Equal(t, 1, w.countText("2025-09-14"))
	assert.Equal(t, 1, w.countText("Category"))
	assert.Equal(t, 1, w.countText("Rs.900.00"), "net amount formatted at the render boundary")
	assert.Len(t, w.texts, len(disclaimers))
}

func TestRenderDocument_ManyItemsFlowAcrossPages(t *testing.T) {
	w := &fakeWriter{}
	r := testRenderer()

	require.NoError(t, r.renderDocument(w, testBill(40)))

	assert.Greater(t, w.pages, 1)
	assert.Equal(t, w.pages, w.countText("Category"), "item header repeats on every page it spans")
	assert.Equal(t, 40, w.countText("Lehenga"))
	// Summary tables still follow the item table after the break.
	assert.Equal(t, 1, w.countText("Net Amount"))
	assert.Equal(t, 1, w.countText("Taxable"))
	assert.Equal(t, 1, w.countText("Balance"))
}

func TestRenderDocument_Deterministic(t *testing.T) {
	r := testRenderer()
	bill := testBill(25)

	a := &fakeWriter{}
	require.NoError(t, r.renderDocument(a, bill))
	b := &fakeWriter{}
	require.NoError(t, r.renderDocument(b, bill))

	assert.Equal(t, a.cells, b.cells)
	assert.Equal(t, a.texts, b.texts)
	assert.Equal(t, a.pages, b.pages)
}

func TestRenderInvoice_TemplateMissing(t *testing.T) {
	r := NewInvoiceRenderer(filepath.Join(t.TempDir(), "missing.pdf"), "Rs.", zap.NewNop())

	content, pages, err := r.RenderInvoice(context.Background(), testBill(1))
	assert.ErrorIs(t, err, ErrTemplateUnavailable)
	assert.Nil(t, content, "no partial document on template failure")
	assert.Zero(t, pages)
}

func writeLetterhead(t *testing.T, path string) {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 24)
	doc.Text(200, 80, "ADS Clothing")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(200, 100, "Fine Ethnic Wear")
	require.NoError(t, doc.OutputFileAndClose(path))
}

func TestRenderInvoice_EndToEnd(t *testing.T) {
	template := filepath.Join(t.TempDir(), "letterhead.pdf")
	writeLetterhead(t, template)

	r := NewInvoiceRenderer(template, "Rs.", zap.NewNop())

	content, pages, err := r.RenderInvoice(context.Background(), testBill(3))
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	// Identical input renders an identical layout; page count is stable.
	again, pagesAgain, err := r.RenderInvoice(context.Background(), testBill(3))
	require.NoError(t, err)
	assert.Equal(t, pages, pagesAgain)
	assert.Equal(t, len(content), len(again))
}

func TestRenderInvoice_OverflowProducesClonedPages(t *testing.T) {
	template := filepath.Join(t.TempDir(), "letterhead.pdf")
	writeLetterhead(t, template)

	r := NewInvoiceRenderer(template, "Rs.", zap.NewNop())

	_, pages, err := r.RenderInvoice(context.Background(), testBill(40))
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}
