// Package pdf renders finalized bills onto the shop letterhead.
package pdf

import (
	"context"
	"fmt"

	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/billing/format"
	"go.uber.org/zap"
)

// disclaimers print at the foot of every invoice.
var disclaimers = []string{
	"• All sales are final—no returns or exchanges.",
	"• Please note that all products are dry clean only.",
	"• Steam ironing only; do not iron directly on the fabric.",
	"• Thank you for choosing to shop with us!",
	"   We look forward to serving you again soon.",
}

// InvoiceRenderer draws bills over a reusable letterhead template.
type InvoiceRenderer struct {
	templatePath   string
	currencyPrefix string
	layout         Layout
	log            *zap.Logger
}

// NewInvoiceRenderer builds a renderer bound to one template file. The
// template is re-read per render so concurrent renders share nothing.
func NewInvoiceRenderer(templatePath, currencyPrefix string, log *zap.Logger) *InvoiceRenderer {
	return &InvoiceRenderer{
		templatePath:   templatePath,
		currencyPrefix: currencyPrefix,
		layout:         DefaultLayout(),
		log:            log.Named("pdf.renderer"),
	}
}

// RenderInvoice produces the complete document bytes and the page count.
// Rendering either completes or fails with no partial output.
func (r *InvoiceRenderer) RenderInvoice(ctx context.Context, bill domain.Bill) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	w, err := newTemplateWriter(r.templatePath, r.layout)
	if err != nil {
		r.log.Error("letterhead template unavailable",
			zap.String("template", r.templatePath),
			zap.Error(err),
		)
		return nil, 0, err
	}

	if err := r.renderDocument(w, bill); err != nil {
		return nil, 0, err
	}

	content, err := w.Output()
	if err != nil {
		return nil, 0, err
	}
	return content, w.PageCount(), nil
}

// renderDocument walks the fixed draw sequence against any page writer.
func (r *InvoiceRenderer) renderDocument(w pageWriter, bill domain.Bill) error {
	// First page is the letterhead itself; overflow pages are clones.
	if err := w.AddPage(); err != nil {
		return err
	}
	c := &cursor{w: w, l: r.layout, y: r.layout.FirstPageY}

	if err := drawTable(c, table{
		headers: []string{"Bill Number", "Date"},
		widths:  []float64{100, 100},
		rows:    [][]string{{bill.BillNumber, bill.BillDate.Format(domain.BillDateLayout)}},
	}); err != nil {
		return err
	}

	c.y -= 5
	if err := drawTable(c, table{
		headers: []string{"Name", "Phone", "Payment"},
		widths:  []float64{150, 100, 80},
		rows:    [][]string{{bill.CustomerName, bill.CustomerPhone, string(bill.PaymentMode)}},
	}); err != nil {
		return err
	}

	c.y -= 20
	if err := drawTable(c, r.itemTable(bill.Items)); err != nil {
		return err
	}

	c.y -= 20
	if err := drawTable(c, table{
		headers: []string{"Total", "Discount", "Net Amount"},
		widths:  []float64{100, 100, 100},
		rows: [][]string{{
			r.currency(bill.TotalAmount),
			r.currency(bill.TotalDiscount),
			r.currency(bill.NetAmount),
		}},
	}); err != nil {
		return err
	}

	c.y -= 20
	if err := drawTable(c, table{
		headers: []string{"Taxable", "GST"},
		widths:  []float64{150, 150},
		rows:    [][]string{{r.currency(bill.TaxableAmount), r.currency(bill.TaxAmount)}},
	}); err != nil {
		return err
	}

	c.y -= 20
	if err := drawTable(c, table{
		headers: []string{"Paid", "Balance"},
		widths:  []float64{100, 100},
		rows:    [][]string{{r.currency(bill.AmountPaid), r.currency(bill.BalanceAmount)}},
	}); err != nil {
		return err
	}

	c.y -= 30
	return drawDisclaimers(c, disclaimers)
}

func (r *InvoiceRenderer) itemTable(items []domain.BillItem) table {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Category,
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%.2f", it.MRP),
			format.Percent(it.DiscountPercent),
			fmt.Sprintf("%.2f", it.Rate),
			fmt.Sprintf("%.2f", it.Amount),
		})
	}
	return table{
		headers: []string{"Category", "Qty", "MRP", "Disc%", "Rate", "Amount"},
		widths:  []float64{90, 40, 70, 50, 70, 70},
		rows:    rows,
	}
}

func (r *InvoiceRenderer) currency(amount float64) string {
	return format.Currency(r.currencyPrefix, amount)
}
