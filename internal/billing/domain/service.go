package domain

import (
	"context"
	"errors"
	"time"
)

// ItemInput is one operator-entered line before derivation.
type ItemInput struct {
	Category        string  `json:"category"`
	Quantity        int     `json:"quantity"`
	MRP             float64 `json:"mrp"`
	DiscountPercent float64 `json:"discount"`
}

// SubmitBillRequest carries one sale as entered by the operator.
type SubmitBillRequest struct {
	Date          string      `json:"date"`
	CustomerName  string      `json:"name"`
	CustomerPhone string      `json:"phone"`
	CustomerEmail string      `json:"email"`
	PaymentMode   PaymentMode `json:"paymentMode"`
	Items         []ItemInput `json:"items"`
	TaxRate       *float64    `json:"taxRate,omitempty"`
	AmountPaid    float64     `json:"amountPaid"`
}

// BillSummary is the list/display projection of a bill with formatted
// currency strings, matching the historical record format.
type BillSummary struct {
	BillNumber    string `json:"billNumber"`
	Date          string `json:"date"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PaymentMode   string `json:"paymentMode"`
	TotalAmount   string `json:"totalAmount"`
	TotalDiscount string `json:"totalDiscount"`
	NetAmount     string `json:"netAmount"`
	AmountPaid    string `json:"amountPaid"`
	Balance       string `json:"balance"`
}

// Stats aggregates stored bills for the dashboard.
type Stats struct {
	BillCount     int     `json:"billCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// RenderedInvoice is the finished document plus its download filename.
type RenderedInvoice struct {
	Filename string
	Content  []byte
}

type Service interface {
	Submit(ctx context.Context, req SubmitBillRequest) (Bill, error)
	Get(ctx context.Context, billNumber string) (Bill, error)
	List(ctx context.Context) ([]BillSummary, error)
	RenderPDF(ctx context.Context, billNumber string) (RenderedInvoice, error)
	Stats(ctx context.Context) (Stats, error)
}

// Renderer produces the printable invoice document for one bill.
type Renderer interface {
	RenderInvoice(ctx context.Context, bill Bill) ([]byte, int, error)
}

var (
	ErrBillNotFound        = errors.New("bill_not_found")
	ErrInvalidBillNumber   = errors.New("invalid_bill_number")
	ErrInvalidPaymentMode  = errors.New("invalid_payment_mode")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrBillNumberExhausted = errors.New("bill_number_exhausted")
)

// BillDateLayout is the wire format for bill dates.
const BillDateLayout = "2006-01-02"

// ParseBillDate parses an operator-supplied date, defaulting to today when
// empty.
func ParseBillDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(BillDateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
