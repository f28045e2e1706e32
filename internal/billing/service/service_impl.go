package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/adsretail/billdesk/internal/billing/calc"
	"github.com/adsretail/billdesk/internal/billing/domain"
	"github.com/adsretail/billdesk/internal/billing/format"
	"github.com/adsretail/billdesk/internal/config"
	"github.com/adsretail/billdesk/internal/observability/metrics"
	"github.com/adsretail/billdesk/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// billNumberAttempts bounds the duplicate-key retry loop for the random
// bill-number suffix.
const billNumberAttempts = 5

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Renderer domain.Renderer
	Metrics  *metrics.Metrics `optional:"true"`
	Cfg      config.Config
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	renderer domain.Renderer
	metrics  *metrics.Metrics
	cfg      config.Config
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("billing.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		renderer: p.Renderer,
		metrics:  p.Metrics,
		cfg:      p.Cfg,
	}
}

// Submit validates and computes one sale, assigns a bill number, and persists
// the bill with its items in a single transaction. Bills are immutable once
// submitted; corrections are new submissions.
func (s *Service) Submit(ctx context.Context, req domain.SubmitBillRequest) (domain.Bill, error) {
	billDate, err := domain.ParseBillDate(strings.TrimSpace(req.Date))
	if err != nil {
		return domain.Bill{}, err
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = domain.PaymentModeCash
	}
	switch mode {
	case domain.PaymentModeCash, domain.PaymentModeCard, domain.PaymentModeUPI:
	default:
		return domain.Bill{}, domain.ErrInvalidPaymentMode
	}

	taxRate := s.cfg.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	inputs := make([]calc.LineInput, 0, len(req.Items))
	for _, it := range req.Items {
		inputs = append(inputs, calc.LineInput{
			Category:        strings.TrimSpace(it.Category),
			Quantity:        it.Quantity,
			MRP:             it.MRP,
			DiscountPercent: it.DiscountPercent,
		})
	}

	res, err := calc.Compute(inputs, taxRate, req.AmountPaid)
	if err != nil {
		return domain.Bill{}, err
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = "N/A"
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		phone = "N/A"
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		ID:            s.genID.Generate(),
		BillDate:      billDate,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		PaymentMode:   mode,
		TotalAmount:   res.Totals.TotalAmount,
		TotalDiscount: res.Totals.TotalDiscount,
		NetAmount:     res.Totals.NetAmount,
		TaxRate:       res.TaxRate,
		TaxableAmount: res.Tax.TaxableAmount,
		TaxAmount:     res.Tax.TaxAmount,
		AmountPaid:    res.Balance.AmountPaid,
		BalanceAmount: res.Balance.BalanceAmount,
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
	}

	// The random suffix can collide with an existing bill; the unique index
	// on bill_number is the collision check, retried a bounded number of
	// times with a fresh suffix.
	for attempt := 0; attempt < billNumberAttempts; attempt++ {
		bill.BillNumber = s.newBillNumber()
		items := buildItems(s.genID, bill.BillNumber, res.Lines, now)

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.repo.InsertBill(ctx, tx, &bill); err != nil {
				return err
			}
			return s.repo.InsertItems(ctx, tx, items)
		})
		if err == nil {
			bill.Items = items
			if s.metrics != nil {
				s.metrics.BillSubmitted()
			}
			s.log.Info("bill submitted",
				zap.String("bill_number", bill.BillNumber),
				zap.Int("items", len(items)),
				zap.Float64("net_amount", bill.NetAmount),
			)
			return bill, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return domain.Bill{}, err
		}
		s.log.Warn("bill number collision, retrying",
			zap.String("bill_number", bill.BillNumber),
			zap.Int("attempt", attempt+1),
		)
	}

	return domain.Bill{}, domain.ErrBillNumberExhausted
}

// Get returns one bill with its items.
func (s *Service) Get(ctx context.Context, billNumber string) (domain.Bill, error) {
	number := strings.TrimSpace(billNumber)
	if number == "" {
		return domain.Bill{}, domain.ErrInvalidBillNumber
	}

	bill, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return domain.Bill{}, err
	}
	if bill == nil {
		return domain.Bill{}, domain.ErrBillNotFound
	}

	items, err := s.repo.ListItems(ctx, s.db, number)
	if err != nil {
		return domain.Bill{}, err
	}
	bill.Items = items
	return *bill, nil
}

// List returns stored bills newest-first as display summaries.
func (s *Service) List(ctx context.Context) ([]domain.BillSummary, error) {
	bills, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.BillSummary, 0, len(bills))
	for i := len(bills) - 1; i >= 0; i-- {
		summaries = append(summaries, s.summarize(bills[i]))
	}
	return summaries, nil
}

// RenderPDF produces the printable invoice document for one bill.
func (s *Service) RenderPDF(ctx context.Context, billNumber string) (domain.RenderedInvoice, error) {
	bill, err := s.Get(ctx, billNumber)
	if err != nil {
		return domain.RenderedInvoice{}, err
	}

	content, pages, err := s.renderer.RenderInvoice(ctx, bill)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RenderFailed()
		}
		return domain.RenderedInvoice{}, err
	}
	if s.metrics != nil {
		s.metrics.RenderCompleted(pages)
	}

	s.log.Info("invoice rendered",
		zap.String("bill_number", bill.BillNumber),
		zap.Int("pages", pages),
		zap.Int("bytes", len(content)),
	)

	return domain.RenderedInvoice{
		Filename: fmt.Sprintf("%s.pdf", bill.BillNumber),
		Content:  content,
	}, nil
}

// Stats aggregates stored bills for the dashboard. Revenue is re-parsed from
// the display summaries so legacy formatted records aggregate the same way.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{BillCount: len(summaries)}
	for _, sum := range summaries {
		stats.TotalRevenue += format.ParseCurrency(sum.NetAmount)
	}
	if stats.BillCount > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.BillCount)
	}
	return stats, nil
}

func (s *Service) summarize(bill domain.Bill) domain.BillSummary {
	prefix := s.cfg.CurrencyPrefix
	return domain.BillSummary{
		BillNumber:    bill.BillNumber,
		Date:          bill.BillDate.Format(domain.BillDateLayout),
		Name:          bill.CustomerName,
		Phone:         bill.CustomerPhone,
		PaymentMode:   string(bill.PaymentMode),
		TotalAmount:   format.Currency(prefix, bill.TotalAmount),
		TotalDiscount: format.Currency(prefix, bill.TotalDiscount),
		NetAmount:     format.Currency(prefix, bill.NetAmount),
		AmountPaid:    format.Currency(prefix, bill.AmountPaid),
		Balance:       format.Currency(prefix, bill.BalanceAmount),
	}
}

func (s *Service) newBillNumber() string {
	return fmt.Sprintf("%s%06d", s.cfg.BillNumberPrefix, rand.IntN(1000000))
}

func buildItems(genID *snowflake.Node, billNumber string, lines []calc.Line, now time.Time) []domain.BillItem {
	items := make([]domain.BillItem, 0, len(lines))
	for i, line := range lines {
		items = append(items, domain.BillItem{
			ID:              genID.Generate(),
			BillNumber:      billNumber,
			Position:        i,
			Category:        line.Category,
			Quantity:        line.Quantity,
			MRP:             line.MRP,
			DiscountPercent: line.DiscountPercent,
			Rate:            line.Rate,
			Amount:          line.Amount,
			CreatedAt:       now,
		})
	}
	return items
}
