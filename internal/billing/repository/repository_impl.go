package repository

import (
	"context"

	"github.com/adsretail/billdesk/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBill(ctx context.Context, db *gorm.DB, bill *domain.Bill) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bills (id, bill_number, bill_date, customer_name, customer_phone, customer_email,
		  payment_mode, total_amount, total_discount, net_amount, tax_rate, taxable_amount, tax_amount,
		  amount_paid, balance_amount, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID,
		bill.BillNumber,
		bill.BillDate,
		bill.CustomerName,
		bill.CustomerPhone,
		bill.CustomerEmail,
		bill.PaymentMode,
		bill.TotalAmount,
		bill.TotalDiscount,
		bill.NetAmount,
		bill.TaxRate,
		bill.TaxableAmount,
		bill.TaxAmount,
		bill.AmountPaid,
		bill.BalanceAmount,
		bill.Metadata,
		bill.CreatedAt,
	).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.BillItem) error {
	for i := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO bill_items (id, bill_number, position, category, quantity, mrp,
			  discount_percent, rate, amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			items[i].ID,
			items[i].BillNumber,
			items[i].Position,
			items[i].Category,
			items[i].Quantity,
			items[i].MRP,
			items[i].DiscountPercent,
			items[i].Rate,
			items[i].Amount,
			items[i].CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, billNumber string) (*domain.Bill, error) {
	var bill domain.Bill
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM bills WHERE bill_number = ?`,
		billNumber,
	).Scan(&bill).Error
	if err != nil {
		return nil, err
	}
	if bill.ID == 0 {
		return nil, nil
	}
	return &bill, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, billNumber string) ([]domain.BillItem, error) {
	var items []domain.BillItem
	err := db.WithContext(ctx).
		Model(&domain.BillItem{}).
		Where("bill_number = ?", billNumber).
		Order("position asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// List returns bills in storage order (oldest first); callers reverse for
// newest-first display.
func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := db.WithContext(ctx).
		Model(&domain.Bill{}).
		Order("created_at asc, id asc").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
