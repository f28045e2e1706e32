package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertBill(ctx context.Context, db *gorm.DB, bill *Bill) error
	InsertItems(ctx context.Context, db *gorm.DB, items []BillItem) error
	FindByNumber(ctx context.Context, db *gorm.DB, billNumber string) (*Bill, error)
	ListItems(ctx context.Context, db *gorm.DB, billNumber string) ([]BillItem, error)
	List(ctx context.Context, db *gorm.DB) ([]Bill, error)
}
