// Package domain contains persistence models for retail bills.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentMode is how the customer settled the bill.
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeCard PaymentMode = "Card"
	PaymentModeUPI  PaymentMode = "UPI"
)

// Bill is one finalized sale. Amounts are stored as raw decimals; display
// strings are produced only at the render/display boundary.
type Bill struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BillNumber string       `gorm:"type:text;not null;uniqueIndex:ux_bills_bill_number" json:"billNumber"`
	BillDate   time.Time    `gorm:"not null" json:"date"`

	CustomerName  string      `gorm:"type:text;not null" json:"name"`
	CustomerPhone string      `gorm:"type:text;not null" json:"phone"`
	CustomerEmail string      `gorm:"type:text" json:"email"`
	PaymentMode   PaymentMode `gorm:"type:text;not null;default:'Cash'" json:"paymentMode"`

	TotalAmount   float64 `gorm:"not null" json:"totalAmount"`
	TotalDiscount float64 `gorm:"not null" json:"totalDiscount"`
	NetAmount     float64 `gorm:"not null" json:"netAmount"`

	TaxRate       float64 `gorm:"not null" json:"taxRate"`
	TaxableAmount float64 `gorm:"not null" json:"taxableAmount"`
	TaxAmount     float64 `gorm:"not null" json:"taxAmount"`

	AmountPaid    float64 `gorm:"not null" json:"amountPaid"`
	BalanceAmount float64 `gorm:"not null" json:"balanceAmount"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"-"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`

	Items []BillItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Bill) TableName() string { return "bills" }

// CGST returns the central half of the tax amount.
func (b Bill) CGST() float64 { return b.TaxAmount / 2 }

// SGST returns the state half of the tax amount.
func (b Bill) SGST() float64 { return b.TaxAmount / 2 }

// BillItem is one line on a bill, keyed back by bill number.
type BillItem struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BillNumber string       `gorm:"type:text;not null;index" json:"billNumber"`
	Position   int          `gorm:"not null" json:"-"`

	Category        string  `gorm:"type:text;not null" json:"category"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	MRP             float64 `gorm:"not null" json:"mrp"`
	DiscountPercent float64 `gorm:"not null" json:"discount"`
	Rate            float64 `gorm:"not null" json:"rate"`
	Amount          float64 `gorm:"not null" json:"amount"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (BillItem) TableName() string { return "bill_items" }
