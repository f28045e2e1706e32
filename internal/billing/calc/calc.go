// Package calc derives invoice figures from raw line items.
//
// Every function here is PURE:
// - No side effects
// - No I/O
// - Same inputs produce bit-identical outputs
//
// No currency rounding happens in this package. Formatting to fixed decimal
// places is a presentation concern; deriving further figures from rounded
// values would compound the error across the totals → tax → balance chain.
package calc

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidDiscount = errors.New("discount must be within [0,100]")
	ErrInvalidMRP      = errors.New("mrp must be non-negative")
	ErrInvalidTaxRate  = errors.New("tax rate must be non-negative")
)

// InvalidInput reports whether err belongs to the input-validation family.
func InvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrInvalidMRP) ||
		errors.Is(err, ErrInvalidTaxRate)
}

// LineInput is one raw operator-entered line.
type LineInput struct {
	Category        string
	Quantity        int
	MRP             float64
	DiscountPercent float64
}

// Line is a LineInput with its derived unit rate and line amount.
type Line struct {
	LineInput
	Rate   float64
	Amount float64
}

// Totals are the aggregate figures across all lines.
// Invariant: TotalAmount == TotalDiscount + NetAmount exactly, because
// TotalDiscount is derived from the other two rather than summed separately.
type Totals struct {
	TotalAmount   float64
	TotalDiscount float64
	NetAmount     float64
}

// TaxBreakdown splits the tax-inclusive net amount into its taxable base and
// tax, with the tax itself split into two equal halves (CGST/SGST).
type TaxBreakdown struct {
	TaxableAmount float64
	TaxAmount     float64
	CGST          float64
	SGST          float64
}

// Balance relates the net amount to what the customer paid. BalanceAmount may
// be negative (overpayment); it is not clamped.
type Balance struct {
	AmountPaid    float64
	BalanceAmount float64
}

// Result is the full derived figure set for one invoice.
type Result struct {
	Lines   []Line
	Totals  Totals
	Tax     TaxBreakdown
	Balance Balance
	TaxRate float64
}

// ValidateLine checks one raw line against the input constraints.
func ValidateLine(in LineInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	if in.MRP < 0 {
		return ErrInvalidMRP
	}
	return nil
}

// DeriveLine computes the unit rate and line amount for one validated line.
// A zero discount leaves the rate equal to the MRP with no rounding drift.
func DeriveLine(in LineInput) Line {
	rate := in.MRP
	if in.DiscountPercent > 0 {
		rate = in.MRP * (1 - in.DiscountPercent/100)
	}
	return Line{
		LineInput: in,
		Rate:      rate,
		Amount:    rate * float64(in.Quantity),
	}
}

// Compute derives the full figure set. Validation failures surface before any
// aggregate is computed; no partial result is returned.
func Compute(items []LineInput, taxRate, amountPaid float64) (Result, error) {
	if taxRate < 0 {
		return Result{}, ErrInvalidTaxRate
	}
	for _, in := range items {
		if err := ValidateLine(in); err != nil {
			return Result{}, err
		}
	}

	lines := make([]Line, 0, len(items))
	var totalAmount, netAmount float64
	for _, in := range items {
		line := DeriveLine(in)
		lines = append(lines, line)
		totalAmount += in.MRP * float64(in.Quantity)
		netAmount += line.Amount
	}

	// Divisor is >= 1 for any non-negative rate, so no division by zero.
	taxable := netAmount / (1 + taxRate/100)
	tax := netAmount - taxable

	return Result{
		Lines: lines,
		Totals: Totals{
			TotalAmount:   totalAmount,
			TotalDiscount: totalAmount - netAmount,
			NetAmount:     netAmount,
		},
		Tax: TaxBreakdown{
			TaxableAmount: taxable,
			TaxAmount:     tax,
			CGST:          tax / 2,
			SGST:          tax / 2,
		},
		Balance: Balance{
			AmountPaid:    amountPaid,
			BalanceAmount: netAmount - amountPaid,
		},
		TaxRate: taxRate,
	}, nil
}
