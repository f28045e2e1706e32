package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestCompute_SingleDiscountedItem(t *testing.T) {
	items := []LineInput{
		{Category: "Lehenga", Quantity: 1, MRP: 1000, DiscountPercent: 10},
	}

	res, err := Compute(items, 5, 0)
	require.NoError(t, err)

	require.Len(t, res.Lines, 1)
	assert.InDelta(t, 900, res.Lines[0].Rate, epsilon)
	assert.InDelta(t, 900, res.Lines[0].Amount, epsilon)

	assert.InDelta(t, 1000, res.Totals.TotalAmount, epsilon)
	assert.InDelta(t, 100, res.Totals.TotalDiscount, epsilon)
	assert.InDelta(t, 900, res.Totals.NetAmount, epsilon)

	assert.InDelta(t, 900.0/1.05, res.Tax.TaxableAmount, epsilon)
	assert.InDelta(t, 900-900.0/1.05, res.Tax.TaxAmount, epsilon)
	assert.InDelta(t, res.Tax.TaxAmount/2, res.Tax.CGST, epsilon)
	assert.InDelta(t, res.Tax.TaxAmount/2, res.Tax.SGST, epsilon)

	assert.InDelta(t, 900, res.Balance.BalanceAmount, epsilon)
}

func TestCompute_TwoItemsMixedDiscount(t *testing.T) {
	items := []LineInput{
		{Category: "Saree", Quantity: 1, MRP: 500, DiscountPercent: 0},
		{Category: "Saree", Quantity: 3, MRP: 500, DiscountPercent: 20},
	}

	res, err := Compute(items, 5, 0)
	require.NoError(t, err)

	assert.InDelta(t, 500, res.Lines[0].Amount, epsilon)
	assert.InDelta(t, 1200, res.Lines[1].Amount, epsilon)
	assert.InDelta(t, 2000, res.Totals.TotalAmount, epsilon)
	assert.InDelta(t, 1700, res.Totals.NetAmount, epsilon)
	assert.InDelta(t, 300, res.Totals.TotalDiscount, epsilon)
}

func TestCompute_TotalsIdentity(t *testing.T) {
	cases := [][]LineInput{
		{},
		{{Quantity: 2, MRP: 999.99, DiscountPercent: 12.5}},
		{
			{Quantity: 1, MRP: 0.01, DiscountPercent: 100},
			{Quantity: 7, MRP: 12345.67, DiscountPercent: 33.33},
			{Quantity: 3, MRP: 42, DiscountPercent: 0},
		},
	}

	for _, items := range cases {
		res, err := Compute(items, 18, 50)
		require.NoError(t, err)

		assert.InDelta(t, res.Totals.TotalAmount, res.Totals.TotalDiscount+res.Totals.NetAmount, epsilon)
		assert.InDelta(t, res.Totals.NetAmount, res.Tax.TaxableAmount+res.Tax.TaxAmount, epsilon)
		assert.InDelta(t, res.Tax.TaxAmount/2, res.Tax.CGST, epsilon)
		assert.InDelta(t, res.Tax.TaxAmount/2, res.Tax.SGST, epsilon)
		assert.InDelta(t, res.Totals.NetAmount-50, res.Balance.BalanceAmount, epsilon)
	}
}

func TestCompute_ZeroItems(t *testing.T) {
	res, err := Compute(nil, 5, 0)
	require.NoError(t, err)

	assert.Zero(t, res.Totals.TotalAmount)
	assert.Zero(t, res.Totals.NetAmount)
	assert.Zero(t, res.Totals.TotalDiscount)
	assert.Zero(t, res.Tax.TaxableAmount)
	assert.Zero(t, res.Tax.TaxAmount)
	assert.Zero(t, res.Balance.BalanceAmount)
}

func TestCompute_Deterministic(t *testing.T) {
	items := []LineInput{
		{Quantity: 3, MRP: 1234.56, DiscountPercent: 17.5},
		{Quantity: 1, MRP: 10, DiscountPercent: 0},
	}

	a, err := Compute(items, 12, 100)
	require.NoError(t, err)
	b, err := Compute(items, 12, 100)
	require.NoError(t, err)

	// Bit-identical, not merely within epsilon.
	assert.Equal(t, a, b)
}

func TestDeriveLine_DiscountBoundaries(t *testing.T) {
	zero := DeriveLine(LineInput{Quantity: 2, MRP: 750.25, DiscountPercent: 0})
	assert.Equal(t, 750.25, zero.Rate)
	assert.Equal(t, 1500.50, zero.Amount)

	full := DeriveLine(LineInput{Quantity: 4, MRP: 750.25, DiscountPercent: 100})
	assert.InDelta(t, 0, full.Rate, epsilon)
	assert.InDelta(t, 0, full.Amount, epsilon)
}

func TestCompute_Overpayment(t *testing.T) {
	items := []LineInput{{Quantity: 1, MRP: 100, DiscountPercent: 0}}

	res, err := Compute(items, 0, 250)
	require.NoError(t, err)

	assert.InDelta(t, -150, res.Balance.BalanceAmount, epsilon)
}

func TestCompute_ZeroTaxRate(t *testing.T) {
	items := []LineInput{{Quantity: 1, MRP: 100, DiscountPercent: 0}}

	res, err := Compute(items, 0, 0)
	require.NoError(t, err)

	assert.InDelta(t, 100, res.Tax.TaxableAmount, epsilon)
	assert.Zero(t, res.Tax.TaxAmount)
}

func TestCompute_InvalidInput(t *testing.T) {
	valid := LineInput{Category: "Saree", Quantity: 1, MRP: 100, DiscountPercent: 10}

	tests := []struct {
		name    string
		items   []LineInput
		taxRate float64
		wantErr error
	}{
		{"zero quantity", []LineInput{{Quantity: 0, MRP: 100}}, 5, ErrInvalidQuantity},
		{"negative quantity", []LineInput{{Quantity: -1, MRP: 100}}, 5, ErrInvalidQuantity},
		{"discount above 100", []LineInput{{Quantity: 1, MRP: 100, DiscountPercent: 101}}, 5, ErrInvalidDiscount},
		{"negative discount", []LineInput{{Quantity: 1, MRP: 100, DiscountPercent: -5}}, 5, ErrInvalidDiscount},
		{"negative mrp", []LineInput{{Quantity: 1, MRP: -10}}, 5, ErrInvalidMRP},
		{"negative tax rate", []LineInput{valid}, -1, ErrInvalidTaxRate},
		{"second line invalid", []LineInput{valid, {Quantity: 0, MRP: 10}}, 5, ErrInvalidQuantity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Compute(tc.items, tc.taxRate, 0)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, InvalidInput(err))
			assert.Equal(t, Result{}, res, "no partial result on invalid input")
		})
	}
}
