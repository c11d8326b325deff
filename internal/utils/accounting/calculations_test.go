package accounting

import (
	"testing"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		movementType domain.MovementType
		want         int64
	}{
		{domain.Income, 1},
		{domain.Receivable, 1},
		{domain.Expense, -1},
		{domain.Payable, -1},
	}
	for _, tt := range tests {
		t.Run(string(tt.movementType), func(t *testing.T) {
			got, err := Direction(tt.movementType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Direction("transfer")
	assert.Error(t, err)
}

func TestDelta(t *testing.T) {
	amount := decimal.RequireFromString("1500.50")

	add, err := Delta(domain.Income, amount, Add)
	require.NoError(t, err)
	assert.True(t, add.Equal(amount), "income add should be positive, got %s", add)

	sub, err := Delta(domain.Income, amount, Subtract)
	require.NoError(t, err)
	assert.True(t, sub.Equal(amount.Neg()), "income subtract should be negative, got %s", sub)

	exp, err := Delta(domain.Expense, amount, Add)
	require.NoError(t, err)
	assert.True(t, exp.Equal(amount.Neg()))

	rev, err := Delta(domain.Payable, amount, Subtract)
	require.NoError(t, err)
	assert.True(t, rev.Equal(amount))

	// Applying and reversing the same movement nets to zero.
	assert.True(t, add.Add(sub).IsZero())
}

func TestSignedSum(t *testing.T) {
	movements := []domain.Movement{
		{MovementID: "m1", MovementType: domain.Income, Amount: decimal.NewFromInt(1000), IsActive: true},
		{MovementID: "m2", MovementType: domain.Expense, Amount: decimal.NewFromInt(250), IsActive: true},
		{MovementID: "m3", MovementType: domain.Receivable, Amount: decimal.RequireFromString("0.75"), IsActive: true},
		{MovementID: "m4", MovementType: domain.Income, Amount: decimal.NewFromInt(9999), IsActive: false},
	}

	sum, err := SignedSum(movements)
	require.NoError(t, err)
	assert.Equal(t, "750.75", sum.StringFixed(2))

	empty, err := SignedSum(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = SignedSum([]domain.Movement{{MovementID: "bad", MovementType: "bogus", Amount: decimal.NewFromInt(1), IsActive: true}})
	assert.Error(t, err)
}
