package accounting

import (
	"fmt"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceOp selects whether a movement's contribution is applied or reversed.
type BalanceOp int

const (
	Add BalanceOp = iota
	Subtract
)

// Direction returns the sign a movement type contributes to an account balance.
// income/receivable -> +1, expense/payable -> -1.
func Direction(t domain.MovementType) (int64, error) {
	switch t {
	case domain.Income, domain.Receivable:
		return 1, nil
	case domain.Expense, domain.Payable:
		return -1, nil
	default:
		return 0, fmt.Errorf("unknown movement type '%s'", t)
	}
}

// Delta computes the signed balance change for a movement of the given type and amount.
// Subtract reverses the contribution that Add would make.
func Delta(t domain.MovementType, amount decimal.Decimal, op BalanceOp) (decimal.Decimal, error) {
	dir, err := Direction(t)
	if err != nil {
		return decimal.Zero, err
	}
	if op == Subtract {
		dir = -dir
	}
	return amount.Mul(decimal.NewFromInt(dir)), nil
}

// SignedSum returns the balance implied by a set of movements. Inactive movements are skipped.
func SignedSum(movements []domain.Movement) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range movements {
		if !m.IsActive {
			continue
		}
		d, err := Delta(m.MovementType, m.Amount, Add)
		if err != nil {
			return decimal.Zero, fmt.Errorf("movement %s: %w", m.MovementID, err)
		}
		sum = sum.Add(d)
	}
	return sum, nil
}
