package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMapping_NullableColumns(t *testing.T) {
	acc := domain.Account{AccountID: "a1", Name: "Ahmet", Balance: decimal.NewFromInt(5), AccountType: domain.Both}

	m := ToModelAccount(acc)
	assert.Nil(t, m.Code)
	assert.Nil(t, m.GroupID)
	assert.Equal(t, "both", m.AccountType)

	acc.Code = "C1"
	acc.GroupID = "g1"
	m = ToModelAccount(acc)
	if assert.NotNil(t, m.Code) && assert.NotNil(t, m.GroupID) {
		assert.Equal(t, "C1", *m.Code)
		assert.Equal(t, "g1", *m.GroupID)
	}
	assert.Equal(t, acc, ToDomainAccount(m))
}

func TestMovementMapping_ReferenceAndDueDate(t *testing.T) {
	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	mv := domain.Movement{
		MovementID:      "m1",
		AccountID:       "a1",
		MovementType:    domain.Payable,
		Amount:          decimal.RequireFromString("12.34"),
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         &due,
		PaymentMethod:   domain.Check,
		Status:          domain.Pending,
		IsActive:        true,
	}

	m := ToModelMovement(mv)
	assert.Nil(t, m.ReferenceNumber)
	assert.Equal(t, "payable", m.MovementType)

	back := ToDomainMovement(m)
	assert.Equal(t, mv, back)
	assert.Equal(t, "", back.ReferenceNumber)
}
