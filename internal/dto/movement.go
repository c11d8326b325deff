package dto

import (
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// MovementRequest carries the full field set of a movement. Updates are full replacements,
// so the same shape is used for create and update.
type MovementRequest struct {
	AccountID       string                `json:"accountID" validate:"required"`
	Type            domain.MovementType   `json:"type" validate:"required,oneof=income expense receivable payable"`
	Amount          decimal.Decimal       `json:"amount" validate:"-"`
	Description     string                `json:"description" validate:"max=1000"`
	ReferenceNumber string                `json:"referenceNumber" validate:"max=100"`
	TransactionDate string                `json:"transactionDate" validate:"required,datetime=2006-01-02"`
	DueDate         string                `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod" validate:"omitempty,oneof=cash bank_transfer check credit_card"`
	Status          domain.MovementStatus `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
}

// MovementFilterParams is the raw query-string form of a movement filter.
// It is converted once into a domain.MovementFilter at the HTTP boundary.
type MovementFilterParams struct {
	AccountID     string `form:"accountID"`
	Type          string `form:"type" binding:"omitempty,oneof=income expense receivable payable"`
	MinAmount     string `form:"minAmount"`
	MaxAmount     string `form:"maxAmount"`
	StartDate     string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Search        string `form:"search"`
	Status        string `form:"status" binding:"omitempty,oneof=completed pending cancelled"`
	PaymentMethod string `form:"paymentMethod" binding:"omitempty,oneof=cash bank_transfer check credit_card"`
	Limit         int    `form:"limit,default=100" binding:"min=0"`
	Offset        int    `form:"offset,default=0" binding:"min=0"`
}

// ListByAccountParams defines query parameters for cursor-paginated account movements.
type ListByAccountParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=0"`
	NextToken *string `form:"nextToken"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID      string                `json:"movementID"`
	AccountID       string                `json:"accountID"`
	AccountName     string                `json:"accountName,omitempty"`
	Type            domain.MovementType   `json:"type"`
	Amount          decimal.Decimal       `json:"amount"`
	Description     string                `json:"description,omitempty"`
	ReferenceNumber string                `json:"referenceNumber,omitempty"`
	TransactionDate string                `json:"transactionDate"`
	DueDate         *string               `json:"dueDate,omitempty"`
	PaymentMethod   domain.PaymentMethod  `json:"paymentMethod"`
	Status          domain.MovementStatus `json:"status"`
	IsActive        bool                  `json:"isActive"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
}

// ListMovementsByAccountResponse is one cursor page of an account's movements.
type ListMovementsByAccountResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	resp := MovementResponse{
		MovementID:      m.MovementID,
		AccountID:       m.AccountID,
		AccountName:     m.AccountName,
		Type:            m.MovementType,
		Amount:          m.Amount,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		TransactionDate: m.TransactionDate.Format(DateLayout),
		PaymentMethod:   m.PaymentMethod,
		Status:          m.Status,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
		LastUpdatedAt:   m.LastUpdatedAt,
		LastUpdatedBy:   m.LastUpdatedBy,
	}
	if m.DueDate != nil {
		due := m.DueDate.Format(DateLayout)
		resp.DueDate = &due
	}
	return resp
}

// ToMovementResponses converts a slice of domain.Movement to []MovementResponse.
func ToMovementResponses(movements []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return res
}
