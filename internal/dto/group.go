package dto

import (
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
)

// GroupRequest defines the data needed to create or rename a group.
type GroupRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=2,max=100"`
}

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID       string    `json:"groupID"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// GroupDependentsResponse reports how many active accounts reference a group.
type GroupDependentsResponse struct {
	GroupID        string `json:"groupID"`
	LinkedAccounts int64  `json:"linkedAccounts"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:       g.GroupID,
		Name:          g.Name,
		CreatedAt:     g.CreatedAt,
		LastUpdatedAt: g.LastUpdatedAt,
	}
}

// ToGroupResponses converts a slice of domain.Group
func ToGroupResponses(groups []domain.Group) []GroupResponse {
	res := make([]GroupResponse, len(groups))
	for i := range groups {
		res[i] = ToGroupResponse(&groups[i])
	}
	return res
}
