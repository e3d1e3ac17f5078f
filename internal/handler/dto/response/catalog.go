package response

import (
	"time"

	"clinic-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BranchResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Phone    *string   `json:"phone,omitempty"`
	IsActive bool      `json:"isActive"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branchId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       int64     `json:"price"`
	DurationMin int32     `json:"durationMin"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromBranchView(view *queries.BranchView) *BranchResponse {
	var resp BranchResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBranchViews(views []*queries.BranchView) []*BranchResponse {
	resps := make([]*BranchResponse, 0, len(views))
	for _, view := range views {
		resps = append(resps, FromBranchView(view))
	}
	return resps
}

func FromServiceView(view *queries.ServiceView) *ServiceResponse {
	var resp ServiceResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromServiceViews(views []*queries.ServiceView) []*ServiceResponse {
	resps := make([]*ServiceResponse, 0, len(views))
	for _, view := range views {
		resps = append(resps, FromServiceView(view))
	}
	return resps
}
