package domain

import (
	"context"
	"time"
)

// Center is a PACS (Primary Agriculture Cooperative Society) service center.
// swagger:model Center
type Center struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Scheme is a government scheme a farmer may be eligible for.
// swagger:model Scheme
type Scheme struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CenterRepository defines storage operations for PACS centers.
type CenterRepository interface {
	List(ctx context.Context, district string) ([]*Center, error)
	GetByID(ctx context.Context, id string) (*Center, error)
}

// Service request statuses.
const (
	RequestStatusQueued = "queued"
)

// ServiceRequest is a queued fertilizer/loan/service request from a farmer.
// swagger:model ServiceRequest
type ServiceRequest struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	UserID        string    `json:"user_id"`
	Item          string    `json:"item,omitempty"`
	Qty           int       `json:"qty,omitempty"`
	PreferredDate string    `json:"preferred_date,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ServiceRequestRepository defines storage operations for service requests.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *ServiceRequest) error
	List(ctx context.Context, p PaginationParams) ([]*ServiceRequest, int, error)
}

// DirectoryService serves reference data and queued service requests.
type DirectoryService interface {
	ListCenters(ctx context.Context, district string) ([]*Center, error)
	ListEligibleSchemes(ctx context.Context, userID string) ([]*Scheme, error)
	SubmitRequest(ctx context.Context, req *ServiceRequest) (*ServiceRequest, error)
}
