package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"pacsbooking/internal/domain"
)

// Request types accepted from the app.
var requestTypes = map[string]bool{
	"fertilizer":  true,
	"seed":        true,
	"loan":        true,
	"procurement": true,
}

type directoryService struct {
	centerRepo  domain.CenterRepository
	requestRepo domain.ServiceRequestRepository
}

// NewDirectoryService serves PACS centers, scheme eligibility, and queued
// service requests.
func NewDirectoryService(centerRepo domain.CenterRepository, requestRepo domain.ServiceRequestRepository) domain.DirectoryService {
	return &directoryService{centerRepo: centerRepo, requestRepo: requestRepo}
}

func (s *directoryService) ListCenters(ctx context.Context, district string) ([]*domain.Center, error) {
	centers, err := s.centerRepo.List(ctx, strings.TrimSpace(district))
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	return centers, nil
}

// ListEligibleSchemes returns the scheme catalog. Eligibility rules are not
// implemented yet; every farmer currently sees the full list.
func (s *directoryService) ListEligibleSchemes(ctx context.Context, userID string) ([]*domain.Scheme, error) {
	return []*domain.Scheme{
		{ID: "pm-kisan", Title: "PM Kisan Samman Nidhi"},
	}, nil
}

func (s *directoryService) SubmitRequest(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	reqType := strings.TrimSpace(strings.ToLower(req.Type))
	if !requestTypes[reqType] {
		return nil, fmt.Errorf("%w: unknown request type %q", domain.ErrInvalidInput, req.Type)
	}
	req.Type = reqType
	req.ID = "REQ" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	req.Status = domain.RequestStatusQueued
	req.CreatedAt = time.Now()

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}
	return req, nil
}
