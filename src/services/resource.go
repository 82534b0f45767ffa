package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
	"github.com/kaushalkahapola/smart-campus/src/utils"
)

type ResourceService struct {
	api *api.Client
}

func NewResourceService(c *api.Client) *ResourceService {
	return &ResourceService{api: c}
}

type ResourceList struct {
	Resources  []models.Resource `json:"resources"`
	TotalCount int               `json:"totalCount"`
}

func (s *ResourceService) List(ctx context.Context, filters *types.ResourceQueryFilters) (*ResourceList, error) {
	var out ResourceList
	if err := s.api.Get(ctx, "/resources"+utils.QueryString(filters.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	var out models.Resource
	if err := s.api.Get(ctx, "/resources/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type availabilityParams struct {
	StartDate string `validate:"required,dateonly"`
	EndDate   string `validate:"required,dateonly"`
}

// Availability fetches the computed per-day slot map for a resource. Dates
// are inclusive YYYY-MM-DD bounds.
func (s *ResourceService) Availability(ctx context.Context, id, startDate, endDate string) ([]models.ResourceAvailability, error) {
	if err := validate.Struct(&availabilityParams{StartDate: startDate, EndDate: endDate}); err != nil {
		return nil, fmt.Errorf("availability dates: %w", err)
	}
	values := url.Values{}
	values.Set("startDate", startDate)
	values.Set("endDate", endDate)
	var out []models.ResourceAvailability
	if err := s.api.Get(ctx, "/resources/"+id+"/availability"+utils.QueryString(values), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a resource. Staff or admin only; the backend enforces the role,
// the client only validates the shape.
func (s *ResourceService) Create(ctx context.Context, body *types.CreateResourceRequestBody) (*models.Resource, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.Resource
	if err := s.api.Post(ctx, "/resources", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, body *types.UpdateResourceRequestBody) (*models.Resource, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.Resource
	if err := s.api.Put(ctx, "/resources/"+id, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/resources/"+id, nil)
}

func (s *ResourceService) UpdateStatus(ctx context.Context, id string, status models.ResourceStatus) (*models.Resource, error) {
	var out models.Resource
	body := map[string]any{"status": status}
	if err := s.api.Put(ctx, "/resources/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
