package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/types"
	"github.com/kaushalkahapola/smart-campus/src/utils"
)

// AIService wraps the recommendation and prediction endpoints. Responses are
// dynamic documents for the same reason as analytics.
type AIService struct {
	api *api.Client
}

func NewAIService(c *api.Client) *AIService {
	return &AIService{api: c}
}

func (s *AIService) RecommendResources(ctx context.Context, req *types.RecommendResourcesRequest) (*types.Document, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/ai/recommend/resources", req, &raw); err != nil {
		return nil, err
	}
	return types.NewDocument(raw), nil
}

func (s *AIService) RecommendTimes(ctx context.Context, req *types.RecommendTimesRequest) (*types.Document, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/ai/recommend/times", req, &raw); err != nil {
		return nil, err
	}
	return types.NewDocument(raw), nil
}

// UserPatterns analyzes usage for the given user, or the current user when
// userID is empty.
func (s *AIService) UserPatterns(ctx context.Context, userID string) (*types.Document, error) {
	endpoint := "/ai/analytics/user"
	if userID != "" {
		endpoint += "/" + userID
	}
	var raw json.RawMessage
	if err := s.api.Get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return types.NewDocument(raw), nil
}

func (s *AIService) PredictResource(ctx context.Context, resourceID string, daysAhead int) (*types.Document, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	return s.daysEndpoint(ctx, "/ai/predict/resource/"+resourceID, daysAhead)
}

func (s *AIService) DetectAnomalies(ctx context.Context, resourceID string, days int) (*types.Document, error) {
	if days <= 0 {
		days = 30
	}
	return s.daysEndpoint(ctx, "/ai/anomaly/resource/"+resourceID, days)
}

func (s *AIService) daysEndpoint(ctx context.Context, endpoint string, days int) (*types.Document, error) {
	values := url.Values{}
	values.Set("days", fmt.Sprintf("%d", days))
	var raw json.RawMessage
	if err := s.api.Get(ctx, endpoint+utils.QueryString(values), &raw); err != nil {
		return nil, err
	}
	return types.NewDocument(raw), nil
}
