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

// AnalyticsService returns types.Document values because the backend does not
// publish response schemas for these endpoints.
type AnalyticsService struct {
	api *api.Client
}

func NewAnalyticsService(c *api.Client) *AnalyticsService {
	return &AnalyticsService{api: c}
}

type ExportFormat string

const (
	EXPORT_CSV ExportFormat = "csv"
	EXPORT_PDF ExportFormat = "pdf"
)

func (s *AnalyticsService) Utilization(ctx context.Context, filters *types.UtilizationQueryFilters) (*types.Document, error) {
	return s.document(ctx, "/analytics/utilization"+utils.QueryString(filters.Values()))
}

func (s *AnalyticsService) Trends(ctx context.Context, filters *types.TrendsQueryFilters) (*types.Document, error) {
	return s.document(ctx, "/analytics/trends"+utils.QueryString(filters.Values()))
}

func (s *AnalyticsService) Efficiency(ctx context.Context, filters *types.EfficiencyQueryFilters) (*types.Document, error) {
	return s.document(ctx, "/analytics/efficiency"+utils.QueryString(filters.Values()))
}

// Report is the executive reporting endpoint. Admin only.
func (s *AnalyticsService) Report(ctx context.Context, filters *types.ReportQueryFilters) (*types.Document, error) {
	return s.document(ctx, "/admin/analytics/report"+utils.QueryString(filters.Values()))
}

// Export downloads analytics data as csv or pdf. Admin only. Returns the raw
// bytes and the content type reported by the backend.
func (s *AnalyticsService) Export(ctx context.Context, format ExportFormat, filters *types.ExportQueryFilters) ([]byte, string, error) {
	if format != EXPORT_CSV && format != EXPORT_PDF {
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
	values := url.Values{}
	values.Set("format", string(format))
	if filters != nil {
		utils.SetString(values, "type", filters.Type)
		utils.SetString(values, "startDate", filters.StartDate)
		utils.SetString(values, "endDate", filters.EndDate)
	}
	return s.api.GetRaw(ctx, "/admin/analytics/export"+utils.QueryString(values))
}

func (s *AnalyticsService) document(ctx context.Context, endpoint string) (*types.Document, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return types.NewDocument(raw), nil
}
