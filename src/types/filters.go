package types

import (
	"net/url"

	"github.com/kaushalkahapola/smart-campus/src/utils"
)

// Query filters encode to url.Values with unset fields omitted. The only key
// that may repeat is features, added once per element.

type ResourceQueryFilters struct {
	Type     string
	Building string
	Capacity int
	Features []string
	Status   string
	Page     int
	Limit    int
	Search   string
}

func (f *ResourceQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetString(values, "type", f.Type)
	utils.SetString(values, "building", f.Building)
	utils.SetInt(values, "capacity", f.Capacity)
	utils.SetString(values, "status", f.Status)
	utils.SetInt(values, "page", f.Page)
	utils.SetInt(values, "limit", f.Limit)
	utils.SetString(values, "search", f.Search)
	utils.AddAll(values, "features", f.Features)
	return values
}

type BookingQueryFilters struct {
	Page       int
	Limit      int
	Status     string
	StartDate  string
	EndDate    string
	UserID     string
	ResourceID string
}

func (f *BookingQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetInt(values, "page", f.Page)
	utils.SetInt(values, "limit", f.Limit)
	utils.SetString(values, "status", f.Status)
	utils.SetString(values, "startDate", f.StartDate)
	utils.SetString(values, "endDate", f.EndDate)
	utils.SetString(values, "userId", f.UserID)
	utils.SetString(values, "resourceId", f.ResourceID)
	return values
}

type NotificationQueryFilters struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

func (f *NotificationQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetInt(values, "page", f.Page)
	utils.SetInt(values, "limit", f.Limit)
	utils.SetBool(values, "unreadOnly", f.UnreadOnly)
	return values
}

type UserQueryFilters struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

func (f *UserQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetInt(values, "page", f.Page)
	utils.SetInt(values, "limit", f.Limit)
	utils.SetString(values, "search", f.Search)
	utils.SetString(values, "role", f.Role)
	return values
}

type UtilizationQueryFilters struct {
	ResourceID  string
	StartDate   string
	EndDate     string
	Granularity string
}

func (f *UtilizationQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetString(values, "resourceId", f.ResourceID)
	utils.SetString(values, "startDate", f.StartDate)
	utils.SetString(values, "endDate", f.EndDate)
	utils.SetString(values, "granularity", f.Granularity)
	return values
}

type TrendsQueryFilters struct {
	ResourceID  string
	UserID      string
	StartDate   string
	EndDate     string
	Granularity string
}

func (f *TrendsQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetString(values, "resourceId", f.ResourceID)
	utils.SetString(values, "userId", f.UserID)
	utils.SetString(values, "startDate", f.StartDate)
	utils.SetString(values, "endDate", f.EndDate)
	utils.SetString(values, "granularity", f.Granularity)
	return values
}

type EfficiencyQueryFilters struct {
	UserID     string
	ResourceID string
	StartDate  string
	EndDate    string
}

func (f *EfficiencyQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetString(values, "userId", f.UserID)
	utils.SetString(values, "resourceId", f.ResourceID)
	utils.SetString(values, "startDate", f.StartDate)
	utils.SetString(values, "endDate", f.EndDate)
	return values
}

type ReportQueryFilters struct {
	StartDate  string
	EndDate    string
	Department string
}

func (f *ReportQueryFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	utils.SetString(values, "startDate", f.StartDate)
	utils.SetString(values, "endDate", f.EndDate)
	utils.SetString(values, "department", f.Department)
	return values
}

type ExportQueryFilters struct {
	Type      string
	StartDate string
	EndDate   string
}

// RecommendResourcesRequest asks the AI endpoint for resources matching the
// user's habits and constraints.
type RecommendResourcesRequest struct {
	UserID       string   `json:"userId,omitempty"`
	ResourceType string   `json:"resourceType,omitempty"`
	Capacity     int      `json:"capacity,omitempty"`
	Features     []string `json:"features,omitempty"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
}

type RecommendTimesRequest struct {
	UserID     string `json:"userId,omitempty"`
	ResourceID string `json:"resourceId" validate:"required"`
	Duration   int    `json:"duration" validate:"required,gt=0"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}
