package services

import (
	"context"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
	"github.com/kaushalkahapola/smart-campus/src/utils"
)

type NotificationService struct {
	api *api.Client
}

func NewNotificationService(c *api.Client) *NotificationService {
	return &NotificationService{api: c}
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	TotalCount    int                   `json:"totalCount"`
}

type NotificationCount struct {
	Count int `json:"count"`
}

func (s *NotificationService) ListMine(ctx context.Context, filters *types.NotificationQueryFilters) (*NotificationList, error) {
	var out NotificationList
	if err := s.api.Get(ctx, "/notifications"+utils.QueryString(filters.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*models.Notification, error) {
	var out models.Notification
	if err := s.api.Put(ctx, "/notifications/"+id+"/read", map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAllAsRead returns how many notifications were newly read. Calling it
// again right away is a no-op returning zero.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) (*NotificationCount, error) {
	var out NotificationCount
	if err := s.api.Put(ctx, "/notifications/read-all", map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/notifications/"+id, nil)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (*NotificationCount, error) {
	var out NotificationCount
	if err := s.api.Get(ctx, "/notifications/unread-count", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
