package services

import (
	"context"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
	"github.com/kaushalkahapola/smart-campus/src/utils"
)

type UserService struct {
	api *api.Client
}

func NewUserService(c *api.Client) *UserService {
	return &UserService{api: c}
}

type UserList struct {
	Users      []models.User `json:"users"`
	TotalCount int           `json:"totalCount"`
}

func (s *UserService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.api.Get(ctx, "/users/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) UpdateMe(ctx context.Context, body *types.UpdateUserRequestBody) (*models.User, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.User
	if err := s.api.Put(ctx, "/users/me", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, filters *types.UserQueryFilters) (*UserList, error) {
	var out UserList
	if err := s.api.Get(ctx, "/admin/users"+utils.QueryString(filters.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Create(ctx context.Context, body *types.CreateUserRequestBody) (*models.User, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.User
	if err := s.api.Post(ctx, "/admin/users", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, id string, body *types.UpdateUserRequestBody) (*models.User, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.User
	if err := s.api.Put(ctx, "/admin/users/"+id, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/admin/users/"+id, nil)
}

// SetActive activates or deactivates an account. Users are never hard-deleted
// through this path.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	var out models.User
	body := map[string]any{"isActive": active}
	if err := s.api.Put(ctx, "/admin/users/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
