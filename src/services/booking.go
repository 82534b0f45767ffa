package services

import (
	"context"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
	"github.com/kaushalkahapola/smart-campus/src/utils"
)

type BookingService struct {
	api *api.Client
}

func NewBookingService(c *api.Client) *BookingService {
	return &BookingService{api: c}
}

type BookingList struct {
	Bookings   []models.Booking `json:"bookings"`
	TotalCount int              `json:"totalCount"`
}

// WaitlistEntry is the backend's acknowledgement of a waitlist join.
type WaitlistEntry struct {
	ID         string `json:"id"`
	ResourceID string `json:"resourceId"`
	Position   int    `json:"position"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Create books a resource slot. The new booking always comes back in status
// pending; confirmation is a staff/admin transition.
func (s *BookingService) Create(ctx context.Context, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.Booking
	if err := s.api.Post(ctx, "/bookings", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BookingService) ListMine(ctx context.Context, filters *types.BookingQueryFilters) (*BookingList, error) {
	var out BookingList
	if err := s.api.Get(ctx, "/bookings"+utils.QueryString(filters.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	var out models.Booking
	if err := s.api.Get(ctx, "/bookings/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BookingService) Update(ctx context.Context, id string, body *types.UpdateBookingRequestBody) (*models.Booking, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out models.Booking
	if err := s.api.Put(ctx, "/bookings/"+id, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel moves a booking to cancelled. Owners can cancel their own bookings,
// staff and admin anyone's.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	var out models.Booking
	if err := s.api.Put(ctx, "/bookings/"+id+"/cancel", map[string]any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BookingService) JoinWaitlist(ctx context.Context, body *types.JoinWaitlistRequestBody) (*WaitlistEntry, error) {
	if err := validate.Struct(body); err != nil {
		return nil, err
	}
	var out WaitlistEntry
	if err := s.api.Post(ctx, "/bookings/waitlist", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAll returns every booking in the system. Staff/admin only.
func (s *BookingService) ListAll(ctx context.Context, filters *types.BookingQueryFilters) (*BookingList, error) {
	var out BookingList
	if err := s.api.Get(ctx, "/admin/bookings"+utils.QueryString(filters.Values()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus is the admin override for the one-directional status machine.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	var out models.Booking
	body := map[string]any{"status": status}
	if err := s.api.Put(ctx, "/admin/bookings/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
