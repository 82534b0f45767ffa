package services

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kaushalkahapola/smart-campus/src/api"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/query"
	"github.com/kaushalkahapola/smart-campus/src/session"
	"github.com/kaushalkahapola/smart-campus/src/testfixtures"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

// IntegrationTestSuite runs the cache, the session and the services together
// against the fixture backend, asserting on actual network traffic.
type IntegrationTestSuite struct {
	suite.Suite
	backend *testfixtures.Backend
	server  *httptest.Server
	cache   *query.Client
	manager *session.Manager

	resources     *ResourceService
	bookings      *BookingService
	notifications *NotificationService
	users         *UserService
}

func (s *IntegrationTestSuite) SetupTest() {
	s.backend = testfixtures.NewBackend()
	s.server = s.backend.Server()
	s.manager = session.NewManager(session.StaticProvider{Info: &session.SessionInfo{
		SessionID:   "sess-test",
		AccessToken: testfixtures.TestToken,
	}})
	client := api.New(s.server.URL, api.WithTokenSource(s.manager))
	s.cache = query.NewClient(query.WithStaleTime(time.Minute))
	s.resources = NewResourceService(client)
	s.bookings = NewBookingService(client)
	s.notifications = NewNotificationService(client)
	s.users = NewUserService(client)

	s.Require().NoError(s.manager.Initialize(context.Background(), s.users))
}

func (s *IntegrationTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *IntegrationTestSuite) TestSessionBootstrapLoadsProfile() {
	s.True(s.manager.IsAuthenticated())
	s.Equal("jdoe", s.manager.CurrentUser().Username)
	s.Equal(1, s.backend.HitCount("GET /users/me"))
}

func (s *IntegrationTestSuite) TestCachedListAvoidsSecondRequest() {
	ctx := context.Background()
	fetch := func(ctx context.Context) (*ResourceList, error) {
		return s.resources.List(ctx, nil)
	}

	_, err := query.Fetch(ctx, s.cache, query.ResourceListKey(nil), fetch)
	s.NoError(err)
	_, err = query.Fetch(ctx, s.cache, query.ResourceListKey(nil), fetch)
	s.NoError(err)
	s.Equal(1, s.backend.HitCount("GET /resources"))
}

func (s *IntegrationTestSuite) TestConcurrentReadersShareOneRequest() {
	ctx := context.Background()
	s.backend.Delay = 50 * time.Millisecond
	fetch := func(ctx context.Context) (*ResourceList, error) {
		return s.resources.List(ctx, nil)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			list, err := query.Fetch(ctx, s.cache, query.ResourceListKey(nil), fetch)
			s.NoError(err)
			s.Equal(2, list.TotalCount)
		}()
	}
	wg.Wait()
	s.Equal(1, s.backend.HitCount("GET /resources"))
}

func (s *IntegrationTestSuite) TestTransientFailureRetriedOnce() {
	ctx := context.Background()
	s.backend.FailNextRequests("GET /resources", 1)

	list, err := query.Fetch(ctx, s.cache, query.ResourceListKey(nil), func(ctx context.Context) (*ResourceList, error) {
		return s.resources.List(ctx, nil)
	})
	s.NoError(err)
	s.Equal(2, list.TotalCount)
	s.Equal(2, s.backend.HitCount("GET /resources"))
}

func (s *IntegrationTestSuite) TestTwoFailuresSurface() {
	ctx := context.Background()
	s.backend.FailNextRequests("GET /resources", 2)

	_, err := query.Fetch(ctx, s.cache, query.ResourceListKey(nil), func(ctx context.Context) (*ResourceList, error) {
		return s.resources.List(ctx, nil)
	})
	s.Error(err)
	s.Equal(2, s.backend.HitCount("GET /resources"))
}

func (s *IntegrationTestSuite) TestBookingRoundTrip() {
	ctx := context.Background()
	listFetch := func(ctx context.Context) (*BookingList, error) {
		return s.bookings.ListMine(ctx, nil)
	}

	list, err := query.Fetch(ctx, s.cache, query.MyBookingsKey(nil), listFetch)
	s.NoError(err)
	s.Equal(0, list.TotalCount)

	booking, err := query.Mutate(ctx, s.cache, func(ctx context.Context) (*models.Booking, error) {
		return s.bookings.Create(ctx, &types.CreateBookingRequestBody{
			ResourceID: "r1",
			Title:      "Thesis defense prep",
			StartTime:  time.Date(2024, 4, 1, 13, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 4, 1, 15, 0, 0, 0, time.UTC),
		})
	}, query.Effect{Invalidate: []query.Prefix{query.ListPrefix("bookings", "my")}})
	s.NoError(err)
	s.Equal(models.BOOKING_PENDING, booking.Status)

	// The list was invalidated, so this fetch goes to the network and sees the
	// new booking.
	list, err = query.Fetch(ctx, s.cache, query.MyBookingsKey(nil), listFetch)
	s.NoError(err)
	s.Equal(1, list.TotalCount)
	s.Equal(booking.ID, list.Bookings[0].ID)
	s.Equal(2, s.backend.HitCount("GET /bookings"))
}

func (s *IntegrationTestSuite) TestWriteThroughServesDetailWithoutFetch() {
	ctx := context.Background()
	booking, err := s.bookings.Create(ctx, &types.CreateBookingRequestBody{
		ResourceID: "r1",
		Title:      "Office hours",
		StartTime:  time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
	})
	s.NoError(err)

	key := query.BookingKey(booking.ID)
	updated, err := query.Mutate(ctx, s.cache, func(ctx context.Context) (*models.Booking, error) {
		return s.bookings.Update(ctx, booking.ID, &types.UpdateBookingRequestBody{Title: "Extended office hours"})
	}, query.Effect{WriteThrough: &key})
	s.NoError(err)
	s.Equal("Extended office hours", updated.Title)

	cached, err := query.Fetch(ctx, s.cache, key, func(ctx context.Context) (*models.Booking, error) {
		s.Fail("detail fetch should have been served from cache")
		return nil, nil
	})
	s.NoError(err)
	s.Equal("Extended office hours", cached.Title)
	s.Equal(0, s.backend.HitCount("GET /bookings/:id"))
}

func (s *IntegrationTestSuite) TestMarkAllAsReadInvalidatesCount() {
	ctx := context.Background()
	countFetch := func(ctx context.Context) (int, error) {
		c, err := s.notifications.UnreadCount(ctx)
		if err != nil {
			return 0, err
		}
		return c.Count, nil
	}

	count, err := query.Fetch(ctx, s.cache, query.UnreadCountKey(), countFetch)
	s.NoError(err)
	s.Equal(2, count)

	_, err = query.Mutate(ctx, s.cache, func(ctx context.Context) (*NotificationCount, error) {
		return s.notifications.MarkAllAsRead(ctx)
	}, query.Effect{Invalidate: []query.Prefix{
		query.ListPrefix("notifications", "list"),
		query.ListPrefix("notifications", "unreadCount"),
	}})
	s.NoError(err)

	count, err = query.Fetch(ctx, s.cache, query.UnreadCountKey(), countFetch)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *IntegrationTestSuite) TestExpiredTokenSurfacesUnauthorized() {
	s.backend.Token = "rotated-away"
	_, err := s.resources.List(context.Background(), nil)
	s.True(api.IsUnauthorized(err))
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
