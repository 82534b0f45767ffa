// Package testfixtures hosts an in-memory stand-in for the campus booking
// backend. Tests point an api.Client at Backend.Server() and exercise the
// real wire format end to end.
package testfixtures

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

const TestToken = "fixture-token"

type Backend struct {
	mu sync.Mutex

	Token         string
	CurrentUserID string

	Users         map[string]*models.User
	Resources     map[string]*models.Resource
	Bookings      map[string]*models.Booking
	Notifications map[string]*models.Notification

	// Hits counts requests per "METHOD path" so tests can assert on network
	// traffic (de-duplication, retries).
	Hits map[string]int
	// FailNext makes the next n requests to a route fail with 500 before the
	// handler runs. Used by retry tests.
	FailNext map[string]int
	// Delay holds every handler for the duration, long enough for tests to
	// pile up concurrent readers on one in-flight fetch.
	Delay time.Duration

	nextID int
}

func NewBackend() *Backend {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	b := &Backend{
		Token:         TestToken,
		CurrentUserID: "u1",
		Users:         map[string]*models.User{},
		Resources:     map[string]*models.Resource{},
		Bookings:      map[string]*models.Booking{},
		Notifications: map[string]*models.Notification{},
		Hits:          map[string]int{},
		FailNext:      map[string]int{},
	}
	b.Users["u1"] = &models.User{
		ID: "u1", Username: "jdoe", Email: "jdoe@campus.edu",
		Role: models.ROLE_STUDENT, Department: "Computer Science",
		StudentID: "CS2024001", IsActive: true, IsVerified: true,
		CreatedAt: now, UpdatedAt: now,
	}
	b.Users["u2"] = &models.User{
		ID: "u2", Username: "astaff", Email: "astaff@campus.edu",
		Role: models.ROLE_STAFF, IsActive: true, IsVerified: true,
		CreatedAt: now, UpdatedAt: now,
	}
	b.Users["u3"] = &models.User{
		ID: "u3", Username: "root", Email: "root@campus.edu",
		Role: models.ROLE_ADMIN, IsActive: true, IsVerified: true,
		CreatedAt: now, UpdatedAt: now,
	}
	b.Resources["r1"] = &models.Resource{
		ID: "r1", Name: "Computer Lab A", Type: models.RESOURCE_COMPUTER_LAB,
		Capacity: 30, Status: models.RESOURCE_AVAILABLE,
		Building: "Engineering", Floor: "2", RoomNumber: "E201",
		Features:  types.JSONB{"projector": true, "whiteboard": true},
		CreatedAt: now, UpdatedAt: now,
	}
	b.Resources["r2"] = &models.Resource{
		ID: "r2", Name: "Lecture Hall 1", Type: models.RESOURCE_LECTURE_HALL,
		Capacity: 200, Status: models.RESOURCE_MAINTENANCE,
		Building: "Science", Floor: "1", RoomNumber: "S101",
		CreatedAt: now, UpdatedAt: now,
	}
	b.Notifications["n1"] = &models.Notification{
		ID: "n1", UserID: "u1", Type: models.NOTIFY_BOOKING_CONFIRMATION,
		Channel: models.CHANNEL_EMAIL, Title: "Booking confirmed",
		Message: "Your booking was confirmed", Status: models.NOTIFICATION_DELIVERED,
		CreatedAt: now,
	}
	b.Notifications["n2"] = &models.Notification{
		ID: "n2", UserID: "u1", Type: models.NOTIFY_SYSTEM_ANNOUNCEMENT,
		Channel: models.CHANNEL_PUSH, Title: "Maintenance window",
		Message: "Campus systems down Sunday", Status: models.NOTIFICATION_SENT,
		CreatedAt: now,
	}
	return b
}

func (b *Backend) Server() *httptest.Server {
	return httptest.NewServer(b.Router())
}

// HitCount returns how many requests reached "METHOD path" (gin route
// template, e.g. "GET /resources").
func (b *Backend) HitCount(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Hits[route]
}

func (b *Backend) FailNextRequests(route string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.FailNext[route] = n
}

func (b *Backend) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *Backend) currentUser() *models.User {
	return b.Users[b.CurrentUserID]
}

func (b *Backend) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(b.bookkeeping)
	router.Use(b.requireAuth)

	router.GET("/resources", b.listResources)
	router.POST("/resources", b.createResource)
	router.GET("/resources/:id", b.getResource)
	router.PUT("/resources/:id", b.updateResource)
	router.DELETE("/resources/:id", b.deleteResource)
	router.PUT("/resources/:id/status", b.updateResourceStatus)
	router.GET("/resources/:id/availability", b.resourceAvailability)

	router.GET("/bookings", b.listMyBookings)
	router.POST("/bookings", b.createBooking)
	router.POST("/bookings/waitlist", b.joinWaitlist)
	router.GET("/bookings/:id", b.getBooking)
	router.PUT("/bookings/:id", b.updateBooking)
	router.PUT("/bookings/:id/cancel", b.cancelBooking)
	router.GET("/admin/bookings", b.listAllBookings)
	router.PUT("/admin/bookings/:id/status", b.updateBookingStatus)

	router.GET("/notifications", b.listNotifications)
	router.PUT("/notifications/read-all", b.markAllRead)
	router.GET("/notifications/unread-count", b.unreadCount)
	router.PUT("/notifications/:id/read", b.markRead)
	router.DELETE("/notifications/:id", b.deleteNotification)

	router.GET("/users/me", b.me)
	router.PUT("/users/me", b.updateMe)
	router.GET("/admin/users", b.listUsers)
	router.POST("/admin/users", b.createUser)
	router.PUT("/admin/users/:id", b.updateUser)
	router.DELETE("/admin/users/:id", b.deleteUser)
	router.PUT("/admin/users/:id/status", b.setUserActive)

	router.GET("/analytics/utilization", b.analyticsBlob("utilization"))
	router.GET("/analytics/trends", b.analyticsBlob("trends"))
	router.GET("/analytics/efficiency", b.analyticsBlob("efficiency"))
	router.GET("/admin/analytics/report", b.analyticsBlob("report"))
	router.GET("/admin/analytics/export", b.exportAnalytics)

	router.POST("/ai/recommend/resources", b.recommendResources)
	router.POST("/ai/recommend/times", b.recommendTimes)
	router.GET("/ai/analytics/user", b.userPatterns)
	router.GET("/ai/analytics/user/:id", b.userPatterns)
	router.GET("/ai/predict/resource/:id", b.predictResource)
	router.GET("/ai/anomaly/resource/:id", b.detectAnomalies)

	return router
}

func (b *Backend) bookkeeping(ctx *gin.Context) {
	route := ctx.Request.Method + " " + ctx.FullPath()
	b.mu.Lock()
	b.Hits[route]++
	fail := b.FailNext[route]
	if fail > 0 {
		b.FailNext[route] = fail - 1
	}
	delay := b.Delay
	b.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail > 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "injected failure", "code": "INTERNAL"})
		return
	}
	ctx.Next()
}

func (b *Backend) requireAuth(ctx *gin.Context) {
	bearer := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(bearer, "Bearer ") || strings.TrimPrefix(bearer, "Bearer ") != b.Token {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access", "code": "UNAUTHORIZED"})
		return
	}
	ctx.Next()
}
