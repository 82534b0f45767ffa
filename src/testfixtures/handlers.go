package testfixtures

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaushalkahapola/smart-campus/src/config"
	"github.com/kaushalkahapola/smart-campus/src/models"
	"github.com/kaushalkahapola/smart-campus/src/types"
)

func notFound(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, gin.H{"message": message, "code": "NOT_FOUND"})
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"message": message, "code": "BAD_REQUEST"})
}

// --- resources ---

func (b *Backend) listResources(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Resource
	features := ctx.QueryArray("features")
	minCapacity, _ := strconv.Atoi(ctx.Query("capacity"))
	for _, r := range b.Resources {
		if t := ctx.Query("type"); t != "" && string(r.Type) != t {
			continue
		}
		if bld := ctx.Query("building"); bld != "" && r.Building != bld {
			continue
		}
		if s := ctx.Query("status"); s != "" && string(r.Status) != s {
			continue
		}
		if q := ctx.Query("search"); q != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q)) {
			continue
		}
		if minCapacity > 0 && r.Capacity < minCapacity {
			continue
		}
		matched := true
		for _, f := range features {
			if _, ok := r.Features[f]; !ok {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	ctx.JSON(http.StatusOK, gin.H{"resources": out, "totalCount": len(out)})
}

func (b *Backend) getResource(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Resources[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Resource not found")
		return
	}
	ctx.JSON(http.StatusOK, r)
}

func (b *Backend) createResource(ctx *gin.Context) {
	var body types.CreateResourceRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now().UTC()
	status := models.ResourceStatus(body.Status)
	if status == "" {
		status = models.RESOURCE_AVAILABLE
	}
	r := &models.Resource{
		ID: b.newID("r"), Name: body.Name, Type: models.ResourceType(body.Type),
		Capacity: body.Capacity, Features: body.Features, Location: body.Location,
		Building: body.Building, Floor: body.Floor, RoomNumber: body.RoomNumber,
		Status: status, ImageURL: body.ImageURL, Description: body.Description,
		CreatedAt: now, UpdatedAt: now,
	}
	b.Resources[r.ID] = r
	ctx.JSON(http.StatusCreated, r)
}

func (b *Backend) updateResource(ctx *gin.Context) {
	var body types.UpdateResourceRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Resources[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Resource not found")
		return
	}
	if body.Name != "" {
		r.Name = body.Name
	}
	if body.Capacity > 0 {
		r.Capacity = body.Capacity
	}
	if body.Features != nil {
		r.Features = body.Features
	}
	if body.Building != "" {
		r.Building = body.Building
	}
	if body.Location != "" {
		r.Location = body.Location
	}
	if body.Floor != "" {
		r.Floor = body.Floor
	}
	if body.RoomNumber != "" {
		r.RoomNumber = body.RoomNumber
	}
	if body.ImageURL != "" {
		r.ImageURL = body.ImageURL
	}
	if body.Description != "" {
		r.Description = body.Description
	}
	r.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, r)
}

func (b *Backend) deleteResource(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Resources[ctx.Param("id")]; !ok {
		notFound(ctx, "Resource not found")
		return
	}
	delete(b.Resources, ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

func (b *Backend) updateResourceStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Resources[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Resource not found")
		return
	}
	r.Status = models.ResourceStatus(body.Status)
	r.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, r)
}

// resourceAvailability computes hourly slots between 09:00 and 17:00 for each
// requested day, marking hours that overlap a live booking.
func (b *Backend) resourceAvailability(ctx *gin.Context) {
	start, err := time.Parse(config.DATE_FORMAT, ctx.Query("startDate"))
	if err != nil {
		badRequest(ctx, "invalid startDate")
		return
	}
	end, err := time.Parse(config.DATE_FORMAT, ctx.Query("endDate"))
	if err != nil {
		badRequest(ctx, "invalid endDate")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := ctx.Param("id")
	if _, ok := b.Resources[id]; !ok {
		notFound(ctx, "Resource not found")
		return
	}
	var days []models.ResourceAvailability
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		av := models.ResourceAvailability{Date: day.Format(config.DATE_FORMAT)}
		for hour := 9; hour < 17; hour++ {
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
			slotEnd := slotStart.Add(time.Hour)
			slot := models.TimeSlot{
				StartTime:   slotStart.Format(config.SLOT_TIME_FORMAT),
				EndTime:     slotEnd.Format(config.SLOT_TIME_FORMAT),
				IsAvailable: true,
			}
			for _, bk := range b.Bookings {
				if bk.ResourceID != id || bk.Status == models.BOOKING_CANCELLED {
					continue
				}
				if bk.StartTime.Before(slotEnd) && bk.EndTime.After(slotStart) {
					slot.IsAvailable = false
					slot.BookingID = bk.ID
					break
				}
			}
			av.TimeSlots = append(av.TimeSlots, slot)
		}
		days = append(days, av)
	}
	ctx.JSON(http.StatusOK, days)
}

// --- bookings ---

func (b *Backend) listMyBookings(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.filterBookings(ctx, b.CurrentUserID)
	ctx.JSON(http.StatusOK, gin.H{"bookings": out, "totalCount": len(out)})
}

func (b *Backend) listAllBookings(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.filterBookings(ctx, ctx.Query("userId"))
	ctx.JSON(http.StatusOK, gin.H{"bookings": out, "totalCount": len(out)})
}

func (b *Backend) filterBookings(ctx *gin.Context, userID string) []models.Booking {
	var out []models.Booking
	for _, bk := range b.Bookings {
		if userID != "" && bk.UserID != userID {
			continue
		}
		if s := ctx.Query("status"); s != "" && string(bk.Status) != s {
			continue
		}
		if rid := ctx.Query("resourceId"); rid != "" && bk.ResourceID != rid {
			continue
		}
		out = append(out, *bk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) createBooking(ctx *gin.Context) {
	var body types.CreateBookingRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.Resources[body.ResourceID]
	if !ok {
		notFound(ctx, "Resource not found")
		return
	}
	if r.Status != models.RESOURCE_AVAILABLE {
		ctx.JSON(http.StatusConflict, gin.H{"message": "resource is not available", "code": "RESOURCE_UNAVAILABLE"})
		return
	}
	now := time.Now().UTC()
	bk := &models.Booking{
		ID: b.newID("b"), UserID: b.CurrentUserID, ResourceID: body.ResourceID,
		Title: body.Title, Description: body.Description,
		StartTime: body.StartTime, EndTime: body.EndTime,
		Status: models.BOOKING_PENDING, Purpose: body.Purpose,
		AttendeesCount: body.AttendeesCount,
		CreatedAt:      now, UpdatedAt: now,
	}
	b.Bookings[bk.ID] = bk
	ctx.JSON(http.StatusCreated, bk)
}

func (b *Backend) getBooking(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.Bookings[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Booking not found")
		return
	}
	ctx.JSON(http.StatusOK, bk)
}

func (b *Backend) updateBooking(ctx *gin.Context) {
	var body types.UpdateBookingRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.Bookings[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Booking not found")
		return
	}
	user := b.currentUser()
	if bk.UserID != b.CurrentUserID && !models.HasAccess(user.Role, models.ROLE_STAFF) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Access forbidden", "code": "FORBIDDEN"})
		return
	}
	if body.Title != "" {
		bk.Title = body.Title
	}
	if body.Description != "" {
		bk.Description = body.Description
	}
	if body.StartTime != nil {
		bk.StartTime = *body.StartTime
	}
	if body.EndTime != nil {
		bk.EndTime = *body.EndTime
	}
	if body.Purpose != "" {
		bk.Purpose = body.Purpose
	}
	if body.AttendeesCount > 0 {
		bk.AttendeesCount = body.AttendeesCount
	}
	bk.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, bk)
}

func (b *Backend) cancelBooking(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.Bookings[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Booking not found")
		return
	}
	user := b.currentUser()
	if bk.UserID != b.CurrentUserID && !models.HasAccess(user.Role, models.ROLE_STAFF) {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Access forbidden", "code": "FORBIDDEN"})
		return
	}
	bk.Status = models.BOOKING_CANCELLED
	bk.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, bk)
}

func (b *Backend) updateBookingStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	bk, ok := b.Bookings[ctx.Param("id")]
	if !ok {
		notFound(ctx, "Booking not found")
		return
	}
	bk.Status = models.BookingStatus(body.Status)
	bk.UpdatedAt = time.Now().UTC()
	ctx.JSON(http.StatusOK, bk)
}

func (b *Backend) joinWaitlist(ctx *gin.Context) {
	var body types.JoinWaitlistRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.Resources[body.ResourceID]; !ok {
		notFound(ctx, "Resource not found")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"id":         b.newID("w"),
		"resourceId": body.ResourceID,
		"position":   1,
		"createdAt":  time.Now().UTC().Format(time.RFC3339),
	})
}
