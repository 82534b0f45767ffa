package models

import "time"

type BookingStatus string

const (
	BOOKING_PENDING     BookingStatus = "pending"
	BOOKING_CONFIRMED   BookingStatus = "confirmed"
	BOOKING_IN_PROGRESS BookingStatus = "in_progress"
	BOOKING_COMPLETED   BookingStatus = "completed"
	BOOKING_CANCELLED   BookingStatus = "cancelled"
	BOOKING_NO_SHOW     BookingStatus = "no_show"
)

type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	ResourceID     string        `json:"resourceId"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	StartTime      time.Time     `json:"startTime"`
	EndTime        time.Time     `json:"endTime"`
	Status         BookingStatus `json:"status"`
	Purpose        string        `json:"purpose,omitempty"`
	AttendeesCount int           `json:"attendeesCount,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
