package models

import (
	"time"

	"github.com/kaushalkahapola/smart-campus/src/types"
)

type ResourceType string

const (
	RESOURCE_LECTURE_HALL ResourceType = "lecture_hall"
	RESOURCE_COMPUTER_LAB ResourceType = "computer_lab"
	RESOURCE_MEETING_ROOM ResourceType = "meeting_room"
	RESOURCE_STUDY_ROOM   ResourceType = "study_room"
	RESOURCE_EQUIPMENT    ResourceType = "equipment"
	RESOURCE_VEHICLE      ResourceType = "vehicle"
)

type ResourceStatus string

const (
	RESOURCE_AVAILABLE   ResourceStatus = "available"
	RESOURCE_MAINTENANCE ResourceStatus = "maintenance"
	RESOURCE_UNAVAILABLE ResourceStatus = "unavailable"
	RESOURCE_RESERVED    ResourceStatus = "reserved"
)

type Resource struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        ResourceType   `json:"type"`
	Capacity    int            `json:"capacity"`
	Features    types.JSONB    `json:"features,omitempty"`
	Location    string         `json:"location,omitempty"`
	Building    string         `json:"building,omitempty"`
	Floor       string         `json:"floor,omitempty"`
	RoomNumber  string         `json:"roomNumber,omitempty"`
	Status      ResourceStatus `json:"status"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Description string         `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ResourceAvailability is computed server-side and read-only on this end.
// Slots within a date never overlap; an unavailable slot carries the booking
// that occupies it.
type ResourceAvailability struct {
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

type TimeSlot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
	BookingID   string `json:"bookingId,omitempty"`
}
