package types

import "time"

type RecurringBookingPattern struct {
	Frequency   string     `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Interval    int        `json:"interval" validate:"min=1"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	DaysOfWeek  []int      `json:"daysOfWeek,omitempty" validate:"omitempty,dive,min=0,max=6"`
	WeekOfMonth int        `json:"weekOfMonth,omitempty" validate:"omitempty,min=1,max=4"`
}

type CreateBookingRequestBody struct {
	ResourceID     string                   `json:"resourceId" validate:"required"`
	Title          string                   `json:"title" validate:"required"`
	Description    string                   `json:"description,omitempty"`
	StartTime      time.Time                `json:"startTime" validate:"required"`
	EndTime        time.Time                `json:"endTime" validate:"required,gtfield=StartTime"`
	Purpose        string                   `json:"purpose,omitempty"`
	AttendeesCount int                      `json:"attendeesCount,omitempty" validate:"omitempty,min=1"`
	Recurring      *RecurringBookingPattern `json:"recurring,omitempty"`
}

type UpdateBookingRequestBody struct {
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	Purpose        string     `json:"purpose,omitempty"`
	AttendeesCount int        `json:"attendeesCount,omitempty" validate:"omitempty,min=1"`
}

type JoinWaitlistRequestBody struct {
	ResourceID string    `json:"resourceId" validate:"required"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

type CreateResourceRequestBody struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=lecture_hall computer_lab meeting_room study_room equipment vehicle"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
	Features    JSONB  `json:"features,omitempty"`
	Location    string `json:"location,omitempty"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
	RoomNumber  string `json:"roomNumber,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=available maintenance unavailable reserved"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateResourceRequestBody struct {
	Name        string `json:"name,omitempty"`
	Capacity    int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Features    JSONB  `json:"features,omitempty"`
	Location    string `json:"location,omitempty"`
	Building    string `json:"building,omitempty"`
	Floor       string `json:"floor,omitempty"`
	RoomNumber  string `json:"roomNumber,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateUserRequestBody struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,oneof=student staff admin"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

type UpdateUserRequestBody struct {
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=student staff admin"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}
