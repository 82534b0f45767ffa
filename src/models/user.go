package models

import "time"

type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Role       UserRole   `json:"role"`
	Department string     `json:"department,omitempty"`
	StudentID  string     `json:"studentId,omitempty"`
	FirstName  string     `json:"firstName,omitempty"`
	LastName   string     `json:"lastName,omitempty"`
	IsActive   bool       `json:"isActive"`
	IsVerified bool       `json:"isVerified"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

type UserPreferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	ReminderTime       int    `json:"reminderTime"`
	Timezone           string `json:"timezone"`
}
