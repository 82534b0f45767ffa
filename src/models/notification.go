package models

import (
	"time"

	"github.com/kaushalkahapola/smart-campus/src/types"
)

type NotificationType string

const (
	NOTIFY_BOOKING_CONFIRMATION NotificationType = "booking_confirmation"
	NOTIFY_BOOKING_REMINDER     NotificationType = "booking_reminder"
	NOTIFY_BOOKING_CANCELLED    NotificationType = "booking_cancelled"
	NOTIFY_MAINTENANCE_ALERT    NotificationType = "maintenance_alert"
	NOTIFY_SYSTEM_ANNOUNCEMENT  NotificationType = "system_announcement"
)

type NotificationChannel string

const (
	CHANNEL_EMAIL     NotificationChannel = "email"
	CHANNEL_WEBSOCKET NotificationChannel = "websocket"
	CHANNEL_PUSH      NotificationChannel = "push"
)

type NotificationStatus string

const (
	NOTIFICATION_PENDING   NotificationStatus = "pending"
	NOTIFICATION_SENT      NotificationStatus = "sent"
	NOTIFICATION_DELIVERED NotificationStatus = "delivered"
	NOTIFICATION_FAILED    NotificationStatus = "failed"
)

type Notification struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Type        NotificationType    `json:"type"`
	Channel     NotificationChannel `json:"channel"`
	Title       string              `json:"title"`
	Message     string              `json:"message"`
	Status      NotificationStatus  `json:"status"`
	ScheduledAt *time.Time          `json:"scheduledAt,omitempty"`
	SentAt      *time.Time          `json:"sentAt,omitempty"`
	ReadAt      *time.Time          `json:"readAt,omitempty"`
	BookingID   string              `json:"bookingId,omitempty"`
	Metadata    types.JSONB         `json:"metadata,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Unread reports whether the notification has never been marked as read.
func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}
