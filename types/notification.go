package types

import "time"

type NotificationResp struct {
	ID            uint64    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Link          string    `json:"link"`
	AppointmentID *uint64   `json:"appointment_id,omitempty"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListNotificationsResp struct {
	Notifications []NotificationResp `json:"notifications"`
	NextCursor    uint64             `json:"next_cursor"`
	HasMore       bool               `json:"has_more"`
}

type UnreadCountResp struct {
	Unread int64 `json:"unread"`
}
