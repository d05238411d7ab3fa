package entity

import "time"

// Notification is a social event delivered to one recipient, either in the
// backlog fetch or as a live push. The read flag only ever moves false→true.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	SenderID  int64     `json:"senderId,omitempty"` // 0 = no actor to navigate to
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
