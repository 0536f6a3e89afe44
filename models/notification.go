package models

import "time"

const (
	NotificationNewBooking = "new_booking"
	NotificationReminder   = "reminder"
	NotificationSystem     = "system"
)

// Notification is an entry in the shop's notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// NotificationSettings mirrors the toggles on the notifications screen.
type NotificationSettings struct {
	NewBooking          bool      `json:"newBooking"`
	Reminders           bool      `json:"reminders"`
	ReminderLeadMinutes int       `json:"reminderLeadMinutes"`
	Email               bool      `json:"email"`
	SMS                 bool      `json:"sms"`
	WhatsApp            bool      `json:"whatsapp"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty"`
}
