package models

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is an outbox row for an email that must be delivered after
// the state change that produced it has been committed.
type Notification struct {
	ID        string
	Recipient string
	Subject   string
	Body      string
	Status    NotificationStatus
	Attempts  int
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}
