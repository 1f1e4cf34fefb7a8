package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type ServiceRequest struct {
	ID          string
	Title       string
	Description string
	UserEmail   string
	RequestType string
	Status      RequestStatus
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
