package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

// Outcome tells the caller how far a status change got.
type Outcome string

const (
	OutcomeApplied                   Outcome = "applied"
	OutcomeAppliedNotificationFailed Outcome = "applied_notification_failed"
	OutcomeNotApplied                Outcome = "not_applied"
)

const (
	defaultApproveNotes = "Approved by admin"
	defaultRejectNotes  = "Rejected by admin"
)

type TransitionResult struct {
	Request        *models.ServiceRequest
	Outcome        Outcome
	NotificationID string
}

// RequestService is the service-request admin.
type RequestService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	notifications *NotificationService
}

func NewRequestService(db *sql.DB, m repomanager.RepositoryManager, notifications *NotificationService) *RequestService {
	return &RequestService{db: db, repomanager: m, notifications: notifications}
}

// Submit files a new pending request for email.
func (s *RequestService) Submit(ctx context.Context, email, title, description, requestType string) (*models.ServiceRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	return s.repomanager.Requests(s.db).Create(ctx, &models.ServiceRequest{
		Title:       title,
		Description: description,
		UserEmail:   email,
		RequestType: strings.TrimSpace(requestType),
	})
}

// List returns all requests for an administrator, otherwise only the
// caller's own. Newest first.
func (s *RequestService) List(ctx context.Context, email string, all bool) ([]*models.ServiceRequest, error) {
	repo := s.repomanager.Requests(s.db)
	if all {
		return repo.List(ctx)
	}
	return repo.ListByUser(ctx, email)
}

// Approve moves a pending request to approved and emails its owner.
func (s *RequestService) Approve(ctx context.Context, id, notes string) (*TransitionResult, error) {
	if strings.TrimSpace(notes) == "" {
		notes = defaultApproveNotes
	}
	return s.decide(ctx, id, models.RequestApproved, notes, func(r *models.ServiceRequest) (string, string) {
		return "Service Request Approved", `Your service request "` + r.Title + `" has been approved.`
	})
}

// Reject moves a pending request to rejected and emails its owner.
func (s *RequestService) Reject(ctx context.Context, id, notes string) (*TransitionResult, error) {
	if strings.TrimSpace(notes) == "" {
		notes = defaultRejectNotes
	}
	return s.decide(ctx, id, models.RequestRejected, notes, func(r *models.ServiceRequest) (string, string) {
		return "Service Request Update", `Your service request "` + r.Title + `" has been reviewed.`
	})
}

// decide commits the status change together with an outbox row, then tries
// to deliver the email. A failed delivery does not undo the change; the
// retry job picks the row up later.
func (s *RequestService) decide(ctx context.Context, id string, status models.RequestStatus, notes string,
	message func(*models.ServiceRequest) (subject, body string)) (*TransitionResult, error) {

	result := &TransitionResult{Outcome: OutcomeNotApplied}

	if _, err := s.repomanager.Requests(s.db).Get(ctx, id); err != nil {
		return result, err
	}

	var notification *models.Notification
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		req, err := s.repomanager.Requests(tx).Decide(ctx, id, status, notes)
		if err != nil {
			return err
		}
		subject, body := message(req)
		notification, err = s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
			Recipient: req.UserEmail,
			Subject:   subject,
			Body:      body,
		})
		if err != nil {
			return err
		}
		result.Request = req
		return nil
	})
	if err != nil {
		result.Request = nil
		return result, err
	}

	result.NotificationID = notification.ID
	result.Outcome = OutcomeApplied
	if err := s.notifications.Deliver(ctx, notification.ID); err != nil {
		result.Outcome = OutcomeAppliedNotificationFailed
	}
	return result, nil
}
