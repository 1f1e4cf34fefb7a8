package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/metrics"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/notify"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

const retryBatchSize = 100

// pendingGrace is how long a pending row is left to its inline delivery
// before the retry job may pick it up.
const pendingGrace = 5 * time.Minute

// NotificationService delivers outbox rows and records the outcome on them.
type NotificationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sender      notify.Sender
	log         logging.Logger
	now         func() time.Time
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager, sender notify.Sender, log logging.Logger) *NotificationService {
	return &NotificationService{db: db, repomanager: m, sender: sender, log: log.With("module", "notifications"), now: time.Now}
}

// Deliver sends notification id unless it was already sent. The send error,
// if any, is returned after it has been recorded.
func (s *NotificationService) Deliver(ctx context.Context, id string) error {
	repo := s.repomanager.Notifications(s.db)

	n, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.deliver(ctx, n)
}

func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) error {
	if n.Status == models.NotificationSent {
		return nil
	}

	repo := s.repomanager.Notifications(s.db)

	sendErr := s.sender.Send(ctx, notify.Email{To: n.Recipient, Subject: n.Subject, Body: n.Body})
	if sendErr != nil {
		metrics.RecordDelivery("failed")
		s.log.Warn(ctx, "notification delivery failed", "notification_id", n.ID, "attempt", n.Attempts+1, "error", sendErr)
		if err := repo.MarkFailed(ctx, n.ID, sendErr.Error()); err != nil {
			s.log.Error(ctx, "cannot record failed delivery", "notification_id", n.ID, "error", err)
		}
		return sendErr
	}

	metrics.RecordDelivery("sent")
	if err := repo.MarkSent(ctx, n.ID); err != nil {
		return fmt.Errorf("error marking notification sent: %w", err)
	}
	return nil
}

// RetryFailed redelivers failed rows, and pending rows older than
// pendingGrace, that have fewer than maxAttempts attempts. It reports how
// many went out.
func (s *NotificationService) RetryFailed(ctx context.Context, maxAttempts int) (int, error) {
	staleBefore := s.now().Add(-pendingGrace)
	pending, err := s.repomanager.Notifications(s.db).ListRetryable(ctx, maxAttempts, staleBefore, retryBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, n := range pending {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
		if err := s.deliver(ctx, n); err == nil {
			delivered++
		}
	}
	return delivered, nil
}
