package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/api"
)

const (
	outcomeApplied                   = "applied"
	outcomeAppliedNotificationFailed = "applied_notification_failed"
)

// Request submits a service request interactively.
func (a *App) Request(ctx context.Context, args []string) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	requestType, err := getSimpleText(a.reader, "Request type (optional)", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	r, err := a.portal.SubmitRequest(ctx, title, description, requestType)
	if err != nil {
		return err
	}
	a.printf("Request %s submitted, status %s\n", r.ID, r.Status)
	return nil
}

// Requests lists the caller's requests, or all of them for an administrator.
func (a *App) Requests(ctx context.Context, args []string) error {
	requests, err := a.portal.ListRequests(ctx)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		a.println("No requests.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tCREATED\tFROM\tTYPE\tSTATUS\tTITLE\tNOTES")
	for _, r := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, formatTime(r.CreatedAt), r.UserEmail, orDash(r.RequestType), r.Status, r.Title, orDash(r.AdminNotes))
	}
	return w.Flush()
}

// Approve approves a pending request: approve <request-id> [notes]
func (a *App) Approve(ctx context.Context, args []string) error {
	return a.decide(ctx, args, "approve", a.portal.ApproveRequest)
}

// Reject rejects a pending request: reject <request-id> [notes]
func (a *App) Reject(ctx context.Context, args []string) error {
	return a.decide(ctx, args, "reject", a.portal.RejectRequest)
}

func (a *App) decide(ctx context.Context, args []string, verb string,
	fn func(ctx context.Context, requestID, notes string) (*api.DecideResponse, error)) error {

	if len(args) < 1 {
		a.printf("Usage: %s <request-id> [notes]\n", verb)
		return nil
	}
	res, err := fn(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	switch res.Outcome {
	case outcomeApplied:
		a.printf("Request %s is now %s; the citizen was notified\n", args[0], res.Request.Status)
	case outcomeAppliedNotificationFailed:
		a.printf("Request %s is now %s, but the notification could not be sent; it will be retried\n", args[0], res.Request.Status)
	default:
		a.printf("Request %s was not changed\n", args[0])
	}
	return nil
}
