package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/citizenportal/internal/client/client"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	dateTimeLayout = "2006-01-02 15:04"
	dateLayout     = "2006-01-02"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func formatTime(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return "-"
	}
	return ts.AsTime().Local().Format(dateTimeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// describeError turns a command error into a line for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return "You are not signed in or your session has expired. Please log in."
	case errors.Is(err, client.ErrUnavailable):
		return "The portal is unavailable right now, try again later."
	case errors.Is(err, client.ErrRateLimited):
		return "Too many attempts, try again later."
	default:
		return err.Error()
	}
}
