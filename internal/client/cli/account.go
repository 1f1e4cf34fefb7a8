package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/common"
)

// Balance shows the citizen's account, creating it on first use.
func (a *App) Balance(ctx context.Context, args []string) error {
	acc, err := a.portal.Account(ctx)
	if err != nil {
		return err
	}
	a.printf("Account %s\nBalance: %s %s\n", acc.VntID, acc.Balance, common.CurrencyCode)
	return nil
}

func (a *App) History(ctx context.Context, args []string) error {
	entries, err := a.portal.History(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println("No transaction history yet.")
		return nil
	}

	w := a.table()
	for _, e := range entries {
		tx := e.Transaction
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatTime(tx.CreatedAt), tx.Type, e.DisplayAmount, firstNonEmpty(tx.Status), describeTransaction(e))
	}
	return w.Flush()
}

// describeTransaction names the other side of a record from the viewer's
// perspective.
func describeTransaction(e *api.HistoryEntry) string {
	tx := e.Transaction
	var what string
	switch tx.Type {
	case "purchase":
		what = tx.ItemName
	case "admin_adjustment":
		what = "balance adjustment"
	default:
		if e.Debit {
			what = "to " + firstNonEmpty(tx.ToVntID, tx.ToEmail)
		} else {
			what = "from " + firstNonEmpty(tx.FromVntID, tx.FromEmail)
		}
	}
	if tx.Description != "" {
		what += " - " + tx.Description
	}
	return what
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "-"
}

// Transfer sends VHS to another account: transfer <vnt-id> <amount> [description]
func (a *App) Transfer(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: transfer <vnt-id> <amount> [description]")
		return nil
	}
	tx, err := a.portal.Transfer(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	a.printf("Sent %s %s to %s\n", tx.Amount, common.CurrencyCode, tx.ToVntID)
	return nil
}

// Adjust credits or debits a citizen: adjust <email> <amount> [description]
func (a *App) Adjust(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: adjust <email> <amount> [description]")
		return nil
	}
	tx, err := a.portal.AdminAdjust(ctx, args[0], args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	a.printf("Adjustment %s recorded for %s\n", tx.ID, args[0])
	return nil
}
