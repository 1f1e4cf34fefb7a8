package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/citizenportal/internal/client/client"
	"github.com/dmitrijs2005/citizenportal/internal/navigation"
)

const reasonAuthRequired = "auth_required"

// loadSettings fetches the public settings. A private portal refuses
// anonymous callers; that is reported and retried after login.
func (a *App) loadSettings(ctx context.Context) {
	settings, err := a.portal.PublicSettings(ctx)
	if err != nil {
		a.settings = nil
		ae := client.ClassifyAccessError(err)
		if ae.Type == reasonAuthRequired {
			a.println("This portal is private. Please log in to continue.")
			return
		}
		a.println("Could not load portal settings:", describeError(err))
		return
	}
	a.settings = settings
	if settings.AppName != "" {
		a.println(settings.AppName)
	}
}

// Pages lists the portal pages with their paths.
func (a *App) Pages(ctx context.Context, args []string) error {
	if a.settings == nil {
		a.loadSettings(ctx)
		if a.settings == nil {
			return nil
		}
	}
	if len(a.settings.Pages) == 0 {
		a.println("No pages configured.")
		return nil
	}
	w := a.table()
	for _, p := range a.settings.Pages {
		marker := ""
		if p == a.settings.MainPage {
			marker = "(main)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p, navigation.PageURL(p), marker)
	}
	return w.Flush()
}

// Open records a visit to path. Failures are logged, never shown: page
// statistics must not get in the user's way.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: open <path>")
		return nil
	}
	page, err := a.portal.LogPageView(ctx, args[0])
	if err != nil {
		a.logger.Warn(ctx, "page view not recorded", "path", args[0], "error", err)
		return nil
	}
	if page == "" {
		a.println("Unknown page:", args[0])
		return nil
	}
	a.println("Opened", page)
	return nil
}
