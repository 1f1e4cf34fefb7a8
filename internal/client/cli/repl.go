package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type access int

const (
	accessAny access = iota
	accessUser
	accessAdmin
)

type command struct {
	name   string
	usage  string
	access access
	run    func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"register", "create an account", accessAny, (*App).Register},
	{"login", "sign in", accessAny, (*App).Login},
	{"settings", "reload portal settings", accessAny, func(a *App, ctx context.Context, _ []string) error { a.loadSettings(ctx); return nil }},
	{"pages", "list portal pages", accessAny, (*App).Pages},
	{"open", "open a page: open <path>", accessAny, (*App).Open},

	{"whoami", "show the signed in user", accessUser, (*App).Whoami},
	{"balance", "show your account and balance", accessUser, (*App).Balance},
	{"history", "list your transactions", accessUser, (*App).History},
	{"transfer", "send VHS: transfer <vnt-id> <amount> [description]", accessUser, (*App).Transfer},
	{"votes", "list votes: votes [status]", accessUser, (*App).Votes},
	{"vote", "cast a ballot: vote <vote-id> <option>", accessUser, (*App).Vote},
	{"tally", "show results: tally <vote-id>", accessUser, (*App).Tally},
	{"request", "submit a service request", accessUser, (*App).Request},
	{"requests", "list service requests", accessUser, (*App).Requests},
	{"flights", "list flights", accessUser, (*App).Flights},
	{"buy", "buy a seat: buy <flight-id>", accessUser, (*App).Buy},
	{"upload", "upload a document: upload <file> [type]", accessUser, (*App).Upload},
	{"documents", "list documents", accessUser, (*App).Documents},
	{"download", "download a document: download <document-id> [--url]", accessUser, (*App).Download},
	{"logout", "sign out", accessUser, (*App).Logout},

	{"adjust", "adjust a balance: adjust <email> <amount> [description]", accessAdmin, (*App).Adjust},
	{"newvote", "create a draft vote", accessAdmin, (*App).NewVote},
	{"activate", "activate a vote: activate <vote-id>", accessAdmin, (*App).ActivateVote},
	{"close", "close a vote: close <vote-id>", accessAdmin, (*App).CloseVote},
	{"deletevote", "delete a vote: deletevote <vote-id>", accessAdmin, (*App).DeleteVote},
	{"approve", "approve a request: approve <request-id> [notes]", accessAdmin, (*App).Approve},
	{"reject", "reject a request: reject <request-id> [notes]", accessAdmin, (*App).Reject},
	{"newflight", "add a flight", accessAdmin, (*App).NewFlight},
	{"flightstatus", "set flight status: flightstatus <flight-id> <status>", accessAdmin, (*App).FlightStatus},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// allowed reports whether the current session may see and run c.
func (a *App) allowed(c command) bool {
	switch c.access {
	case accessUser:
		return a.loggedIn()
	case accessAdmin:
		return a.loggedIn() && a.isAdmin()
	default:
		return true
	}
}

func (a *App) help() {
	w := a.table()
	for _, c := range commands {
		if a.allowed(c) {
			fmt.Fprintf(w, "  %s\t%s\n", c.name, c.usage)
		}
	}
	fmt.Fprintf(w, "  %s\t%s\n", "exit", "leave the program")
	w.Flush()
}

// runREPL reads commands from a.reader until EOF or "exit"/"quit". The first
// token selects the command, the rest are its arguments. Command errors are
// reported to the user and never end the loop.
func runREPL(ctx context.Context, a *App) {
	for {
		a.printf("portal> %s", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			a.println()
			return
		}

		if !a.dispatch(ctx, strings.Fields(line)) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// dispatch runs one command line and reports whether the loop should go on.
func (a *App) dispatch(ctx context.Context, parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "exit", "quit":
		a.println("Bye!")
		return false
	case "help":
		a.help()
		return true
	}

	c, ok := findCommand(name)
	if !ok {
		a.println("Unknown command:", name)
		return true
	}

	switch {
	case c.access >= accessUser && !a.loggedIn():
		a.println("Please log in first.")
		return true
	case c.access == accessAdmin && !a.isAdmin():
		a.println("Administrator role required.")
		return true
	}

	if err := c.run(a, ctx, args); err != nil {
		a.logger.Debug(ctx, "command failed", "command", name, "error", err)
		a.println("Error:", describeError(err))
	}
	return true
}
