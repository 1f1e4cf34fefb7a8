package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/client/client"
	"github.com/dmitrijs2005/citizenportal/internal/client/config"
	"github.com/dmitrijs2005/citizenportal/internal/client/session"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/logging"
)

type App struct {
	config    *config.Config
	portal    portal
	publisher *session.Publisher
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	settings  *api.PublicSettings
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewPortalClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	a := newApp(c, apiClient, bufio.NewReader(os.Stdin), os.Stdout, logging.NewJSONLogger(os.Stderr, "warn"))
	if c.Embedded {
		a.publisher.Subscribe(session.NewParentNotifier(os.Stdout).Observe)
	}
	return a, nil
}

func newApp(c *config.Config, p portal, reader *bufio.Reader, out io.Writer, l logging.Logger) *App {
	a := &App{
		config:    c,
		portal:    p,
		publisher: session.NewPublisher(p, c.SessionPollInterval),
		logger:    l.With("module", "cli"),
		reader:    reader,
		out:       out,
	}
	a.publisher.Subscribe(a.onSessionChange)
	return a
}

func (a *App) onSessionChange(s session.State) {
	if s.Authenticated {
		a.logger.Debug(context.Background(), "session active", "email", s.User.Email)
		return
	}
	a.logger.Debug(context.Background(), "no active session")
}

// Run starts the session publisher and the REPL and blocks until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.portal.Close()

	go a.publisher.Run(ctx)

	a.println("Welcome to the citizen portal CLI (type 'help' for commands)")
	a.loadSettings(ctx)

	runREPL(ctx, a)
}

func (a *App) loggedIn() bool {
	return a.portal.LoggedIn()
}

func (a *App) isAdmin() bool {
	s := a.publisher.Current()
	return s.Authenticated && s.User != nil && s.User.Role == common.RoleAdmin
}

// status renders the prompt suffix: the signed-in email, if any.
func (a *App) status() string {
	s := a.publisher.Current()
	if s.Authenticated && s.User != nil {
		return "(" + s.User.Email + ") "
	}
	return ""
}
