// Package session tracks whether the CLI holds a valid portal session and
// tells interested parties when that changes.
package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
)

const DefaultInterval = 2 * time.Second

// LoginSuccessSignal is written by ParentNotifier on every sign-in.
const LoginSuccessSignal = "login-success"

// State is one observation of the session.
type State struct {
	Authenticated bool
	User          *api.User
}

func (s State) equal(o State) bool {
	if s.Authenticated != o.Authenticated {
		return false
	}
	if s.User == nil || o.User == nil {
		return s.User == o.User
	}
	return s.User.ID == o.User.ID && s.User.Email == o.User.Email && s.User.Role == o.User.Role
}

// MeFetcher returns the signed-in user or an error.
type MeFetcher interface {
	Me(ctx context.Context) (*api.User, error)
}

// Publisher is the single poller of the session state for the process.
// Subscribers hear about a state only when it differs from the previous one.
type Publisher struct {
	fetcher  MeFetcher
	interval time.Duration

	mu      sync.Mutex
	current State
	polled  bool
	nextID  int
	subs    map[int]func(State)
}

func NewPublisher(fetcher MeFetcher, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Publisher{
		fetcher:  fetcher,
		interval: interval,
		subs:     make(map[int]func(State)),
	}
}

// Subscribe registers fn and returns the function that removes it.
func (p *Publisher) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Current returns the last observed state.
func (p *Publisher) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Poll checks the session once and broadcasts the result if it changed.
// Any error counts as not authenticated.
func (p *Publisher) Poll(ctx context.Context) {
	var next State
	if user, err := p.fetcher.Me(ctx); err == nil && user != nil {
		next = State{Authenticated: true, User: user}
	}

	p.mu.Lock()
	if p.polled && p.current.equal(next) {
		p.mu.Unlock()
		return
	}
	p.current = next
	p.polled = true
	subs := make([]func(State), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ParentNotifier writes LoginSuccessSignal to w each time the session goes
// from signed out to signed in. Subscribe its Observe method to a Publisher.
type ParentNotifier struct {
	mu   sync.Mutex
	w    io.Writer
	prev bool
}

func NewParentNotifier(w io.Writer) *ParentNotifier {
	return &ParentNotifier{w: w}
}

func (n *ParentNotifier) Observe(s State) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if s.Authenticated && !n.prev {
		_, _ = io.WriteString(n.w, LoginSuccessSignal+"\n")
	}
	n.prev = s.Authenticated
}
