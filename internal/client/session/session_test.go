package session

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMe struct {
	mu    sync.Mutex
	user  *api.User
	err   error
	calls int
}

func (f *fakeMe) Me(ctx context.Context) (*api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.user, f.err
}

func (f *fakeMe) set(user *api.User, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user, f.err = user, err
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) observe(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

var alice = &api.User{ID: "u1", Email: "alice@example.com", Role: "user"}

func TestPoll_BroadcastsOnlyChanges(t *testing.T) {
	me := &fakeMe{err: errors.New("unauthorized")}
	p := NewPublisher(me, time.Second)
	rec := &recorder{}
	p.Subscribe(rec.observe)

	ctx := context.Background()
	p.Poll(ctx)
	p.Poll(ctx)
	require.Equal(t, 1, rec.len())
	assert.False(t, rec.states[0].Authenticated)

	me.set(alice, nil)
	p.Poll(ctx)
	p.Poll(ctx)
	require.Equal(t, 2, rec.len())
	assert.True(t, rec.states[1].Authenticated)
	assert.Equal(t, "alice@example.com", rec.states[1].User.Email)

	// a different user is a change too
	me.set(&api.User{ID: "u2", Email: "bob@example.com"}, nil)
	p.Poll(ctx)
	require.Equal(t, 3, rec.len())

	me.set(nil, errors.New("unavailable"))
	p.Poll(ctx)
	require.Equal(t, 4, rec.len())
	assert.Equal(t, State{}, p.Current())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	me := &fakeMe{user: alice}
	p := NewPublisher(me, time.Second)
	a, b := &recorder{}, &recorder{}
	p.Subscribe(a.observe)
	unsubscribe := p.Subscribe(b.observe)

	unsubscribe()
	p.Poll(context.Background())

	assert.Equal(t, 1, a.len())
	assert.Equal(t, 0, b.len())
}

func TestNewPublisher_DefaultInterval(t *testing.T) {
	p := NewPublisher(&fakeMe{}, 0)
	assert.Equal(t, DefaultInterval, p.interval)
}

func TestRun_PollsUntilCancelled(t *testing.T) {
	me := &fakeMe{user: alice}
	p := NewPublisher(me, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		me.mu.Lock()
		defer me.mu.Unlock()
		return me.calls >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
	assert.True(t, p.Current().Authenticated)
}

func TestParentNotifier_SignalsEachSignIn(t *testing.T) {
	var buf bytes.Buffer
	n := NewParentNotifier(&buf)

	n.Observe(State{})
	assert.Empty(t, buf.String())

	n.Observe(State{Authenticated: true, User: alice})
	n.Observe(State{Authenticated: true, User: alice})
	assert.Equal(t, "login-success\n", buf.String())

	n.Observe(State{})
	n.Observe(State{Authenticated: true, User: alice})
	assert.Equal(t, "login-success\nlogin-success\n", buf.String())
}

func TestParentNotifier_WithPublisher(t *testing.T) {
	var buf bytes.Buffer
	me := &fakeMe{err: errors.New("unauthorized")}
	p := NewPublisher(me, time.Second)
	p.Subscribe(NewParentNotifier(&buf).Observe)

	ctx := context.Background()
	p.Poll(ctx)
	me.set(alice, nil)
	p.Poll(ctx)
	p.Poll(ctx)

	assert.Equal(t, "login-success\n", buf.String())
}
