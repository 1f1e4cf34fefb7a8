package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/client/config"
	"github.com/dmitrijs2005/citizenportal/internal/logging"
)

var errNotImplemented = errors.New("not implemented")

// fakePortal embeds the interface so tests only implement what they call.
type fakePortal struct {
	portal

	loggedIn bool
	user     *api.User
	settings *api.PublicSettings
	settErr  error

	history    []*api.HistoryEntry
	transferTx *api.Transaction
	transferIn []string
	callErr    error

	decide     *api.DecideResponse
	decideArgs []string

	createdVote *api.CreateVoteRequest
	deleted     []string

	docs      []*api.Document
	docURL    string
	uploadRes *api.RequestDocumentUploadResponse
	uploadIn  []string

	pageName string
	pageErr  error
	logins   int
	logouts  int
}

func (f *fakePortal) Close() error   { return nil }
func (f *fakePortal) LoggedIn() bool { return f.loggedIn }

func (f *fakePortal) Me(ctx context.Context) (*api.User, error) {
	if !f.loggedIn || f.user == nil {
		return nil, errNotImplemented
	}
	return f.user, nil
}

func (f *fakePortal) PublicSettings(ctx context.Context) (*api.PublicSettings, error) {
	return f.settings, f.settErr
}

func (f *fakePortal) Login(ctx context.Context, email, password string) error {
	f.logins++
	if f.callErr != nil {
		return f.callErr
	}
	f.loggedIn = true
	if f.user == nil {
		f.user = &api.User{ID: "u1", Email: email, Role: "user"}
	}
	return nil
}

func (f *fakePortal) Logout(ctx context.Context) error {
	f.logouts++
	f.loggedIn = false
	return f.callErr
}

func (f *fakePortal) History(ctx context.Context) ([]*api.HistoryEntry, error) {
	return f.history, f.callErr
}

func (f *fakePortal) Transfer(ctx context.Context, toVntID, amount, description string) (*api.Transaction, error) {
	f.transferIn = []string{toVntID, amount, description}
	return f.transferTx, f.callErr
}

func (f *fakePortal) ApproveRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error) {
	f.decideArgs = []string{"approve", requestID, notes}
	return f.decide, f.callErr
}

func (f *fakePortal) RejectRequest(ctx context.Context, requestID, notes string) (*api.DecideResponse, error) {
	f.decideArgs = []string{"reject", requestID, notes}
	return f.decide, f.callErr
}

func (f *fakePortal) CreateVote(ctx context.Context, in *api.CreateVoteRequest) (*api.Vote, error) {
	f.createdVote = in
	return &api.Vote{ID: "v1", Title: in.Title, Options: in.Options, Status: "draft"}, f.callErr
}

func (f *fakePortal) DeleteVote(ctx context.Context, voteID string) error {
	f.deleted = append(f.deleted, voteID)
	return f.callErr
}

func (f *fakePortal) ListDocuments(ctx context.Context) ([]*api.Document, error) {
	return f.docs, f.callErr
}

func (f *fakePortal) DocumentURL(ctx context.Context, documentID string) (string, error) {
	return f.docURL, f.callErr
}

func (f *fakePortal) RequestDocumentUpload(ctx context.Context, name, documentType, notes string) (*api.RequestDocumentUploadResponse, error) {
	f.uploadIn = []string{name, documentType, notes}
	return f.uploadRes, f.callErr
}

func (f *fakePortal) LogPageView(ctx context.Context, path string) (string, error) {
	return f.pageName, f.pageErr
}

// newTestApp wires an App to the fake with scripted stdin.
func newTestApp(t *testing.T, p *fakePortal, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	c := &config.Config{SessionPollInterval: time.Hour, RequestTimeout: time.Second}
	a := newApp(c, p, bufio.NewReader(strings.NewReader(input)), out, logging.Nop{})
	a.publisher.Poll(context.Background())
	return a, out
}

// scriptText replaces getSimpleText with answers given in order.
func scriptText(t *testing.T, answers ...string) {
	t.Helper()
	old := getSimpleText
	t.Cleanup(func() { getSimpleText = old })
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
}
