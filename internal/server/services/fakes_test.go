package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/dbx"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/ballots"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/documents"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/flights"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/pageviews"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/requests"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/users"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/votes"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the database. The repositories it
// hands out ignore the DBTX; tests that go through dbx.WithTx pair it with a
// sqlmock connection that only expects Begin/Commit/Rollback.
type memStore struct {
	mu  sync.Mutex
	seq int

	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	accounts      map[string]*models.Account
	transactions  []*models.Transaction
	votes         map[string]*models.Vote
	ballots       []*models.Ballot
	requests      map[string]*models.ServiceRequest
	notifications map[string]*models.Notification
	documents     map[string]*models.Document
	flights       map[string]*models.Flight
	pageViews     []*models.PageView

	// error injection
	createTxErr      error
	createTxErrOnce  error
	createNotifyErr  error
	listSentOut      []*models.Transaction
	listReceivedOut  []*models.Transaction
	overrideListings bool
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[string]*models.User{},
		refreshTokens: map[string]*models.RefreshToken{},
		accounts:      map[string]*models.Account{},
		votes:         map[string]*models.Vote{},
		requests:      map[string]*models.ServiceRequest{},
		notifications: map[string]*models.Notification{},
		documents:     map[string]*models.Document{},
		flights:       map[string]*models.Flight{},
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

func (s *memStore) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (s *memStore) Users(dbx.DBTX) users.Repository                   { return memUsers{s} }
func (s *memStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository   { return memRefreshTokens{s} }
func (s *memStore) Accounts(dbx.DBTX) accounts.Repository             { return memAccounts{s} }
func (s *memStore) Transactions(dbx.DBTX) transactions.Repository     { return memTransactions{s} }
func (s *memStore) Votes(dbx.DBTX) votes.Repository                   { return memVotes{s} }
func (s *memStore) Ballots(dbx.DBTX) ballots.Repository               { return memBallots{s} }
func (s *memStore) Requests(dbx.DBTX) requests.Repository             { return memRequests{s} }
func (s *memStore) Notifications(dbx.DBTX) notifications.Repository   { return memNotifications{s} }
func (s *memStore) Documents(dbx.DBTX) documents.Repository           { return memDocuments{s} }
func (s *memStore) Flights(dbx.DBTX) flights.Repository               { return memFlights{s} }
func (s *memStore) PageViews(dbx.DBTX) pageviews.Repository           { return memPageViews{s} }

// users

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	cp := *u
	cp.ID = r.s.nextID()
	cp.CreatedAt = time.Now()
	r.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// refresh tokens

type memRefreshTokens struct{ s *memStore }

func (r memRefreshTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.refreshTokens[token] = &models.RefreshToken{
		ID: r.s.nextID(), UserID: userID, TokenHash: token, ExpiresAt: time.Now().Add(validity),
	}
	return nil
}

func (r memRefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.refreshTokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memRefreshTokens) Delete(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.refreshTokens, token)
	return nil
}

func (r memRefreshTokens) DeleteExpired(_ context.Context, t time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, v := range r.s.refreshTokens {
		if v.Expired(t) {
			delete(r.s.refreshTokens, k)
			n++
		}
	}
	return n, nil
}

// accounts

type memAccounts struct{ s *memStore }

func (r memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAccounts) GetByEmailForUpdate(ctx context.Context, email string) (*models.Account, error) {
	return r.GetByEmail(ctx, email)
}

func (r memAccounts) GetByVntID(_ context.Context, vntID string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.VntID == vntID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memAccounts) CreateIfAbsent(_ context.Context, email, vntID string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[email]; ok {
		return nil, common.ErrAlreadyExists
	}
	a := &models.Account{ID: r.s.nextID(), VntID: vntID, UserEmail: email, Balance: decimal.Zero, CreatedAt: time.Now()}
	r.s.accounts[email] = a
	cp := *a
	return &cp, nil
}

func (r memAccounts) AddBalance(_ context.Context, email string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[email]
	if !ok || a.Balance.Add(delta).IsNegative() {
		return common.ErrInsufficientBalance
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

// transactions

type memTransactions struct{ s *memStore }

func (r memTransactions) Create(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createTxErr != nil {
		return nil, r.s.createTxErr
	}
	if err := r.s.createTxErrOnce; err != nil {
		r.s.createTxErrOnce = nil
		return nil, err
	}
	cp := *tx
	cp.ID = r.s.nextID()
	cp.CreatedAt = time.Now()
	r.s.transactions = append(r.s.transactions, &cp)
	out := cp
	return &out, nil
}

func (r memTransactions) list(match func(*models.Transaction) bool) []*models.Transaction {
	out := []*models.Transaction{}
	for _, t := range r.s.transactions {
		if match(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memTransactions) ListSent(_ context.Context, email string) ([]*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.overrideListings {
		return r.s.listSentOut, nil
	}
	return r.list(func(t *models.Transaction) bool { return t.FromEmail == email }), nil
}

func (r memTransactions) ListReceived(_ context.Context, email string) ([]*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.overrideListings {
		return r.s.listReceivedOut, nil
	}
	return r.list(func(t *models.Transaction) bool { return t.ToEmail == email }), nil
}

// votes

type memVotes struct{ s *memStore }

func (r memVotes) Create(_ context.Context, v *models.Vote) (*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	cp.ID = r.s.nextID()
	cp.CreatedAt = time.Now()
	r.s.votes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memVotes) Get(_ context.Context, id string) (*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.votes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (r memVotes) List(_ context.Context, status models.VoteStatus) ([]*models.Vote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Vote{}
	for _, v := range r.s.votes {
		if status == "" || v.Status == status {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memVotes) UpdateStatus(_ context.Context, id string, from, to models.VoteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.votes[id]
	if !ok || v.Status != from {
		return common.ErrInvalidTransition
	}
	v.Status = to
	return nil
}

func (r memVotes) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.votes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.votes, id)
	kept := r.s.ballots[:0]
	for _, b := range r.s.ballots {
		if b.VoteID != id {
			kept = append(kept, b)
		}
	}
	r.s.ballots = kept
	return nil
}

func (r memVotes) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, v := range r.s.votes {
		if v.Status == models.VoteActive && v.EndDate != nil && v.EndDate.Before(now) {
			v.Status = models.VoteClosed
			n++
		}
	}
	return n, nil
}

// ballots

type memBallots struct{ s *memStore }

func (r memBallots) Create(_ context.Context, b *models.Ballot) (*models.Ballot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.ballots {
		if existing.VoteID == b.VoteID && existing.UserEmail == b.UserEmail {
			return nil, common.ErrAlreadyExists
		}
	}
	cp := *b
	cp.ID = r.s.nextID()
	cp.VoteTimestamp = time.Now()
	r.s.ballots = append(r.s.ballots, &cp)
	out := cp
	return &out, nil
}

func (r memBallots) FindByUser(_ context.Context, voteID, email string) (*models.Ballot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.ballots {
		if b.VoteID == voteID && b.UserEmail == email {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memBallots) CountByVote(_ context.Context, voteID string) ([]models.OptionCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int64{}
	for _, b := range r.s.ballots {
		if b.VoteID == voteID {
			counts[b.SelectedOption]++
		}
	}
	out := make([]models.OptionCount, 0, len(counts))
	for o, n := range counts {
		out = append(out, models.OptionCount{Option: o, Count: n})
	}
	return out, nil
}

// requests

type memRequests struct{ s *memStore }

func (r memRequests) Create(_ context.Context, req *models.ServiceRequest) (*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *req
	cp.ID = r.s.nextID()
	cp.Status = models.RequestPending
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.requests[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memRequests) Get(_ context.Context, id string) (*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *req
	return &cp, nil
}

func (r memRequests) list(match func(*models.ServiceRequest) bool) []*models.ServiceRequest {
	out := []*models.ServiceRequest{}
	for _, req := range r.s.requests {
		if match(req) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memRequests) List(context.Context) ([]*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(*models.ServiceRequest) bool { return true }), nil
}

func (r memRequests) ListByUser(_ context.Context, email string) ([]*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(req *models.ServiceRequest) bool { return req.UserEmail == email }), nil
}

func (r memRequests) Decide(_ context.Context, id string, status models.RequestStatus, notes string) (*models.ServiceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok || req.Status != models.RequestPending {
		return nil, common.ErrInvalidTransition
	}
	req.Status = status
	req.AdminNotes = notes
	req.UpdatedAt = time.Now()
	cp := *req
	return &cp, nil
}

// notifications

type memNotifications struct{ s *memStore }

func (r memNotifications) Create(_ context.Context, n *models.Notification) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createNotifyErr != nil {
		return nil, r.s.createNotifyErr
	}
	cp := *n
	cp.ID = r.s.nextID()
	cp.Status = models.NotificationPending
	cp.CreatedAt = time.Now()
	r.s.notifications[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memNotifications) Get(_ context.Context, id string) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *n
	return &cp, nil
}

func (r memNotifications) MarkSent(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return common.ErrorNotFound
	}
	now := time.Now()
	n.Status = models.NotificationSent
	n.Attempts++
	n.SentAt = &now
	return nil
}

func (r memNotifications) MarkFailed(_ context.Context, id string, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return common.ErrorNotFound
	}
	n.Status = models.NotificationFailed
	n.Attempts++
	n.LastError = reason
	return nil
}

func (r memNotifications) ListRetryable(_ context.Context, maxAttempts int, staleBefore time.Time, limit int) ([]*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range r.s.notifications {
		stale := n.Status == models.NotificationPending && n.CreatedAt.Before(staleBefore)
		if (n.Status == models.NotificationFailed || stale) && n.Attempts < maxAttempts {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// documents

type memDocuments struct{ s *memStore }

func (r memDocuments) Create(_ context.Context, d *models.Document) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	cp.ID = r.s.nextID()
	cp.CreatedAt = time.Now()
	r.s.documents[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memDocuments) Get(_ context.Context, id string) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r memDocuments) ListByUser(_ context.Context, email string) ([]*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Document{}
	for _, d := range r.s.documents {
		if d.UserEmail == email {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

// flights

type memFlights struct{ s *memStore }

func (r memFlights) Create(_ context.Context, f *models.Flight) (*models.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *f
	cp.ID = r.s.nextID()
	if cp.Status == "" {
		cp.Status = models.FlightScheduled
	}
	r.s.flights[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memFlights) Get(_ context.Context, id string) (*models.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *f
	return &cp, nil
}

func (r memFlights) GetForUpdate(ctx context.Context, id string) (*models.Flight, error) {
	return r.Get(ctx, id)
}

func (r memFlights) List(context.Context) ([]*models.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Flight{}
	for _, f := range r.s.flights {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

func (r memFlights) SetStatus(_ context.Context, id string, status models.FlightStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok {
		return common.ErrorNotFound
	}
	f.Status = status
	return nil
}

func (r memFlights) TakeSeat(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.flights[id]
	if !ok || f.Status != models.FlightScheduled || f.AvailableSeats <= 0 {
		return common.ErrNotOpen
	}
	f.AvailableSeats--
	return nil
}

// page views

type memPageViews struct{ s *memStore }

func (r memPageViews) Create(_ context.Context, email, pageName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pageViews = append(r.s.pageViews, &models.PageView{
		ID: r.s.nextID(), UserEmail: email, PageName: pageName, CreatedAt: time.Now(),
	})
	return nil
}

func (r memPageViews) CountSince(_ context.Context, t time.Time) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, v := range r.s.pageViews {
		if !v.CreatedAt.Before(t) {
			out[v.PageName]++
		}
	}
	return out, nil
}

// helpers

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func (s *memStore) seedAccount(email, vntID string, balance string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &models.Account{
		ID: s.nextID(), VntID: vntID, UserEmail: email,
		Balance: decimal.RequireFromString(balance), CreatedAt: time.Now(),
	}
}

func (s *memStore) balance(email string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[email]; ok {
		return a.Balance
	}
	return decimal.Zero
}
