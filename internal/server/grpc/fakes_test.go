package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/services"
	"github.com/shopspring/decimal"
)

const testSecret = "test-secret"

type fakeUsers struct {
	user   *models.User
	tokens *services.TokenPair
	err    error
	lastID string
}

func (f *fakeUsers) Register(ctx context.Context, email, password string) (*models.User, error) {
	return f.user, f.err
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return f.tokens, f.err
}
func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.tokens, f.err
}
func (f *fakeUsers) Logout(ctx context.Context, refreshToken string) error { return f.err }
func (f *fakeUsers) Me(ctx context.Context, userID string) (*models.User, error) {
	f.lastID = userID
	return f.user, f.err
}

type fakeLedger struct {
	account *models.Account
	history []services.HistoryEntry
	tx      *models.Transaction
	err     error

	lastFrom   string
	lastAmount decimal.Decimal
}

func (f *fakeLedger) Balance(ctx context.Context, email string) (*models.Account, error) {
	return f.account, f.err
}
func (f *fakeLedger) History(ctx context.Context, email string) ([]services.HistoryEntry, error) {
	return f.history, f.err
}
func (f *fakeLedger) Transfer(ctx context.Context, fromEmail, toVntID string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	f.lastFrom, f.lastAmount = fromEmail, amount
	return f.tx, f.err
}
func (f *fakeLedger) AdminAdjust(ctx context.Context, adminEmail, targetEmail string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	f.lastFrom, f.lastAmount = adminEmail, amount
	return f.tx, f.err
}

type fakeVotes struct {
	vote   *models.Vote
	votes  []*models.Vote
	ballot *models.Ballot
	tally  *models.Tally
	err    error
	input  services.VoteInput
}

func (f *fakeVotes) List(ctx context.Context, status models.VoteStatus) ([]*models.Vote, error) {
	return f.votes, f.err
}
func (f *fakeVotes) Create(ctx context.Context, in services.VoteInput) (*models.Vote, error) {
	f.input = in
	return f.vote, f.err
}
func (f *fakeVotes) Activate(ctx context.Context, id string) (*models.Vote, error) { return f.vote, f.err }
func (f *fakeVotes) Close(ctx context.Context, id string) (*models.Vote, error)    { return f.vote, f.err }
func (f *fakeVotes) Delete(ctx context.Context, id string) error                   { return f.err }
func (f *fakeVotes) Cast(ctx context.Context, email, voteID, option string) (*models.Ballot, error) {
	return f.ballot, f.err
}
func (f *fakeVotes) Tally(ctx context.Context, voteID string) (*models.Tally, error) {
	return f.tally, f.err
}

type fakeRequests struct {
	request   *models.ServiceRequest
	list      []*models.ServiceRequest
	result    *services.TransitionResult
	err       error
	listedAll bool
}

func (f *fakeRequests) Submit(ctx context.Context, email, title, description, requestType string) (*models.ServiceRequest, error) {
	return f.request, f.err
}
func (f *fakeRequests) List(ctx context.Context, email string, all bool) ([]*models.ServiceRequest, error) {
	f.listedAll = all
	return f.list, f.err
}
func (f *fakeRequests) Approve(ctx context.Context, id, notes string) (*services.TransitionResult, error) {
	return f.result, f.err
}
func (f *fakeRequests) Reject(ctx context.Context, id, notes string) (*services.TransitionResult, error) {
	return f.result, f.err
}

type fakeMarketplace struct {
	flights []*models.Flight
	flight  *models.Flight
	tx      *models.Transaction
	err     error
	created *models.Flight
}

func (f *fakeMarketplace) ListFlights(ctx context.Context) ([]*models.Flight, error) {
	return f.flights, f.err
}
func (f *fakeMarketplace) CreateFlight(ctx context.Context, fl *models.Flight) (*models.Flight, error) {
	f.created = fl
	return f.flight, f.err
}
func (f *fakeMarketplace) SetFlightStatus(ctx context.Context, id string, status models.FlightStatus) error {
	return f.err
}
func (f *fakeMarketplace) Purchase(ctx context.Context, email, flightID string) (*models.Transaction, error) {
	return f.tx, f.err
}

type fakeDocuments struct {
	ticket *services.UploadTicket
	docs   []*models.Document
	url    string
	err    error
	admin  bool
}

func (f *fakeDocuments) RequestUpload(ctx context.Context, email, name string, docType models.DocumentType, notes string) (*services.UploadTicket, error) {
	return f.ticket, f.err
}
func (f *fakeDocuments) List(ctx context.Context, email string) ([]*models.Document, error) {
	return f.docs, f.err
}
func (f *fakeDocuments) DownloadURL(ctx context.Context, email string, isAdmin bool, id string) (string, error) {
	f.admin = isAdmin
	return f.url, f.err
}

type fakeNavigation struct {
	page string
	err  error
}

func (f *fakeNavigation) LogPageView(ctx context.Context, email, path string) (string, error) {
	return f.page, f.err
}

type fakeSettings struct {
	settings services.PublicSettings
	private  bool
}

func (f *fakeSettings) Public() services.PublicSettings { return f.settings }
func (f *fakeSettings) Private() bool                   { return f.private }

type testDeps struct {
	users       *fakeUsers
	ledger      *fakeLedger
	votes       *fakeVotes
	requests    *fakeRequests
	marketplace *fakeMarketplace
	documents   *fakeDocuments
	navigation  *fakeNavigation
	settings    *fakeSettings
}

func newTestDeps() *testDeps {
	return &testDeps{
		users:       &fakeUsers{},
		ledger:      &fakeLedger{},
		votes:       &fakeVotes{},
		requests:    &fakeRequests{},
		marketplace: &fakeMarketplace{},
		documents:   &fakeDocuments{},
		navigation:  &fakeNavigation{},
		settings:    &fakeSettings{settings: services.PublicSettings{AppName: "Portal", AccessMode: config.AccessPublic}},
	}
}

func newTestServer(d *testDeps) *GRPCServer {
	cfg := &config.Config{
		EndpointAddrGRPC:   "127.0.0.1:0",
		SecretKey:          testSecret,
		LoginRatePerSecond: 1,
		LoginBurst:         2,
	}
	s, err := NewGRPCServer(cfg, logging.Nop{}, Services{
		Users:       d.users,
		Ledger:      d.ledger,
		Votes:       d.votes,
		Requests:    d.requests,
		Marketplace: d.marketplace,
		Documents:   d.documents,
		Navigation:  d.navigation,
		Settings:    d.settings,
	})
	if err != nil {
		panic(err)
	}
	return s
}

var sampleTime = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
