package api

import "google.golang.org/protobuf/types/known/timestamppb"

// Amounts travel as decimal strings ("12.50") so no precision is lost.

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type PublicSettings struct {
	AppName    string   `json:"app_name"`
	AccessMode string   `json:"access_mode"`
	Pages      []string `json:"pages"`
	MainPage   string   `json:"main_page"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        string                 `json:"id"`
	Email     string                 `json:"email"`
	Role      string                 `json:"role"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type UserResponse struct {
	User *User `json:"user"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type Account struct {
	ID        string                 `json:"id"`
	VntID     string                 `json:"vnt_id"`
	UserEmail string                 `json:"user_email"`
	Balance   string                 `json:"balance"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type AccountResponse struct {
	Account *Account `json:"account"`
}

type Transaction struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Amount      string                 `json:"amount"`
	FromEmail   string                 `json:"from_email,omitempty"`
	ToEmail     string                 `json:"to_email,omitempty"`
	FromVntID   string                 `json:"from_vnt_id,omitempty"`
	ToVntID     string                 `json:"to_vnt_id,omitempty"`
	Description string                 `json:"description,omitempty"`
	ItemName    string                 `json:"item_name,omitempty"`
	Status      string                 `json:"status"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type HistoryEntry struct {
	Transaction   *Transaction `json:"transaction"`
	Debit         bool         `json:"debit"`
	DisplayAmount string       `json:"display_amount"`
}

type HistoryResponse struct {
	Entries []*HistoryEntry `json:"entries"`
}

type TransferRequest struct {
	ToVntID     string `json:"to_vnt_id"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// AdminAdjustRequest credits (positive Amount) or debits (negative Amount)
// the account of Email.
type AdminAdjustRequest struct {
	Email       string `json:"email"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

type Vote struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	VoteType    string                 `json:"vote_type"`
	Options     []string               `json:"options"`
	Status      string                 `json:"status"`
	StartDate   *timestamppb.Timestamp `json:"start_date,omitempty"`
	EndDate     *timestamppb.Timestamp `json:"end_date,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type ListVotesRequest struct {
	Status string `json:"status,omitempty"`
}

type ListVotesResponse struct {
	Votes []*Vote `json:"votes"`
}

type CreateVoteRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	VoteType    string                 `json:"vote_type,omitempty"`
	Options     []string               `json:"options"`
	StartDate   *timestamppb.Timestamp `json:"start_date,omitempty"`
	EndDate     *timestamppb.Timestamp `json:"end_date,omitempty"`
}

type VoteIDRequest struct {
	VoteID string `json:"vote_id"`
}

type VoteResponse struct {
	Vote *Vote `json:"vote"`
}

type CastBallotRequest struct {
	VoteID string `json:"vote_id"`
	Option string `json:"option"`
}

type Ballot struct {
	ID             string                 `json:"id"`
	VoteID         string                 `json:"vote_id"`
	UserEmail      string                 `json:"user_email"`
	SelectedOption string                 `json:"selected_option"`
	VoteTimestamp  *timestamppb.Timestamp `json:"vote_timestamp,omitempty"`
}

type BallotResponse struct {
	Ballot *Ballot `json:"ballot"`
}

type OptionCount struct {
	Option string `json:"option"`
	Count  int64  `json:"count"`
}

type Tally struct {
	VoteID string         `json:"vote_id"`
	Counts []*OptionCount `json:"counts"`
	Total  int64          `json:"total"`
}

type ServiceRequest struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	UserEmail   string                 `json:"user_email"`
	RequestType string                 `json:"request_type,omitempty"`
	Status      string                 `json:"status"`
	AdminNotes  string                 `json:"admin_notes,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type SubmitRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	RequestType string `json:"request_type,omitempty"`
}

type ServiceRequestResponse struct {
	Request *ServiceRequest `json:"request"`
}

type ListRequestsResponse struct {
	Requests []*ServiceRequest `json:"requests"`
}

type DecideRequest struct {
	RequestID string `json:"request_id"`
	Notes     string `json:"notes,omitempty"`
}

// DecideResponse reports how far an approve or reject got. Outcome is one
// of applied, applied_notification_failed or not_applied.
type DecideResponse struct {
	Request        *ServiceRequest `json:"request,omitempty"`
	Outcome        string          `json:"outcome"`
	NotificationID string          `json:"notification_id,omitempty"`
}

type Flight struct {
	ID             string                 `json:"id"`
	FlightNumber   string                 `json:"flight_number"`
	DepartureCity  string                 `json:"departure_city"`
	ArrivalCity    string                 `json:"arrival_city"`
	DepartureTime  *timestamppb.Timestamp `json:"departure_time,omitempty"`
	ArrivalTime    *timestamppb.Timestamp `json:"arrival_time,omitempty"`
	AircraftModel  string                 `json:"aircraft_model,omitempty"`
	Price          string                 `json:"price"`
	AvailableSeats int                    `json:"available_seats"`
	Status         string                 `json:"status"`
}

type FlightResponse struct {
	Flight *Flight `json:"flight"`
}

type ListFlightsResponse struct {
	Flights []*Flight `json:"flights"`
}

type SetFlightStatusRequest struct {
	FlightID string `json:"flight_id"`
	Status   string `json:"status"`
}

type PurchaseFlightRequest struct {
	FlightID string `json:"flight_id"`
}

type Document struct {
	ID           string                 `json:"id"`
	UserEmail    string                 `json:"user_email"`
	DocumentName string                 `json:"document_name"`
	DocumentType string                 `json:"document_type"`
	Notes        string                 `json:"notes,omitempty"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
}

type RequestDocumentUploadRequest struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	Notes        string `json:"notes,omitempty"`
}

type RequestDocumentUploadResponse struct {
	Document  *Document `json:"document"`
	UploadURL string    `json:"upload_url"`
}

type ListDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type DocumentURLRequest struct {
	DocumentID string `json:"document_id"`
}

type DocumentURLResponse struct {
	URL string `json:"url"`
}

type LogPageViewRequest struct {
	Path string `json:"path"`
}

type LogPageViewResponse struct {
	PageName string `json:"page_name,omitempty"`
}
