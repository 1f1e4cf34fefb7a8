package grpc

import (
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/services"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func timestampPtr(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamp(*t)
}

func timePtr(ts *timestamppb.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.AsTime()
	return &t
}

func userToAPI(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: timestamp(u.CreatedAt)}
}

func accountToAPI(a *models.Account) *api.Account {
	return &api.Account{
		ID:        a.ID,
		VntID:     a.VntID,
		UserEmail: a.UserEmail,
		Balance:   a.Balance.StringFixed(2),
		CreatedAt: timestamp(a.CreatedAt),
	}
}

func transactionToAPI(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		FromEmail:   t.FromEmail,
		ToEmail:     t.ToEmail,
		FromVntID:   t.FromVntID,
		ToVntID:     t.ToVntID,
		Description: t.Description,
		ItemName:    t.ItemName,
		Status:      string(t.Status),
		CreatedAt:   timestamp(t.CreatedAt),
	}
}

func historyToAPI(entries []services.HistoryEntry) []*api.HistoryEntry {
	out := make([]*api.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, &api.HistoryEntry{
			Transaction:   transactionToAPI(e.Transaction),
			Debit:         e.Debit,
			DisplayAmount: e.DisplayAmount(),
		})
	}
	return out
}

func voteToAPI(v *models.Vote) *api.Vote {
	return &api.Vote{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		VoteType:    string(v.VoteType),
		Options:     v.Options,
		Status:      string(v.Status),
		StartDate:   timestampPtr(v.StartDate),
		EndDate:     timestampPtr(v.EndDate),
		CreatedAt:   timestamp(v.CreatedAt),
	}
}

func ballotToAPI(b *models.Ballot) *api.Ballot {
	return &api.Ballot{
		ID:             b.ID,
		VoteID:         b.VoteID,
		UserEmail:      b.UserEmail,
		SelectedOption: b.SelectedOption,
		VoteTimestamp:  timestamp(b.VoteTimestamp),
	}
}

func tallyToAPI(t *models.Tally) *api.Tally {
	out := &api.Tally{VoteID: t.VoteID, Total: t.Total, Counts: make([]*api.OptionCount, 0, len(t.Counts))}
	for _, c := range t.Counts {
		out.Counts = append(out.Counts, &api.OptionCount{Option: c.Option, Count: c.Count})
	}
	return out
}

func requestToAPI(r *models.ServiceRequest) *api.ServiceRequest {
	if r == nil {
		return nil
	}
	return &api.ServiceRequest{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		UserEmail:   r.UserEmail,
		RequestType: r.RequestType,
		Status:      string(r.Status),
		AdminNotes:  r.AdminNotes,
		CreatedAt:   timestamp(r.CreatedAt),
		UpdatedAt:   timestamp(r.UpdatedAt),
	}
}

func flightToAPI(f *models.Flight) *api.Flight {
	return &api.Flight{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		DepartureCity:  f.DepartureCity,
		ArrivalCity:    f.ArrivalCity,
		DepartureTime:  timestamp(f.DepartureTime),
		ArrivalTime:    timestampPtr(f.ArrivalTime),
		AircraftModel:  f.AircraftModel,
		Price:          f.Price.StringFixed(2),
		AvailableSeats: f.AvailableSeats,
		Status:         string(f.Status),
	}
}

func documentToAPI(d *models.Document) *api.Document {
	return &api.Document{
		ID:           d.ID,
		UserEmail:    d.UserEmail,
		DocumentName: d.DocumentName,
		DocumentType: string(d.DocumentType),
		Notes:        d.Notes,
		CreatedAt:    timestamp(d.CreatedAt),
	}
}
