package models

import "time"

type VoteType string

const (
	VoteTypePoll       VoteType = "poll"
	VoteTypeReferendum VoteType = "referendum"
	VoteTypeElection   VoteType = "election"
)

func (t VoteType) Valid() bool {
	switch t {
	case VoteTypePoll, VoteTypeReferendum, VoteTypeElection:
		return true
	}
	return false
}

type VoteStatus string

const (
	VoteDraft  VoteStatus = "draft"
	VoteActive VoteStatus = "active"
	VoteClosed VoteStatus = "closed"
)

type Vote struct {
	ID          string
	Title       string
	Description string
	VoteType    VoteType
	Options     []string
	Status      VoteStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}

// HasOption reports whether option is one of the vote's choices.
func (v *Vote) HasOption(option string) bool {
	for _, o := range v.Options {
		if o == option {
			return true
		}
	}
	return false
}

// OpenAt reports whether ballots may be cast at t.
func (v *Vote) OpenAt(t time.Time) bool {
	if v.Status != VoteActive {
		return false
	}
	if v.StartDate != nil && t.Before(*v.StartDate) {
		return false
	}
	if v.EndDate != nil && t.After(*v.EndDate) {
		return false
	}
	return true
}

// Ballot is one citizen's choice for one vote.
type Ballot struct {
	ID             string
	VoteID         string
	UserEmail      string
	SelectedOption string
	VoteTimestamp  time.Time
}

type OptionCount struct {
	Option string
	Count  int64
}

type Tally struct {
	VoteID string
	Counts []OptionCount
	Total  int64
}
