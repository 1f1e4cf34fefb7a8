package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/common"
	"github.com/dmitrijs2005/citizenportal/internal/server/models"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

// VoteInput is what an administrator fills in to draft a vote.
type VoteInput struct {
	Title       string
	Description string
	VoteType    models.VoteType
	Options     []string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CleanOptions trims every option and drops the blank ones.
func CleanOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// VoteService is the voting admin: drafts, opens, closes and deletes votes,
// and records citizens' ballots.
type VoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewVoteService(db *sql.DB, m repomanager.RepositoryManager) *VoteService {
	return &VoteService{db: db, repomanager: m, now: time.Now}
}

// Create stores a new vote in draft status.
func (s *VoteService) Create(ctx context.Context, in VoteInput) (*models.Vote, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}

	voteType := in.VoteType
	if voteType == "" {
		voteType = models.VoteTypePoll
	}
	if !voteType.Valid() {
		return nil, fmt.Errorf("%w: unknown vote type %q", common.ErrValidation, voteType)
	}

	options := CleanOptions(in.Options)
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: at least one option is required", common.ErrValidation)
	}

	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", common.ErrValidation)
	}

	vote := &models.Vote{
		Title:       title,
		Description: in.Description,
		VoteType:    voteType,
		Options:     options,
		Status:      models.VoteDraft,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	return s.repomanager.Votes(s.db).Create(ctx, vote)
}

// List returns votes newest first, optionally only those in status.
func (s *VoteService) List(ctx context.Context, status models.VoteStatus) ([]*models.Vote, error) {
	return s.repomanager.Votes(s.db).List(ctx, status)
}

func (s *VoteService) Get(ctx context.Context, id string) (*models.Vote, error) {
	return s.repomanager.Votes(s.db).Get(ctx, id)
}

// Activate opens a draft vote.
func (s *VoteService) Activate(ctx context.Context, id string) (*models.Vote, error) {
	return s.transition(ctx, id, models.VoteDraft, models.VoteActive)
}

// Close ends an active vote.
func (s *VoteService) Close(ctx context.Context, id string) (*models.Vote, error) {
	return s.transition(ctx, id, models.VoteActive, models.VoteClosed)
}

func (s *VoteService) transition(ctx context.Context, id string, from, to models.VoteStatus) (*models.Vote, error) {
	repo := s.repomanager.Votes(s.db)

	vote, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if vote.Status != from {
		return nil, fmt.Errorf("vote is %s: %w", vote.Status, common.ErrInvalidTransition)
	}
	if err := repo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, err
	}
	vote.Status = to
	return vote, nil
}

// Delete removes a vote in any status together with its ballots.
func (s *VoteService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Votes(s.db).Delete(ctx, id)
}

// Cast records email's choice. A second ballot on the same vote yields
// common.ErrAlreadyExists.
func (s *VoteService) Cast(ctx context.Context, email, voteID, option string) (*models.Ballot, error) {
	vote, err := s.repomanager.Votes(s.db).Get(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if !vote.OpenAt(s.now()) {
		return nil, common.ErrNotOpen
	}
	option = strings.TrimSpace(option)
	if !vote.HasOption(option) {
		return nil, fmt.Errorf("%w: %q is not an option of this vote", common.ErrValidation, option)
	}

	return s.repomanager.Ballots(s.db).Create(ctx, &models.Ballot{
		VoteID:         voteID,
		UserEmail:      email,
		SelectedOption: option,
	})
}

// MyBallot returns email's ballot on voteID, or nil if there is none.
func (s *VoteService) MyBallot(ctx context.Context, email, voteID string) (*models.Ballot, error) {
	b, err := s.repomanager.Ballots(s.db).FindByUser(ctx, voteID, email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return b, err
}

// Tally counts ballots per option in option order, zero counts included.
func (s *VoteService) Tally(ctx context.Context, voteID string) (*models.Tally, error) {
	vote, err := s.repomanager.Votes(s.db).Get(ctx, voteID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repomanager.Ballots(s.db).CountByVote(ctx, voteID)
	if err != nil {
		return nil, err
	}

	byOption := make(map[string]int64, len(counts))
	for _, c := range counts {
		byOption[c.Option] = c.Count
	}

	tally := &models.Tally{VoteID: voteID, Counts: make([]models.OptionCount, 0, len(vote.Options))}
	for _, o := range vote.Options {
		n := byOption[o]
		tally.Counts = append(tally.Counts, models.OptionCount{Option: o, Count: n})
		tally.Total += n
	}
	return tally, nil
}

// CloseExpired closes active votes whose end date has passed.
func (s *VoteService) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.repomanager.Votes(s.db).CloseExpired(ctx, now)
}
