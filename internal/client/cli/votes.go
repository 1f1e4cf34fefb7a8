package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Votes lists votes, optionally filtered by status: votes [draft|active|closed]
func (a *App) Votes(ctx context.Context, args []string) error {
	voteStatus := ""
	if len(args) > 0 {
		voteStatus = args[0]
	}
	votes, err := a.portal.ListVotes(ctx, voteStatus)
	if err != nil {
		return err
	}
	if len(votes) == 0 {
		a.println("No votes.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tENDS\tOPTIONS")
	for _, v := range votes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.Title, v.VoteType, v.Status, formatTime(v.EndDate), strings.Join(v.Options, " | "))
	}
	return w.Flush()
}

// Vote casts a ballot: vote <vote-id> <option>. Options may contain spaces.
func (a *App) Vote(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println("Usage: vote <vote-id> <option>")
		return nil
	}
	b, err := a.portal.CastBallot(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printf("Your vote for %q was recorded\n", b.SelectedOption)
	return nil
}

func (a *App) Tally(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: tally <vote-id>")
		return nil
	}
	t, err := a.portal.Tally(ctx, args[0])
	if err != nil {
		return err
	}
	w := a.table()
	for _, c := range t.Counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Option, c.Count)
	}
	fmt.Fprintf(w, "total\t%d\n", t.Total)
	return w.Flush()
}

// NewVote creates a draft vote interactively.
func (a *App) NewVote(ctx context.Context, args []string) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	voteType, err := getSimpleText(a.reader, "Type: poll, referendum or election (default poll)", a.out)
	if err != nil {
		return err
	}
	options, err := getLines(a.reader, "Options, one per line", a.out)
	if err != nil {
		return err
	}
	start, err := a.readDate("Start date YYYY-MM-DD (optional)")
	if err != nil {
		return err
	}
	end, err := a.readDate("End date YYYY-MM-DD (optional)")
	if err != nil {
		return err
	}

	v, err := a.portal.CreateVote(ctx, &api.CreateVoteRequest{
		Title:       title,
		Description: description,
		VoteType:    voteType,
		Options:     options,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return err
	}
	a.printf("Created draft vote %s with %d options\n", v.ID, len(v.Options))
	return nil
}

// readDate reads an optional local date. An empty answer yields nil.
func (a *App) readDate(prompt string) (*timestamppb.Timestamp, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad date %q, expected YYYY-MM-DD", s)
	}
	return timestamppb.New(t), nil
}

func (a *App) ActivateVote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: activate <vote-id>")
		return nil
	}
	v, err := a.portal.ActivateVote(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Vote %s is now %s\n", v.ID, v.Status)
	return nil
}

func (a *App) CloseVote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: close <vote-id>")
		return nil
	}
	v, err := a.portal.CloseVote(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Vote %s is now %s\n", v.ID, v.Status)
	return nil
}

// DeleteVote removes a vote and its ballots after confirmation.
func (a *App) DeleteVote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: deletevote <vote-id>")
		return nil
	}
	ok, err := a.confirm(fmt.Sprintf("Delete vote %s and all its ballots?", args[0]))
	if err != nil || !ok {
		return err
	}
	if err := a.portal.DeleteVote(ctx, args[0]); err != nil {
		return err
	}
	a.println("Vote deleted")
	return nil
}

func (a *App) confirm(question string) (bool, error) {
	answer, err := getSimpleText(a.reader, question+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
