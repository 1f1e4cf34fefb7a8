package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/api"
	"github.com/dmitrijs2005/citizenportal/internal/common"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Flights lists the marketplace.
func (a *App) Flights(ctx context.Context, args []string) error {
	flights, err := a.portal.ListFlights(ctx)
	if err != nil {
		return err
	}
	if len(flights) == 0 {
		a.println("No flights.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tFLIGHT\tROUTE\tDEPARTS\tPRICE\tSEATS\tSTATUS")
	for _, f := range flights {
		fmt.Fprintf(w, "%s\t%s\t%s -> %s\t%s\t%s %s\t%d\t%s\n",
			f.ID, f.FlightNumber, f.DepartureCity, f.ArrivalCity, formatTime(f.DepartureTime),
			f.Price, common.CurrencyCode, f.AvailableSeats, f.Status)
	}
	return w.Flush()
}

// Buy purchases one seat: buy <flight-id>
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: buy <flight-id>")
		return nil
	}
	tx, err := a.portal.PurchaseFlight(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("Purchased %s for %s %s\n", tx.ItemName, tx.Amount, common.CurrencyCode)
	return nil
}

// NewFlight adds a flight interactively.
func (a *App) NewFlight(ctx context.Context, args []string) error {
	f := &api.Flight{}
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Flight number", &f.FlightNumber},
		{"Departure city", &f.DepartureCity},
		{"Arrival city", &f.ArrivalCity},
		{"Aircraft model (optional)", &f.AircraftModel},
		{"Price", &f.Price},
	}
	for _, fld := range fields {
		v, err := getSimpleText(a.reader, fld.prompt, a.out)
		if err != nil {
			return err
		}
		*fld.dst = v
	}

	seats, err := getSimpleText(a.reader, "Available seats", a.out)
	if err != nil {
		return err
	}
	if f.AvailableSeats, err = strconv.Atoi(seats); err != nil {
		return fmt.Errorf("bad seat count %q", seats)
	}

	if f.DepartureTime, err = a.readDateTime("Departure YYYY-MM-DD HH:MM"); err != nil {
		return err
	}
	if f.ArrivalTime, err = a.readDateTime("Arrival YYYY-MM-DD HH:MM (optional)"); err != nil {
		return err
	}

	created, err := a.portal.CreateFlight(ctx, f)
	if err != nil {
		return err
	}
	a.printf("Flight %s added as %s\n", created.FlightNumber, created.ID)
	return nil
}

func (a *App) readDateTime(prompt string) (*timestamppb.Timestamp, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := time.ParseInLocation(dateTimeLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad time %q, expected YYYY-MM-DD HH:MM", s)
	}
	return timestamppb.New(t), nil
}

// FlightStatus changes a flight's status: flightstatus <flight-id> <status>
func (a *App) FlightStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: flightstatus <flight-id> <scheduled|boarding|departed|arrived|cancelled>")
		return nil
	}
	if err := a.portal.SetFlightStatus(ctx, args[0], args[1]); err != nil {
		return err
	}
	a.printf("Flight %s is now %s\n", args[0], args[1])
	return nil
}
