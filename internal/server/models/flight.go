package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightBoarding  FlightStatus = "boarding"
	FlightDeparted  FlightStatus = "departed"
	FlightArrived   FlightStatus = "arrived"
	FlightCancelled FlightStatus = "cancelled"
)

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightScheduled, FlightBoarding, FlightDeparted, FlightArrived, FlightCancelled:
		return true
	}
	return false
}

// Flight is a marketplace listing; seats are bought with VHS.
type Flight struct {
	ID             string
	FlightNumber   string
	DepartureCity  string
	ArrivalCity    string
	DepartureTime  time.Time
	ArrivalTime    *time.Time
	AircraftModel  string
	Price          decimal.Decimal
	AvailableSeats int
	Status         FlightStatus
}
