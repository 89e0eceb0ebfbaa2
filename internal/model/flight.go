package model

import "time"

// Flight is an immutable snapshot of a scheduled flight as returned
// by the airline backend.  The gateway never mutates it; it is
// carried through the booking wizard exactly as fetched so that the
// confirmation step sees the same schedule, route and fare the
// customer originally picked.
//
// Fields:
//  ID              – backend identifier of the flight.
//  FlightNumber    – public flight designator (e.g. "QA1203").
//  AirlineName     – operating airline display name.
//  DepartureTime   – scheduled departure timestamp.
//  ArrivalTime     – scheduled arrival timestamp.
//  DepartureCity   – departure city display name.
//  DepartureAirport– departure airport code or name.
//  ArrivalCity     – arrival city display name.
//  ArrivalAirport  – arrival airport code or name.
//  BasePrice       – base fare for one economy one-way ticket; class
//                    and trip multipliers are applied on top of it.
//  EconomySeats    – seat count of the economy section.
//  BusinessSeats   – seat count of the business section.
//  FirstSeats      – seat count of the first-class section.
type Flight struct {
	ID               string    `json:"id"`
	FlightNumber     string    `json:"flight_number"`
	AirlineName      string    `json:"airline_name"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	DepartureCity    string    `json:"departure_city"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalCity      string    `json:"arrival_city"`
	ArrivalAirport   string    `json:"arrival_airport"`
	BasePrice        float64   `json:"base_price"`
	EconomySeats     int       `json:"economy_seats"`
	BusinessSeats    int       `json:"business_seats"`
	FirstSeats       int       `json:"first_seats"`
}
