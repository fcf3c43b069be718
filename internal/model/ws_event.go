package model

import "encoding/json"

type WSEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type WSAnnounce struct {
	Message string `json:"message"`
}

// FlightPositionUpdate is the payload of the 5-second cosmetic position
// refresh pushed over WS. Purely derived from wall clock; never written back
// to the authoritative snapshot.
type FlightPositionUpdate struct {
	AircraftID   string  `json:"aircraft_id"`
	Registration string  `json:"registration"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Progress     float64 `json:"progress"`
}
