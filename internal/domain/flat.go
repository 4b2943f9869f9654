package domain

// Fixed dwell time, in seconds, spent at both ends of a shipment.
const ServiceSeconds = 1000

// Vehicle is a single-trip round vehicle of the optimizer request.
// It always starts and ends at the stock's source location.
type Vehicle struct {
	ID    int         `json:"id"`
	Start Coordinates `json:"start"`
	End   Coordinates `json:"end"`
}

// ShipmentStep is one leg (pickup or delivery) of a shipment request.
type ShipmentStep struct {
	ID          int          `json:"id"`
	Location    Coordinates  `json:"location"`
	TimeWindows []TimeWindow `json:"time_windows"`
	Service     int          `json:"service"`
}

type Shipment struct {
	Pickup   ShipmentStep `json:"pickup"`
	Delivery ShipmentStep `json:"delivery"`
}

// Request is the flat vehicle-routing payload sent to the optimizer.
type Request struct {
	Vehicles  []Vehicle  `json:"vehicles"`
	Shipments []Shipment `json:"shipments"`
}

// Step types emitted by the optimizer.
const (
	StepStart    = "start"
	StepPickup   = "pickup"
	StepDelivery = "delivery"
	StepEnd      = "end"
)

// Step is one stop of an optimized route. ID is only set for
// pickup and delivery steps.
type Step struct {
	Type        string       `json:"type"`
	ID          *int         `json:"id,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
	Arrival     int64        `json:"arrival"`
	Duration    int64        `json:"duration"`
	WaitingTime int64        `json:"waiting_time"`
}

// IsShipmentStep reports whether the step belongs to a shipment.
func (s Step) IsShipmentStep() bool {
	return s.Type == StepPickup || s.Type == StepDelivery
}

type Route struct {
	Vehicle  int    `json:"vehicle"`
	Cost     int64  `json:"cost,omitempty"`
	Duration int64  `json:"duration,omitempty"`
	Geometry any    `json:"geometry,omitempty"`
	Steps    []Step `json:"steps"`
}

// Result is the optimizer response. Summary and Unassigned are passed
// through untouched.
type Result struct {
	Code       *int             `json:"code,omitempty"`
	Summary    map[string]any   `json:"summary,omitempty"`
	Unassigned []map[string]any `json:"unassigned,omitempty"`
	Routes     []Route          `json:"routes"`
}
