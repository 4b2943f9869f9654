package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks inputs that are not a usable graph.
var ErrInvalidInput = errors.New("invalid input graph")

type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid DFC graph: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// SkipReason classifies why an order line produced no vehicle/shipment.
type SkipReason string

const (
	SkipMissingSource            SkipReason = "missing_source"
	SkipInvalidSourceCoordinates SkipReason = "invalid_source_coordinates"
	SkipMissingPickupAddress     SkipReason = "missing_pickup_address"
	SkipInvalidPickupCoordinates SkipReason = "invalid_pickup_coordinates"
)

// UnresolvableReferenceError describes an order line that was skipped.
// It is collected alongside the flat request, never returned as a failure.
type UnresolvableReferenceError struct {
	OrderID string
	LineID  string
	Reason  SkipReason
	Err     error
}

func (e *UnresolvableReferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order %s line %s skipped (%s): %v", e.OrderID, e.LineID, e.Reason, e.Err)
	}
	return fmt.Sprintf("order %s line %s skipped (%s)", e.OrderID, e.LineID, e.Reason)
}

func (e *UnresolvableReferenceError) Unwrap() error { return e.Err }

// OptimizerError is returned when the optimizer answers with a non-success status.
type OptimizerError struct {
	Status  int
	Body    string
	Command string
}

func (e *OptimizerError) Error() string {
	return fmt.Sprintf("verso optimization failed: status %d: %s", e.Status, e.Body)
}

// ReconstructionGapError records an optimizer shipment step whose id
// matches no order line. The step is still emitted.
type ReconstructionGapError struct {
	RouteIndex int
	StepIndex  int
	StepType   string
	StepID     *int
}

func (e *ReconstructionGapError) Error() string {
	if e.StepID == nil {
		return fmt.Sprintf("route %d step %d (%s): no shipment id", e.RouteIndex, e.StepIndex, e.StepType)
	}
	return fmt.Sprintf("route %d step %d (%s): id %d matches no order line", e.RouteIndex, e.StepIndex, e.StepType, *e.StepID)
}
