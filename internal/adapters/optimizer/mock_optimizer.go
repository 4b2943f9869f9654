package optimizer

import (
	"context"
	"dfc-optim-service/internal/domain"
	"fmt"
	"sync"
)

// MockOptimizer answers without any network call: one route per vehicle,
// visiting start, pickup, delivery and end. The i-th vehicle carries the
// i-th shipment, as the outbound transformation emits them.
type MockOptimizer struct {
	// Service time added between consecutive steps.
	TravelSeconds int64
	// DepartAt is the arrival time of the start step.
	DepartAt int64

	mu    sync.Mutex
	calls []domain.Request
}

func NewMockOptimizer() *MockOptimizer {
	return &MockOptimizer{TravelSeconds: 600}
}

func (m *MockOptimizer) Optimize(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Vehicles) != len(req.Shipments) {
		return nil, fmt.Errorf("mock optimizer: %d vehicles for %d shipments", len(req.Vehicles), len(req.Shipments))
	}
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	code := 0
	result := &domain.Result{
		Code:    &code,
		Summary: map[string]any{"routes": float64(len(req.Vehicles))},
		Routes:  make([]domain.Route, 0, len(req.Vehicles)),
	}

	for i, v := range req.Vehicles {
		s := req.Shipments[i]
		arrival := m.DepartAt

		next := func(typ string, id *int, loc domain.Coordinates, service int64) domain.Step {
			l := loc
			step := domain.Step{Type: typ, ID: id, Location: &l, Arrival: arrival, Duration: arrival - m.DepartAt}
			arrival += service + m.TravelSeconds
			return step
		}

		pickupID, deliveryID := s.Pickup.ID, s.Delivery.ID
		steps := []domain.Step{
			next(domain.StepStart, nil, v.Start, 0),
			next(domain.StepPickup, &pickupID, s.Pickup.Location, int64(s.Pickup.Service)),
			next(domain.StepDelivery, &deliveryID, s.Delivery.Location, int64(s.Delivery.Service)),
			next(domain.StepEnd, nil, v.End, 0),
		}

		result.Routes = append(result.Routes, domain.Route{
			Vehicle:  v.ID,
			Duration: steps[len(steps)-1].Duration,
			Steps:    steps,
		})
	}

	return result, nil
}

// Calls returns the requests received so far.
func (m *MockOptimizer) Calls() []domain.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Request, len(m.calls))
	copy(out, m.calls)
	return out
}
