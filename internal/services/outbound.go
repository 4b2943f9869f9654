package services

import (
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/ldgraph"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/ports"
	"fmt"

	"github.com/charmbracelet/log"
)

// OutboundResult is the flat optimizer request together with everything
// needed to map the optimizer's answer back onto the graph.
type OutboundResult struct {
	Request domain.Request
	// Graph is the request's own flattened copy of the input, with
	// correlation ids attached to the order lines that were kept.
	Graph        *ldgraph.Graph
	Correlations *domain.Correlations
	Skipped      []*domain.UnresolvableReferenceError
}

// Outbound converts a DFC graph into a flat vehicle-routing request.
//
// Orders are walked in graph order and their parts in hasPart order. A part
// whose source or pickup address cannot be resolved to valid coordinates is
// skipped and reported in Skipped; ids are only minted for kept parts.
func Outbound(ctx context.Context, proc ports.GraphProcessor, input any) (_ *OutboundResult, err error) {
	defer obs.Time(ctx, "services.Outbound")(&err)

	g, err := ldgraph.Load(ctx, proc, input)
	if err != nil {
		return nil, fmt.Errorf("outbound: %w", err)
	}

	res := &OutboundResult{
		Request: domain.Request{
			Vehicles:  []domain.Vehicle{},
			Shipments: []domain.Shipment{},
		},
		Graph:        g,
		Correlations: domain.NewCorrelations(),
	}

	// Ids are scoped to this call.
	var shipmentIDs, vehicleIDs domain.Counter

	for _, order := range g.Orders() {
		orderID := order.ID()

		pickupPlace, _ := g.PickupPlace(order)
		pickupAddr, hasPickup := g.PickupAddress(order)

		var pickupCoords domain.Coordinates
		var pickupErr error
		if hasPickup {
			pickupCoords, pickupErr = g.Coordinates(pickupAddr)
		}

		for _, line := range g.Parts(order) {
			skip := func(reason domain.SkipReason, cause error) {
				e := &domain.UnresolvableReferenceError{
					OrderID: orderID,
					LineID:  line.ID(),
					Reason:  reason,
					Err:     cause,
				}
				res.Skipped = append(res.Skipped, e)
				log.Warn("order line skipped", "req_id", obs.RequestID(ctx), "order", orderID, "line", line.ID(), "reason", reason, "err", cause)
			}

			sourceAddr, ok := g.SourceAddress(line)
			if !ok {
				skip(domain.SkipMissingSource, nil)
				continue
			}
			sourceCoords, err := g.Coordinates(sourceAddr)
			if err != nil {
				skip(domain.SkipInvalidSourceCoordinates, err)
				continue
			}
			if !hasPickup {
				skip(domain.SkipMissingPickupAddress, nil)
				continue
			}
			if pickupErr != nil {
				skip(domain.SkipInvalidPickupCoordinates, pickupErr)
				continue
			}

			sourceLoc, _ := g.SourceLocation(line)

			pickupID := shipmentIDs.Next()
			deliveryID := shipmentIDs.Next()

			g.Annotate(line.ID(), pickupID, deliveryID)
			res.Correlations.Add(domain.Correlation{
				OrderID:    orderID,
				LineID:     line.ID(),
				PickupID:   pickupID,
				DeliveryID: deliveryID,
			})

			res.Request.Vehicles = append(res.Request.Vehicles, domain.Vehicle{
				ID:    vehicleIDs.Next(),
				Start: sourceCoords,
				End:   sourceCoords,
			})

			res.Request.Shipments = append(res.Request.Shipments, domain.Shipment{
				Pickup: domain.ShipmentStep{
					ID:          pickupID,
					Location:    sourceCoords,
					TimeWindows: []domain.TimeWindow{g.OpeningWindow(pickupAddr, pickupPlace)},
					Service:     domain.ServiceSeconds,
				},
				Delivery: domain.ShipmentStep{
					ID:          deliveryID,
					Location:    pickupCoords,
					TimeWindows: []domain.TimeWindow{g.OpeningWindow(sourceAddr, sourceLoc)},
					Service:     domain.ServiceSeconds,
				},
			})
		}
	}

	for _, c := range res.Correlations.Lines() {
		log.Debug("order line kept",
			"req_id", obs.RequestID(ctx),
			"order", c.OrderID,
			"line", c.LineID,
			"pickup", c.PickupID,
			"delivery", c.DeliveryID,
		)
	}
	log.Debug("outbound transformation done",
		"req_id", obs.RequestID(ctx),
		"kept", res.Correlations.Len(),
		"skipped", len(res.Skipped),
	)

	return res, nil
}
