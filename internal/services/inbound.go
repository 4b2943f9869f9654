package services

import (
	"cmp"
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/ldgraph"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/ports"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

type InboundRequest struct {
	Result   *domain.Result
	Outbound *OutboundResult
	// ContextURL locates the vocabulary used for the merged graph. When
	// empty, the input graph's own context is used.
	ContextURL string
	// Base prefixes the identifiers of reconstructed entities.
	Base string
}

type InboundResult struct {
	Graph map[string]any
	Gaps  []*domain.ReconstructionGapError
}

// Inbound merges the optimizer's routes back into the graph as Shipment,
// Step, Vehicle and Route nodes referencing the original entities.
func Inbound(
	ctx context.Context,
	req InboundRequest,
	proc ports.GraphProcessor,
	contexts ports.ContextLoader,
) (_ *InboundResult, err error) {
	defer obs.Time(ctx, "services.Inbound")(&err)

	if req.Result == nil {
		return nil, errors.New("inbound: optimizer result is nil")
	}
	if req.Outbound == nil || req.Outbound.Graph == nil {
		return nil, errors.New("inbound: annotated graph is missing")
	}

	vocab := req.Outbound.Graph.Context()
	if req.ContextURL != "" {
		if contexts == nil {
			return nil, errors.New("inbound: context url set without a context loader")
		}
		vocab, err = contexts.LoadContext(ctx, req.ContextURL)
		if err != nil {
			return nil, fmt.Errorf("inbound: load context: %w", err)
		}
	}
	extended := ldgraph.ExtendedContext(vocab)

	// The annotated copy is re-read with the correlation terms declared so
	// the ids survive expansion.
	doc := req.Outbound.Graph.Document()
	doc["@context"] = ldgraph.ExtendedContext(req.Outbound.Graph.Context())

	flat, err := proc.Flatten(ctx, doc, extended)
	if err != nil {
		return nil, fmt.Errorf("inbound: flatten annotated graph: %w", err)
	}
	g := ldgraph.New(flat, extended)

	r := &reconstruction{
		graph:     g,
		lines:     g.LinesByShipmentID(),
		corrs:     req.Outbound.Correlations,
		base:      strings.TrimRight(req.Base, "/"),
		shipments: make(map[string]string),
	}

	created := make([]map[string]any, 0)
	for routeIndex, route := range req.Result.Routes {
		created = append(created, r.route(routeIndex, route)...)
	}

	for _, gap := range r.gaps {
		log.Debug("step without order line", "req_id", obs.RequestID(ctx), "gap", gap.Error())
	}

	nodes := append(g.Nodes(), created...)
	SortNodes(nodes)

	list := make([]any, len(nodes))
	for i, n := range nodes {
		list[i] = n
	}

	return &InboundResult{
		Graph: map[string]any{
			"@context": extended,
			"@graph":   list,
		},
		Gaps: r.gaps,
	}, nil
}

// reconstruction holds the state of one Inbound call.
type reconstruction struct {
	graph *ldgraph.Graph
	lines map[int]ldgraph.Node
	corrs *domain.Correlations
	base  string

	// order line id -> shipment id, so a line's pickup and delivery steps
	// share one Shipment.
	shipments map[string]string
	gaps      []*domain.ReconstructionGapError
}

func (r *reconstruction) id(format string, args ...any) string {
	return r.base + "/" + fmt.Sprintf(format, args...)
}

func (r *reconstruction) route(routeIndex int, route domain.Route) []map[string]any {
	vehicleID := r.id("vehicle-%d", route.Vehicle)
	routeID := r.id("route-%d", routeIndex)

	var out []map[string]any
	ships := make([]any, 0)
	shipped := make(map[string]bool)
	stepIDs := make([]any, 0, len(route.Steps))

	for stepIndex, step := range route.Steps {
		stepID := r.id("step-%d-%d", routeIndex, stepIndex)
		node := map[string]any{
			"@id":               stepID,
			"@type":             ldgraph.TypeStep,
			ldgraph.StepType:    step.Type,
			ldgraph.HasRoute:    routeID,
			ldgraph.Arrival:     float64(step.Arrival),
			ldgraph.Duration:    float64(step.Duration),
			ldgraph.WaitingTime: float64(step.WaitingTime),
		}
		if step.Location != nil {
			node[ldgraph.Geo] = []any{step.Location.Lon, step.Location.Lat}
		}

		if step.IsShipmentStep() {
			line, pickupID, ok := r.locate(step.ID)
			if !ok {
				r.gaps = append(r.gaps, &domain.ReconstructionGapError{
					RouteIndex: routeIndex,
					StepIndex:  stepIndex,
					StepType:   step.Type,
					StepID:     step.ID,
				})
			} else {
				shipmentID, shipment := r.shipment(line, pickupID, vehicleID)
				if shipment != nil {
					out = append(out, shipment)
				}
				if !shipped[shipmentID] {
					shipped[shipmentID] = true
					ships = append(ships, shipmentID)
				}

				if step.Type == domain.StepPickup {
					node[ldgraph.Pickup] = shipmentID
				} else {
					node[ldgraph.Delivery] = shipmentID
				}
			}
		}

		out = append(out, node)
		stepIDs = append(stepIDs, stepID)
	}

	out = append(out, map[string]any{
		"@id":         vehicleID,
		"@type":       ldgraph.TypeVehicle,
		ldgraph.Ships: ships,
	})

	routeNode := map[string]any{
		"@id":           routeID,
		"@type":         ldgraph.TypeRoute,
		ldgraph.Vehicle: vehicleID,
		ldgraph.Steps:   stepIDs,
	}
	if route.Geometry != nil {
		routeNode[ldgraph.Geometry] = route.Geometry
	}
	out = append(out, routeNode)

	return out
}

// locate finds the order line owning a shipment id. The correlation side
// map decides which ids were minted; the line itself is looked up by the
// ids carried on the flattened nodes, which survive blank node relabelling.
func (r *reconstruction) locate(id *int) (ldgraph.Node, int, bool) {
	if id == nil {
		return nil, 0, false
	}

	if r.corrs != nil {
		corr, _, ok := r.corrs.Lookup(*id)
		if !ok {
			return nil, 0, false
		}
		if line, ok := r.lines[*id]; ok {
			return line, corr.PickupID, true
		}
		if line, ok := r.graph.Node(corr.LineID); ok {
			return line, corr.PickupID, true
		}
		return nil, 0, false
	}

	line, ok := r.lines[*id]
	if !ok {
		return nil, 0, false
	}
	pickupID, ok := line.Int(ldgraph.PickupShipmentID)
	if !ok {
		return nil, 0, false
	}
	return line, pickupID, true
}

// shipment returns the Shipment id for line, and the node itself the first
// time the line is seen.
func (r *reconstruction) shipment(line ldgraph.Node, pickupID int, vehicleID string) (string, map[string]any) {
	if id, ok := r.shipments[line.ID()]; ok {
		return id, nil
	}

	shipmentID := r.id("shipment-%d", pickupID)
	r.shipments[line.ID()] = shipmentID

	node := map[string]any{
		"@id":               shipmentID,
		"@type":             ldgraph.TypeShipment,
		ldgraph.IsChippedIn: vehicleID,
	}

	if stock, ok := r.graph.SourceStock(line); ok {
		node[ldgraph.Transports] = stock.ID()
	}
	if addr, ok := r.graph.SourceAddress(line); ok {
		node[ldgraph.StartAt] = addr.ID()
	}
	if order, ok := r.graph.OrderOf(line); ok {
		if addr, ok := r.graph.PickupAddress(order); ok {
			node[ldgraph.EndAt] = addr.ID()
		}
	}

	return shipmentID, node
}

// SortNodes orders nodes by type name, then by id, so the serialization
// does not depend on creation order.
func SortNodes(nodes []map[string]any) {
	slices.SortStableFunc(nodes, func(a, b map[string]any) int {
		if c := cmp.Compare(ldgraph.Node(a).TypeName(), ldgraph.Node(b).TypeName()); c != 0 {
			return c
		}
		return cmp.Compare(ldgraph.Node(a).ID(), ldgraph.Node(b).ID())
	})
}
