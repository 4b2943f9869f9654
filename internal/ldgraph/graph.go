package ldgraph

import (
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/ports"
	"fmt"
)

// Graph is an indexed, flattened node list. It is owned by a single
// request and is not safe for concurrent mutation.
type Graph struct {
	nodes   []Node
	byID    map[string]Node
	context any
}

// Load validates doc, flattens it with its own context and indexes the nodes.
// The caller's value is never modified.
func Load(ctx context.Context, proc ports.GraphProcessor, doc any) (*Graph, error) {
	obj, err := validateDocument(doc)
	if err != nil {
		return nil, err
	}

	obj = deepCopy(obj).(map[string]any)
	qctx := QueryContext(obj["@context"])
	flat, err := proc.Flatten(ctx, obj, qctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: flatten: %w", err)
	}

	return New(flat, qctx), nil
}

// New indexes an already flattened node list.
func New(nodes []map[string]any, ctx any) *Graph {
	g := &Graph{
		nodes:   make([]Node, 0, len(nodes)),
		byID:    make(map[string]Node, len(nodes)),
		context: ctx,
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		node := Node(n)
		g.nodes = append(g.nodes, node)
		if id := node.ID(); id != "" {
			g.byID[id] = node
		}
	}
	return g
}

func validateDocument(doc any) (map[string]any, error) {
	if doc == nil {
		return nil, &domain.InvalidInputError{Reason: "input is absent"}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &domain.InvalidInputError{Reason: fmt.Sprintf("input must be an object, got %T", doc)}
	}

	if g, ok := obj["@graph"]; ok {
		if _, isList := g.([]any); !isList {
			return nil, &domain.InvalidInputError{Reason: "@graph must be an array"}
		}
		return obj, nil
	}
	if _, ok := obj["@id"]; ok {
		return obj, nil
	}
	if _, ok := obj["@type"]; ok {
		return obj, nil
	}
	return nil, &domain.InvalidInputError{Reason: "input has no @graph, @id or @type"}
}

// Context is the context the graph's nodes are compacted against.
func (g *Graph) Context() any { return g.context }

func (g *Graph) Len() int { return len(g.nodes) }

// Node looks a node up by identifier.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Resolve turns a reference into a concrete node. Inline nodes that are
// also indexed resolve to the indexed copy.
func (g *Graph) Resolve(r Ref) (Node, bool) {
	switch r.Kind() {
	case RefReference:
		return g.Node(r.ID())
	case RefInline:
		if n, ok := g.byID[r.ID()]; ok {
			return n, true
		}
		return r.Inline(), true
	}
	return nil, false
}

// Follow resolves a chain of relations starting at n.
func (g *Graph) Follow(n Node, props ...string) (Node, bool) {
	cur := n
	for _, p := range props {
		next, ok := g.Resolve(cur.Ref(p))
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// OfType returns the nodes carrying typ, in flatten order.
func (g *Graph) OfType(typ string) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.HasType(typ) {
			out = append(out, n)
		}
	}
	return out
}

// Nodes returns a deep copy of every node, in flatten order.
func (g *Graph) Nodes() []map[string]any {
	out := make([]map[string]any, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, map[string]any(n.Clone()))
	}
	return out
}

// Document returns a copy of the graph as a JSON-LD document.
func (g *Graph) Document() map[string]any {
	nodes := g.Nodes()
	list := make([]any, len(nodes))
	for i, n := range nodes {
		list[i] = n
	}

	doc := map[string]any{"@graph": list}
	if g.context != nil {
		doc["@context"] = g.context
	}
	return doc
}

func (g *Graph) Orders() []Node {
	return g.OfType(TypeOrder)
}

// Parts returns the order's lines. A dangling reference yields a stub node
// holding only its @id so callers can still report it.
func (g *Graph) Parts(order Node) []Node {
	refs := order.Refs(HasPart)
	out := make([]Node, 0, len(refs))
	for _, r := range refs {
		if n, ok := g.Resolve(r); ok {
			out = append(out, n)
			continue
		}
		out = append(out, Node{"@id": r.ID()})
	}
	return out
}

// OrderOf finds the order a line belongs to, through partOf or by scanning
// orders for the line.
func (g *Graph) OrderOf(line Node) (Node, bool) {
	if order, ok := g.Resolve(line.Ref(PartOf)); ok {
		return order, true
	}

	id := line.ID()
	for _, order := range g.Orders() {
		for _, r := range order.Refs(HasPart) {
			if r.ID() == id {
				return order, true
			}
		}
	}
	return nil, false
}

// PickupPlace is the place where the customer collects the order.
func (g *Graph) PickupPlace(order Node) (Node, bool) {
	return g.Follow(order, Selects, PickedUpAt)
}

func (g *Graph) PickupAddress(order Node) (Node, bool) {
	return g.Follow(order, Selects, PickedUpAt, HasAddress)
}

// SourceStock follows fulfilledBy then constitutedBy to the physical stock.
func (g *Graph) SourceStock(line Node) (Node, bool) {
	return g.Follow(line, FulfilledBy, ConstitutedBy)
}

// SourceLocation returns the storage location holding the line's stock.
func (g *Graph) SourceLocation(line Node) (Node, bool) {
	stock, ok := g.SourceStock(line)
	if !ok {
		return nil, false
	}
	return g.Follow(stock, IsStoredIn)
}

func (g *Graph) SourceAddress(line Node) (Node, bool) {
	stock, ok := g.SourceStock(line)
	if !ok {
		return nil, false
	}
	return g.Follow(stock, IsStoredIn, HasAddress)
}

// Coordinates reads and validates an address's longitude and latitude.
func (g *Graph) Coordinates(addr Node) (domain.Coordinates, error) {
	return domain.ParseCoordinates(addr[Longitude], addr[Latitude])
}

// OpeningWindow reads the opening hours from the address, falling back to
// the place. Anything missing yields domain.NullWindow.
func (g *Graph) OpeningWindow(addr Node, place Node) domain.TimeWindow {
	for _, n := range []Node{addr, place} {
		if n == nil {
			continue
		}
		hours, ok := g.Resolve(n.Ref(HasOpeningHours))
		if !ok {
			continue
		}
		return domain.ParseTimeWindow(hours[StartDate], hours[EndDate])
	}
	return domain.NullWindow
}

// Annotate attaches the correlation ids to the graph's own copy of a line.
func (g *Graph) Annotate(lineID string, pickupID, deliveryID int) bool {
	n, ok := g.byID[lineID]
	if !ok {
		return false
	}
	n[PickupShipmentID] = float64(pickupID)
	n[DeliveryShipmentID] = float64(deliveryID)
	return true
}

// LinesByShipmentID indexes every node carrying correlation ids.
func (g *Graph) LinesByShipmentID() map[int]Node {
	out := make(map[int]Node)
	for _, n := range g.nodes {
		if id, ok := n.Int(PickupShipmentID); ok {
			out[id] = n
		}
		if id, ok := n.Int(DeliveryShipmentID); ok {
			out[id] = n
		}
	}
	return out
}
