package ldgraph

import (
	"context"
	"dfc-optim-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureNodes mixes the shapes a relation can take: bare ids, id objects
// and embedded nodes.
func fixtureNodes() []map[string]any {
	return []map[string]any{
		{
			"@id":   "http://x/order",
			"@type": TypeOrder,
			Selects: map[string]any{"@id": "http://x/session"},
			HasPart: []any{"http://x/line1", map[string]any{"@id": "http://x/missing"}},
		},
		{"@id": "http://x/session", PickedUpAt: "http://x/place"},
		{
			"@id":      "http://x/place",
			HasAddress: map[string]any{"@id": "http://x/pickup-addr"},
			HasOpeningHours: map[string]any{
				StartDate: "2025-02-05T23:00:00Z",
				EndDate:   "2025-02-06T03:00:00Z",
			},
		},
		{"@id": "http://x/pickup-addr", Longitude: "2.0", Latitude: "48.0"},
		{
			"@id":       "http://x/line1",
			"@type":     TypeOrderLine,
			FulfilledBy: map[string]any{"@id": "http://x/product"},
		},
		{"@id": "http://x/product", ConstitutedBy: "http://x/stock"},
		{
			"@id":      "http://x/stock",
			IsStoredIn: map[string]any{"@id": "http://x/storage", HasAddress: "http://x/source-addr"},
		},
		{"@id": "http://x/source-addr", Longitude: 2.5, Latitude: 48.5},
	}
}

func TestGraphSourceChain(t *testing.T) {
	g := New(fixtureNodes(), nil)

	orders := g.Orders()
	require.Len(t, orders, 1)

	parts := g.Parts(orders[0])
	require.Len(t, parts, 2)
	assert.Equal(t, "http://x/missing", parts[1].ID())

	stock, ok := g.SourceStock(parts[0])
	require.True(t, ok)
	assert.Equal(t, "http://x/stock", stock.ID())

	// storage is only present inline
	loc, ok := g.SourceLocation(parts[0])
	require.True(t, ok)
	assert.Equal(t, "http://x/storage", loc.ID())

	addr, ok := g.SourceAddress(parts[0])
	require.True(t, ok)
	coords, err := g.Coordinates(addr)
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 2.5, Lat: 48.5}, coords)

	_, ok = g.SourceAddress(parts[1])
	assert.False(t, ok)
}

func TestGraphPickupAndOpeningWindow(t *testing.T) {
	g := New(fixtureNodes(), nil)
	order := g.Orders()[0]

	place, ok := g.PickupPlace(order)
	require.True(t, ok)
	addr, ok := g.PickupAddress(order)
	require.True(t, ok)
	assert.Equal(t, "http://x/pickup-addr", addr.ID())

	w := g.OpeningWindow(addr, place)
	require.False(t, w.IsNull())
	assert.Equal(t, int64(1738796400), *w[0])
	assert.Equal(t, int64(1738810800), *w[1])

	assert.True(t, g.OpeningWindow(addr, nil).IsNull())
}

func TestGraphOrderOf(t *testing.T) {
	g := New(fixtureNodes(), nil)
	line, ok := g.Node("http://x/line1")
	require.True(t, ok)

	order, ok := g.OrderOf(line)
	require.True(t, ok)
	assert.Equal(t, "http://x/order", order.ID())

	_, ok = g.OrderOf(Node{"@id": "http://x/orphan"})
	assert.False(t, ok)
}

func TestGraphAnnotateDoesNotTouchInput(t *testing.T) {
	nodes := fixtureNodes()
	g := New(nodes, nil)
	copied := g.Nodes()

	require.True(t, g.Annotate("http://x/line1", 1, 2))
	assert.False(t, g.Annotate("http://x/nope", 3, 4))

	idx := g.LinesByShipmentID()
	assert.Equal(t, "http://x/line1", idx[1].ID())
	assert.Equal(t, "http://x/line1", idx[2].ID())

	for _, n := range copied {
		assert.NotContains(t, n, PickupShipmentID)
	}
}

type stubProcessor struct {
	flat []map[string]any
	err  error
	ctx  any
}

func (s *stubProcessor) Flatten(_ context.Context, _ any, c any) ([]map[string]any, error) {
	s.ctx = c
	return s.flat, s.err
}

func (s *stubProcessor) Frame(context.Context, any, map[string]any) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func TestLoadValidatesInput(t *testing.T) {
	proc := &stubProcessor{flat: fixtureNodes()}

	for _, in := range []any{nil, "graph", []any{}, map[string]any{"@graph": "x"}, map[string]any{"foo": 1}} {
		_, err := Load(context.Background(), proc, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	g, err := Load(context.Background(), proc, map[string]any{
		"@context": map[string]any{Prefix: DFCBusinessIRI},
		"@graph":   []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, g.Len())
	assert.Equal(t, map[string]any{Prefix: DFCBusinessIRI}, proc.ctx)

	proc.err = errors.New("boom")
	_, err = Load(context.Background(), proc, map[string]any{"@graph": []any{}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtendedContext(t *testing.T) {
	ext := ExtendedContext(map[string]any{"dfc-b": "http://other#", "foo": "http://foo"})
	m, ok := ext.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://other#", m[Prefix])
	assert.Equal(t, "http://foo", m["foo"])
	assert.Equal(t, map[string]any{"@type": "@id"}, m[Transports])
	assert.Equal(t, xsdInteger, m[PickupShipmentID].(map[string]any)["@type"])

	list, ok := ExtendedContext("https://example.org/context.json").([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, DFCBusinessIRI, list[1].(map[string]any)[Prefix])

	q, ok := QueryContext([]any{"https://example.org/context.json"}).([]any)
	require.True(t, ok)
	assert.Len(t, q, 2)
}
