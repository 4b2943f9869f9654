package services

import (
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/ldgraph"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboundSingleLine(t *testing.T) {
	input := orderGraph(2.0, 48.0, nil, lineSpec{lon: 2.5, lat: 48.5})
	before := ldgraph.Node(input).Clone()

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)

	src := domain.Coordinates{Lon: 2.5, Lat: 48.5}
	want := domain.Request{
		Vehicles: []domain.Vehicle{{ID: 1, Start: src, End: src}},
		Shipments: []domain.Shipment{{
			Pickup: domain.ShipmentStep{
				ID:          1,
				Location:    src,
				TimeWindows: []domain.TimeWindow{domain.NullWindow},
				Service:     domain.ServiceSeconds,
			},
			Delivery: domain.ShipmentStep{
				ID:          2,
				Location:    domain.Coordinates{Lon: 2.0, Lat: 48.0},
				TimeWindows: []domain.TimeWindow{domain.NullWindow},
				Service:     domain.ServiceSeconds,
			},
		}},
	}
	if diff := cmp.Diff(want, out.Request); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, out.Skipped)

	corr, role, ok := out.Correlations.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, domain.RoleDelivery, role)
	assert.Equal(t, "http://test/line1", corr.LineID)
	assert.Equal(t, "http://test/order1", corr.OrderID)

	// the annotation lives on the request's copy only
	line, ok := out.Graph.Node("http://test/line1")
	require.True(t, ok)
	id, ok := line.Int(ldgraph.PickupShipmentID)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	if diff := cmp.Diff(map[string]any(before), input); diff != "" {
		t.Fatalf("input was modified (-before +after):\n%s", diff)
	}
}

func TestOutboundSkipsUnresolvableLines(t *testing.T) {
	input := orderGraph(2.0, 48.0, nil,
		lineSpec{lon: 200.0, lat: 48.5},
		lineSpec{lon: 2.6, lat: 48.6},
		lineSpec{lon: "east", lat: 48.7},
	)

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)

	require.Len(t, out.Request.Vehicles, 1)
	require.Len(t, out.Request.Shipments, 1)
	assert.Equal(t, domain.Coordinates{Lon: 2.6, Lat: 48.6}, out.Request.Vehicles[0].Start)

	// ids are minted only for the kept line
	assert.Equal(t, 1, out.Request.Shipments[0].Pickup.ID)
	assert.Equal(t, 2, out.Request.Shipments[0].Delivery.ID)

	require.Len(t, out.Skipped, 2)
	assert.Equal(t, "http://test/line1", out.Skipped[0].LineID)
	assert.Equal(t, domain.SkipInvalidSourceCoordinates, out.Skipped[0].Reason)
	assert.Equal(t, "http://test/line3", out.Skipped[1].LineID)
	assert.Equal(t, domain.SkipInvalidSourceCoordinates, out.Skipped[1].Reason)
}

func TestOutboundInvalidPickupSkipsEveryLine(t *testing.T) {
	input := orderGraph(2.0, -95.0, nil,
		lineSpec{lon: 2.5, lat: 48.5},
		lineSpec{lon: 2.6, lat: 48.6},
	)

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)

	assert.Empty(t, out.Request.Vehicles)
	assert.Empty(t, out.Request.Shipments)
	assert.Equal(t, 0, out.Correlations.Len())
	require.Len(t, out.Skipped, 2)
	for _, s := range out.Skipped {
		assert.Equal(t, domain.SkipInvalidPickupCoordinates, s.Reason)
	}
}

func TestOutboundIDsIncrease(t *testing.T) {
	input := orderGraph(2.0, 48.0, nil,
		lineSpec{lon: 2.1, lat: 48.1},
		lineSpec{lon: 2.2, lat: 48.2},
		lineSpec{lon: 2.3, lat: 48.3},
	)

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)
	require.Len(t, out.Request.Shipments, 3)

	last := 0
	seen := map[int]bool{}
	for i, s := range out.Request.Shipments {
		assert.Equal(t, i+1, out.Request.Vehicles[i].ID)
		for _, id := range []int{s.Pickup.ID, s.Delivery.ID} {
			assert.Greater(t, id, last)
			assert.False(t, seen[id], "id %d minted twice", id)
			seen[id] = true
			last = id
		}
	}

	lines := out.Correlations.Lines()
	require.Len(t, lines, 3)
	for i, c := range lines {
		assert.Equal(t, fmt.Sprintf("http://test/line%d", i+1), c.LineID)
		assert.Equal(t, out.Request.Shipments[i].Pickup.ID, c.PickupID)
		assert.Equal(t, out.Request.Shipments[i].Delivery.ID, c.DeliveryID)
	}

	// a second call starts over
	again, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Request.Shipments[0].Pickup.ID)
}

func TestOutboundTimeWindows(t *testing.T) {
	input := orderGraph(2.0, 48.0,
		[]string{"2025-02-05T23:00:00Z", "2025-02-06T03:00:00Z"},
		lineSpec{lon: 2.5, lat: 48.5, hours: []string{"2025-02-05T08:00:00Z", "2025-02-05T07:00:00Z"}},
	)

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)
	require.Len(t, out.Request.Shipments, 1)

	pickup := out.Request.Shipments[0].Pickup.TimeWindows[0]
	require.False(t, pickup.IsNull())
	assert.Equal(t, int64(1738796400), *pickup[0])
	assert.Equal(t, int64(1738810800), *pickup[1])

	// end before start
	assert.True(t, out.Request.Shipments[0].Delivery.TimeWindows[0].IsNull())
}

func TestOutboundInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "absent", input: nil},
		{name: "string", input: "not a graph"},
		{name: "no nodes", input: map[string]any{"foo": 1.0}},
		{name: "graph not array", input: map[string]any{"@graph": map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Outbound(context.Background(), newProcessor(), tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestOutboundNoOrders(t *testing.T) {
	input := map[string]any{
		"@context": map[string]any{ldgraph.Prefix: ldgraph.DFCBusinessIRI},
		"@graph": []any{
			map[string]any{"@id": "http://test/x", "@type": "dfc-b:Address"},
		},
	}

	out, err := Outbound(context.Background(), newProcessor(), input)
	require.NoError(t, err)
	assert.Empty(t, out.Request.Vehicles)
	assert.Empty(t, out.Request.Shipments)
	assert.Empty(t, out.Skipped)
}
