package services

import (
	"context"
	"dfc-optim-service/internal/adapters/jsonld"
	"dfc-optim-service/internal/ldgraph"
	"fmt"
)

const testBase = "http://test/optim"

// lineSpec describes one order line of a generated test graph.
type lineSpec struct {
	lon, lat any
	// hours, when set, are attached to the storage location.
	hours []string
}

// orderGraph builds a DFC graph with a single order collected at
// (pickupLon, pickupLat) and one line per lineSpec.
func orderGraph(pickupLon, pickupLat any, placeHours []string, lines ...lineSpec) map[string]any {
	parts := make([]any, 0, len(lines))
	nodes := []any{}

	place := map[string]any{
		"@id":              "http://test/place",
		"@type":            "dfc-b:Place",
		ldgraph.HasAddress: map[string]any{"@id": "http://test/pickup-addr"},
	}
	if placeHours != nil {
		place[ldgraph.HasOpeningHours] = map[string]any{
			ldgraph.StartDate: placeHours[0],
			ldgraph.EndDate:   placeHours[1],
		}
	}

	for i, l := range lines {
		n := i + 1
		parts = append(parts, map[string]any{"@id": fmt.Sprintf("http://test/line%d", n)})

		storage := map[string]any{
			"@id":              fmt.Sprintf("http://test/storage%d", n),
			ldgraph.HasAddress: map[string]any{"@id": fmt.Sprintf("http://test/source-addr%d", n)},
		}
		if l.hours != nil {
			storage[ldgraph.HasOpeningHours] = map[string]any{
				ldgraph.StartDate: l.hours[0],
				ldgraph.EndDate:   l.hours[1],
			}
		}

		nodes = append(nodes,
			map[string]any{
				"@id":               fmt.Sprintf("http://test/line%d", n),
				"@type":             ldgraph.TypeOrderLine,
				ldgraph.FulfilledBy: map[string]any{"@id": fmt.Sprintf("http://test/product%d", n)},
			},
			map[string]any{
				"@id":                 fmt.Sprintf("http://test/product%d", n),
				ldgraph.ConstitutedBy: map[string]any{"@id": fmt.Sprintf("http://test/stock%d", n)},
			},
			map[string]any{
				"@id":              fmt.Sprintf("http://test/stock%d", n),
				ldgraph.IsStoredIn: map[string]any{"@id": fmt.Sprintf("http://test/storage%d", n)},
			},
			storage,
			map[string]any{
				"@id":             fmt.Sprintf("http://test/source-addr%d", n),
				ldgraph.Longitude: l.lon,
				ldgraph.Latitude:  l.lat,
			},
		)
	}

	nodes = append(nodes,
		map[string]any{
			"@id":           "http://test/order1",
			"@type":         ldgraph.TypeOrder,
			ldgraph.HasPart: parts,
			ldgraph.Selects: map[string]any{"@id": "http://test/session"},
		},
		map[string]any{
			"@id":              "http://test/session",
			ldgraph.PickedUpAt: map[string]any{"@id": "http://test/place"},
		},
		place,
		map[string]any{
			"@id":             "http://test/pickup-addr",
			ldgraph.Longitude: pickupLon,
			ldgraph.Latitude:  pickupLat,
		},
	)

	return map[string]any{
		"@context": map[string]any{ldgraph.Prefix: ldgraph.DFCBusinessIRI},
		"@graph":   nodes,
	}
}

// staticContexts serves the same vocabulary for every URL.
type staticContexts struct {
	vocab any
	urls  []string
}

func (s *staticContexts) LoadContext(_ context.Context, url string) (any, error) {
	s.urls = append(s.urls, url)
	return s.vocab, nil
}

func newProcessor() *jsonld.Processor {
	return jsonld.NewProcessor(nil)
}

// byID indexes a merged graph's nodes.
func byID(merged map[string]any) map[string]map[string]any {
	out := map[string]map[string]any{}
	list, _ := merged["@graph"].([]any)
	for _, item := range list {
		n, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out[ldgraph.Node(n).ID()] = n
	}
	return out
}

// ofType returns a merged graph's nodes of one type, in graph order.
func ofType(merged map[string]any, typ string) []map[string]any {
	var out []map[string]any
	list, _ := merged["@graph"].([]any)
	for _, item := range list {
		if n, ok := item.(map[string]any); ok && ldgraph.Node(n).HasType(typ) {
			out = append(out, n)
		}
	}
	return out
}

// nestedOrderGraph writes a whole order as one embedded tree: the order
// lines, storage locations and addresses are blank nodes, only products and
// stocks carry identifiers.
func nestedOrderGraph(sources ...[2]float64) map[string]any {
	parts := make([]any, 0, len(sources))
	for i, src := range sources {
		n := i + 1
		parts = append(parts, map[string]any{
			"@type": ldgraph.TypeOrderLine,
			ldgraph.FulfilledBy: map[string]any{
				"@id": fmt.Sprintf("http://test/product%d", n),
				ldgraph.ConstitutedBy: map[string]any{
					"@id": fmt.Sprintf("http://test/stock%d", n),
					ldgraph.IsStoredIn: map[string]any{
						"@type": "dfc-b:StorageLocation",
						ldgraph.HasAddress: map[string]any{
							ldgraph.Longitude: src[0],
							ldgraph.Latitude:  src[1],
						},
					},
				},
			},
		})
	}

	return map[string]any{
		"@context": map[string]any{ldgraph.Prefix: ldgraph.DFCBusinessIRI},
		"@id":      "http://test/order1",
		"@type":    ldgraph.TypeOrder,
		ldgraph.Selects: map[string]any{
			"@id": "http://test/session",
			ldgraph.PickedUpAt: map[string]any{
				ldgraph.HasAddress: map[string]any{
					ldgraph.Longitude: 2.0,
					ldgraph.Latitude:  48.0,
				},
			},
		},
		ldgraph.HasPart: parts,
	}
}
