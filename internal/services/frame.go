package services

import (
	"context"
	"dfc-optim-service/internal/ldgraph"
	"dfc-optim-service/internal/ports"
	"errors"
	"fmt"
)

func embed(mode string, nested map[string]any) map[string]any {
	out := map[string]any{"@embed": mode}
	for k, v := range nested {
		out[k] = v
	}
	return out
}

// routeFrame projects a merged graph into Route trees: each route embeds
// its vehicle, the shipments it carries with the transported stock, and
// its steps. Back-references are kept as identifiers.
func routeFrame(vocab any) map[string]any {
	return map[string]any{
		"@context": vocab,
		"@type":    ldgraph.TypeRoute,
		ldgraph.Vehicle: embed("@always", map[string]any{
			ldgraph.Ships: embed("@always", map[string]any{
				ldgraph.IsChippedIn: embed("@never", nil),
				ldgraph.Transports: embed("@always", map[string]any{
					ldgraph.IsStoredIn: embed("@always", nil),
				}),
				ldgraph.StartAt: embed("@always", nil),
				ldgraph.EndAt:   embed("@always", nil),
			}),
		}),
		ldgraph.Steps: embed("@always", map[string]any{
			ldgraph.HasRoute: embed("@never", nil),
			ldgraph.Pickup:   embed("@never", nil),
			ldgraph.Delivery: embed("@never", nil),
		}),
	}
}

// FrameRoutes returns the Route-rooted view of a merged graph.
func FrameRoutes(ctx context.Context, proc ports.GraphProcessor, merged map[string]any) (map[string]any, error) {
	if merged == nil {
		return nil, errors.New("frame routes: graph is nil")
	}

	framed, err := proc.Frame(ctx, merged, routeFrame(merged["@context"]))
	if err != nil {
		return nil, fmt.Errorf("frame routes: %w", err)
	}
	return framed, nil
}
