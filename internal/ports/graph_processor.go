package ports

import "context"

// GraphProcessor is the boundary to a standards-compliant JSON-LD processor.
// Both operations are pure functions of their inputs.
type GraphProcessor interface {
	// Flatten normalizes doc into a node list compacted against context.
	Flatten(ctx context.Context, doc any, context any) ([]map[string]any, error)
	// Frame projects the subgraph of doc matching frame.
	Frame(ctx context.Context, doc any, frame map[string]any) (map[string]any, error)
}
