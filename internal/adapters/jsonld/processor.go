package jsonld

import (
	"context"
	"dfc-optim-service/internal/platform/obs"
	"fmt"

	"github.com/piprate/json-gold/ld"
)

// Processor implements ports.GraphProcessor with json-gold.
//
// json-gold does not take a context.Context; cancellation is only checked
// before each call.
type Processor struct {
	proc   *ld.JsonLdProcessor
	loader ld.DocumentLoader
}

// NewProcessor returns a processor resolving remote contexts through loader.
// A nil loader keeps json-gold's default HTTP loader.
func NewProcessor(loader ld.DocumentLoader) *Processor {
	return &Processor{
		proc:   ld.NewJsonLdProcessor(),
		loader: loader,
	}
}

func (p *Processor) options() *ld.JsonLdOptions {
	opts := ld.NewJsonLdOptions("")
	opts.ProcessingMode = ld.JsonLd_1_1
	if p.loader != nil {
		opts.DocumentLoader = p.loader
	}
	return opts
}

// Flatten returns the node list of doc compacted against c.
func (p *Processor) Flatten(ctx context.Context, doc any, c any) (_ []map[string]any, err error) {
	defer obs.Time(ctx, "jsonld.Flatten")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := p.proc.Flatten(doc, c, p.options())
	if err != nil {
		return nil, fmt.Errorf("jsonld flatten: %w", err)
	}

	return nodeList(out)
}

func (p *Processor) Frame(ctx context.Context, doc any, frame map[string]any) (_ map[string]any, err error) {
	defer obs.Time(ctx, "jsonld.Frame")(&err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := p.proc.Frame(doc, frame, p.options())
	if err != nil {
		return nil, fmt.Errorf("jsonld frame: %w", err)
	}
	return out, nil
}

// nodeList accepts every shape a flattened document can be returned in:
// a bare array, an object holding "@graph", or a single node object.
func nodeList(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			n, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("jsonld flatten: item %d is %T, not a node", i, item)
			}
			out = append(out, n)
		}
		return out, nil
	case map[string]any:
		if g, ok := t["@graph"]; ok {
			return nodeList(g)
		}
		node := make(map[string]any, len(t))
		for k, val := range t {
			if k != "@context" {
				node[k] = val
			}
		}
		if len(node) == 0 {
			return []map[string]any{}, nil
		}
		return []map[string]any{node}, nil
	case nil:
		return []map[string]any{}, nil
	}
	return nil, fmt.Errorf("jsonld flatten: unexpected result %T", v)
}
