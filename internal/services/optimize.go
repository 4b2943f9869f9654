package services

import (
	"context"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/platform/obs"
	"dfc-optim-service/internal/ports"
	"errors"
	"fmt"
	"time"
)

// OptimizeService runs the graph -> optimizer -> graph pipeline. It holds
// no per-request state and is safe for concurrent use as long as its
// collaborators are.
type OptimizeService struct {
	Processor ports.GraphProcessor
	Optimizer ports.Optimizer
	Contexts  ports.ContextLoader
	// ContextURL is the vocabulary used for merged graphs.
	ContextURL string
	// Base prefixes reconstructed entity identifiers.
	Base string
	// Metrics is optional.
	Metrics *obs.Metrics
}

// Needs runs only the outbound transformation.
func (s *OptimizeService) Needs(ctx context.Context, input any) (*OutboundResult, error) {
	out, err := Outbound(ctx, s.Processor, input)
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		for _, sk := range out.Skipped {
			s.Metrics.SkippedLines.WithLabelValues(string(sk.Reason)).Inc()
		}
	}
	return out, nil
}

// Raw transforms the graph and returns the optimizer's answer untouched.
func (s *OptimizeService) Raw(ctx context.Context, input any) (*domain.Result, *OutboundResult, error) {
	out, err := s.Needs(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.callOptimizer(ctx, out.Request)
	if err != nil {
		return nil, nil, err
	}
	return res, out, nil
}

// Optimize runs the whole pipeline and returns the merged graph.
func (s *OptimizeService) Optimize(ctx context.Context, input any) (*InboundResult, error) {
	res, out, err := s.Raw(ctx, input)
	if err != nil {
		return nil, err
	}

	merged, err := Inbound(ctx, InboundRequest{
		Result:     res,
		Outbound:   out,
		ContextURL: s.ContextURL,
		Base:       s.Base,
	}, s.Processor, s.Contexts)
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.ReconstructionGap.Add(float64(len(merged.Gaps)))
	}
	return merged, nil
}

// Routes runs the pipeline and frames the merged graph into Route trees.
func (s *OptimizeService) Routes(ctx context.Context, input any) (map[string]any, error) {
	merged, err := s.Optimize(ctx, input)
	if err != nil {
		return nil, err
	}
	return FrameRoutes(ctx, s.Processor, merged.Graph)
}

// callOptimizer skips the network entirely when there is nothing to route.
func (s *OptimizeService) callOptimizer(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if len(req.Shipments) == 0 {
		return &domain.Result{Routes: []domain.Route{}}, nil
	}

	start := time.Now()
	res, err := s.Optimizer.Optimize(ctx, req)

	if s.Metrics != nil {
		status := "ok"
		var oe *domain.OptimizerError
		if errors.As(err, &oe) {
			status = fmt.Sprintf("%d", oe.Status)
		} else if err != nil {
			status = "error"
		}
		s.Metrics.OptimizerDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	return res, nil
}
