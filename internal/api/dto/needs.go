package dto

import "dfc-optim-service/internal/domain"

type SkippedLineResponse struct {
	Order  string `json:"order"`
	Line   string `json:"line"`
	Reason string `json:"reason"`
}

// NeedsResponse is the flat optimizer request built from a graph, along
// with the order lines that could not be part of it.
type NeedsResponse struct {
	Vehicles  []domain.Vehicle      `json:"vehicles"`
	Shipments []domain.Shipment     `json:"shipments"`
	Skipped   []SkippedLineResponse `json:"skipped"`
}

func NewNeedsResponse(req domain.Request, skipped []*domain.UnresolvableReferenceError) NeedsResponse {
	res := NeedsResponse{
		Vehicles:  req.Vehicles,
		Shipments: req.Shipments,
		Skipped:   make([]SkippedLineResponse, 0, len(skipped)),
	}
	for _, s := range skipped {
		res.Skipped = append(res.Skipped, SkippedLineResponse{
			Order:  s.OrderID,
			Line:   s.LineID,
			Reason: string(s.Reason),
		})
	}
	return res
}
