package runtime

import (
	"fmt"

	"github.com/aretw0/serology/pkg/domain"
)

// View projects a session into what the presentation layer should show.
// It has no side effects.
func (e *Engine) View(s *domain.Session) (domain.View, error) {
	if s.Concluded {
		findings, err := e.Findings(s)
		if err != nil {
			return domain.View{}, err
		}
		return domain.View{
			Kind:      domain.ViewConclusion,
			Text:      s.ConclusionText,
			Findings:  findings,
			CanGoBack: s.CanGoBack(),
			Direction: s.Direction,
		}, nil
	}

	node, err := e.graph.NodeFor(s.CurrentNodeID)
	if err != nil {
		return domain.View{}, fmt.Errorf("view: %w", err)
	}
	return domain.View{
		Kind:        domain.ViewQuestion,
		NodeID:      node.ID,
		Label:       node.Label,
		HasPositive: node.Has(domain.Positive),
		HasNegative: node.Has(domain.Negative),
		Selection:   s.Pending,
		CanGoBack:   s.CanGoBack(),
		Direction:   s.Direction,
	}, nil
}

// Findings resolves the session's history into labelled answers.
func (e *Engine) Findings(s *domain.Session) ([]domain.Finding, error) {
	findings := make([]domain.Finding, 0, len(s.History))
	for _, h := range s.History {
		node, err := e.graph.NodeFor(h.NodeID)
		if err != nil {
			return nil, fmt.Errorf("findings: %w", err)
		}
		findings = append(findings, domain.Finding{
			NodeID:    h.NodeID,
			Label:     node.Label,
			Selection: h.Selection,
		})
	}
	return findings, nil
}
