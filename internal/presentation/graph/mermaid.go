package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/serology/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
	// Conclusion highlights a reached leaf instead of CurrentNode.
	Conclusion string
}

// OverlayFor builds the overlay of a session.
func OverlayFor(s *domain.Session) *GraphOverlay {
	o := &GraphOverlay{CurrentNode: s.CurrentNodeID}
	for _, h := range s.History {
		o.VisitedNodes = append(o.VisitedNodes, h.NodeID)
	}
	if s.Concluded {
		o.Conclusion = s.ConclusionText
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the decision graph.
// It applies semantic styling:
// - Root question: [/Parallelogram/] with a bold stroke
// - Question: [/Parallelogram/]
// - Conclusion: ("Rounded"), one leaf per distinct text
// Edges are labelled with the selection that takes them.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	leaves := make(map[string]string)
	var leafOrder []string
	leafID := func(text string) string {
		if id, ok := leaves[text]; ok {
			return id
		}
		id := fmt.Sprintf("result_%d", len(leaves)+1)
		leaves[text] = id
		leafOrder = append(leafOrder, text)
		return id
	}

	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s<br/>%s\"/]\n", safeID, escape(node.ID), escape(node.Label)))

		for _, sel := range domain.Selections {
			o, ok := node.Branch(sel)
			if !ok || !o.IsDefined() {
				continue
			}
			target := ""
			switch o.Kind {
			case domain.OutcomeContinue:
				target = sanitizeMermaidID(o.Next)
			case domain.OutcomeConclude:
				target = leafID(o.Result)
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, sel, target))
		}
	}

	for _, text := range leafOrder {
		sb.WriteString(fmt.Sprintf("    %s(\"%s\")\n", leaves[text], escape(text)))
	}

	sb.WriteString("\n    classDef root stroke-width:3px;\n")
	sb.WriteString("    classDef conclusion fill:#f1f8e9,stroke:#33691e,color:#000;\n")
	sb.WriteString(fmt.Sprintf("    class %s root;\n", sanitizeMermaidID(g.RootID())))
	for _, text := range leafOrder {
		sb.WriteString(fmt.Sprintf("    class %s conclusion;\n", leaves[text]))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		switch {
		case overlay.Conclusion != "":
			if id, ok := leaves[overlay.Conclusion]; ok {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
			}
		case overlay.CurrentNode != "":
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
