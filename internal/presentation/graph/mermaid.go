package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/typo3docs/pkg/domain"
)

// Overlay contains state data to visualize on the graph.
type Overlay struct {
	// Focus is the operation to highlight.
	Focus string
}

// GenerateMermaid produces a Mermaid flowchart of the invocation pipeline.
// Every operation hangs off the dispatcher. Semantic shapes:
// - Dispatcher: ((Circle))
// - Operation: [Rectangle]
// - Remote stage: [[Subroutine]]
// - Curated stage: [(Database)]
// Remote-backed operations get a dotted fallback edge into their curated stage.
func GenerateMermaid(ops []domain.Operation, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    dispatch((\"dispatch\"))\n")

	stages := make(map[string][]string, len(ops))
	for _, op := range ops {
		safeID := sanitizeMermaidID(op.Name)
		curated := safeID + "_curated"

		label := op.Name
		if params := paramList(op); params != "" {
			label = fmt.Sprintf("%s <br/> %s", op.Name, params)
		}
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", safeID, label)
		fmt.Fprintf(&sb, "    dispatch --> %s\n", safeID)

		if op.Remote {
			remote := safeID + "_remote"
			fmt.Fprintf(&sb, "    %s[[\"remote\"]]\n", remote)
			fmt.Fprintf(&sb, "    %s[(\"curated\")]\n", curated)
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, remote)
			fmt.Fprintf(&sb, "    %s -. \"fallback\" .-> %s\n", remote, curated)
			stages[safeID] = []string{safeID, remote, curated}
			continue
		}
		fmt.Fprintf(&sb, "    %s[(\"curated\")]\n", curated)
		fmt.Fprintf(&sb, "    %s --> %s\n", safeID, curated)
		stages[safeID] = []string{safeID, curated}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		if ids, ok := stages[sanitizeMermaidID(overlay.Focus)]; ok {
			fmt.Fprintf(&sb, "    class %s focus;\n", strings.Join(ids, ","))
		}
	}

	return sb.String()
}

// paramList renders the argument names, required ones marked with an asterisk.
func paramList(op domain.Operation) string {
	names := make([]string, 0, len(op.Params))
	for _, p := range op.Params {
		if p.Required {
			names = append(names, p.Name+"*")
			continue
		}
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
