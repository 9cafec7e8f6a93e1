package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/TyphonHill/go-mermaid/diagrams/flowchart"
)

const defaultMaxLabel = 60

// MermaidOptions tunes GenerateMermaid.
type MermaidOptions struct {
	// Observations adds an observation node after every action.
	Observations bool
	// MaxLabel truncates node text; zero means 60 characters.
	MaxLabel int
}

// GenerateMermaid creates a Mermaid flowchart with one chain per trajectory:
// a head node naming the key followed by its steps in order.
func GenerateMermaid(doc *Document, opts MermaidOptions) string {
	if opts.MaxLabel <= 0 {
		opts.MaxLabel = defaultMaxLabel
	}
	if opts.MaxLabel < 4 {
		opts.MaxLabel = 4
	}

	diagram := flowchart.NewFlowchart()
	diagram.EnableMarkdownFence()
	diagram.SetDirection(flowchart.FlowchartDirectionTopDown)
	diagram.Config.SetHtmlLabels(true)

	for _, t := range doc.Trajectories {
		head := addNode(diagram, KindTrajectory, headLabel(t, opts.MaxLabel))
		prev := head
		for _, s := range t.Steps {
			step := addNode(diagram, KindAction, stepLabel(s, opts.MaxLabel))
			diagram.AddLink(prev, step)
			prev = step
			if opts.Observations {
				obs := addNode(diagram, KindObservation, sanitize(orDefault(s.ObservationAfter, PlaceholderObservation), opts.MaxLabel))
				diagram.AddLink(step, obs)
				prev = obs
			}
		}
	}

	return diagram.String()
}

func addNode(diagram *flowchart.Flowchart, kind StepKind, label string) *flowchart.Node {
	node := diagram.AddNode(label)
	applyFlowchartShape(node, kind)
	if style := getFlowchartStyle(kind); style != nil {
		node.SetStyle(style)
	}
	return node
}

func headLabel(t TrajectoryDoc, limit int) string {
	key := t.Key.String()
	return fmt.Sprintf("%s<br/>%d steps", sanitize(key, limit), len(t.Steps))
}

func stepLabel(s StepDoc, limit int) string {
	step := orDefault(s.Step, PlaceholderNA)
	return sanitize(fmt.Sprintf("#%s %s", step, orDefault(s.Action, PlaceholderAction)), limit)
}

func orDefault(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// sanitize flattens whitespace, replaces characters that break Mermaid
// labels and truncates to limit runes.
func sanitize(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.NewReplacer(`"`, "'", "`", "'", "[", "(", "]", ")", "{", "(", "}", ")", "|", "/", "<", "‹", ">", "›").Replace(s)
	if utf8.RuneCountInString(s) > limit {
		runes := []rune(s)
		s = string(runes[:limit-3]) + "..."
	}
	return s
}

func applyFlowchartShape(node *flowchart.Node, kind StepKind) {
	switch kind {
	case KindTrajectory:
		node.SetShape(flowchart.NodeShapeTerminal)
	case KindAction:
		node.SetShape(flowchart.NodeShapeProcess)
	case KindObservation:
		node.SetShape(flowchart.NodeShapeInputOutput)
	default:
		node.SetShape(flowchart.NodeShapeProcess)
	}
}

func getFlowchartStyle(kind StepKind) *flowchart.NodeStyle {
	style := flowchart.NewNodeStyle()
	style.StrokeWidth = 1

	switch kind {
	case KindTrajectory:
		style.Fill = "#e1f5fe"
		style.Stroke = "#01579b"
	case KindObservation:
		style.Fill = "#fff3e0"
		style.Stroke = "#e65100"
	default:
		return nil
	}

	return style
}
