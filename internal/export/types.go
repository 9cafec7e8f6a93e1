// Package export renders a filtered trajectory as JSON, YAML, Markdown or a
// Mermaid flowchart.
package export

import (
	"github.com/agenticgokit/tales/internal/trajectory"
)

// Placeholders used when a field is missing from the record.
const (
	PlaceholderNA          = "N/A"
	PlaceholderObservation = "No observation data"
	PlaceholderAction      = "No action"
)

// StepKind categorizes the nodes of a rendered trajectory
type StepKind string

const (
	// KindTrajectory is the head node naming a trajectory key
	KindTrajectory StepKind = "trajectory"
	// KindAction is the action taken at a step
	KindAction StepKind = "action"
	// KindObservation is the observation returned after the action
	KindObservation StepKind = "observation"
)

// Document is the complete export of one filtered trajectory view
type Document struct {
	Source       string               `json:"source,omitempty" yaml:"source,omitempty"`
	Mode         string               `json:"options_mode" yaml:"options_mode"`
	Selection    trajectory.Selection `json:"selection" yaml:"selection"`
	Summary      Summary              `json:"summary" yaml:"summary"`
	Trajectories []TrajectoryDoc      `json:"trajectories" yaml:"trajectories"`
}

// Summary provides aggregate counts for the document
type Summary struct {
	Steps        int `json:"steps" yaml:"steps"`
	Trajectories int `json:"trajectories" yaml:"trajectories"`
	// Records is the size of the whole file, before filtering.
	Records int `json:"records" yaml:"records"`
}

// TrajectoryDoc is one contiguous trajectory of the filtered result
type TrajectoryDoc struct {
	Key       trajectory.Key `json:"key" yaml:"key"`
	FirstStep float64        `json:"first_step" yaml:"first_step"`
	LastStep  float64        `json:"last_step" yaml:"last_step"`
	Steps     []StepDoc      `json:"steps" yaml:"steps"`
}

// StepDoc is one record as exported
type StepDoc struct {
	// Position is the 1-based position in the filtered trajectory.
	Position          int            `json:"position" yaml:"position"`
	Index             int            `json:"index" yaml:"index"`
	Step              string         `json:"step" yaml:"step"`
	ObservationBefore string         `json:"observation_before" yaml:"observation_before"`
	Action            string         `json:"action" yaml:"action"`
	ObservationAfter  string         `json:"observation_after" yaml:"observation_after"`
	Extra             map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}
