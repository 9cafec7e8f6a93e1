package export

import (
	"encoding/json"
	"errors"

	"github.com/agenticgokit/tales/internal/trajectory"
)

// ErrNoDataset is returned when collecting without a loaded file.
var ErrNoDataset = errors.New("no trajectory file loaded")

// Collector builds documents from a loaded dataset
type Collector struct {
	ds   *trajectory.Dataset
	mode trajectory.OptionsMode
}

// NewCollector creates a collector over ds
func NewCollector(ds *trajectory.Dataset, mode trajectory.OptionsMode) *Collector {
	if mode == "" {
		mode = trajectory.ModeInclusive
	}
	return &Collector{ds: ds, mode: mode}
}

// Collect filters the dataset with sel and returns the resulting document.
// Stale selections are reset the same way the viewer resets them.
func (c *Collector) Collect(sel trajectory.Selection) (*Document, error) {
	if c.ds == nil {
		return nil, ErrNoDataset
	}
	res := trajectory.Settle(c.ds, sel, c.mode)
	return Build(c.ds, c.mode, res), nil
}

// Build converts an evaluated result to a Document.
func Build(ds *trajectory.Dataset, mode trajectory.OptionsMode, res trajectory.Result) *Document {
	doc := &Document{
		Source:       ds.Source,
		Mode:         string(mode),
		Selection:    res.Selection,
		Trajectories: make([]TrajectoryDoc, 0),
		Summary: Summary{
			Steps:   len(res.Trajectory),
			Records: ds.Len(),
		},
	}

	for _, g := range trajectory.Segments(res.Trajectory) {
		td := TrajectoryDoc{
			Key:       g.Key,
			FirstStep: g.FirstStep,
			LastStep:  g.LastStep,
			Steps:     make([]StepDoc, 0, g.Steps),
		}
		for i := g.Offset; i < g.Offset+g.Steps; i++ {
			td.Steps = append(td.Steps, stepDoc(i+1, res.Trajectory[i]))
		}
		doc.Trajectories = append(doc.Trajectories, td)
	}
	doc.Summary.Trajectories = len(doc.Trajectories)
	return doc
}

func stepDoc(position int, r trajectory.Record) StepDoc {
	sd := StepDoc{
		Position:          position,
		Index:             r.Index,
		Step:              r.StepLabel,
		ObservationBefore: r.ObservationBefore,
		Action:            r.Action,
		ObservationAfter:  r.ObservationAfter,
	}
	if len(r.Extra) > 0 {
		sd.Extra = make(map[string]any, len(r.Extra))
		for name, raw := range r.Extra {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				v = string(raw)
			}
			sd.Extra[name] = v
		}
	}
	return sd
}
