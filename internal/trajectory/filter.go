package trajectory

import (
	"fmt"
	"strings"
)

// Selection is the active value of each filter dimension; All means no
// constraint.
type Selection struct {
	Model string `json:"model" yaml:"model"`
	Env   string `json:"env" yaml:"env"`
	Level string `json:"level" yaml:"level"`
	RunID string `json:"run_id" yaml:"run_id"`
}

// AllSelection places no constraint on any dimension.
func AllSelection() Selection {
	return Selection{Model: All, Env: All, Level: All, RunID: All}
}

// DefaultSelection is the selection applied right after a load: every
// dimension open except run_id, which starts at the first run.
func DefaultSelection(ds *Dataset) Selection {
	sel := AllSelection()
	if ds != nil && len(ds.Options.RunIDs) > 0 {
		sel.RunID = ds.Options.RunIDs[0]
	}
	return sel
}

// Get returns the selected value for d.
func (s Selection) Get(d Dimension) string {
	switch d {
	case DimModel:
		return s.Model
	case DimEnv:
		return s.Env
	case DimLevel:
		return s.Level
	case DimRun:
		return s.RunID
	}
	return All
}

// With returns a copy of s with d set to v. An empty v means All.
func (s Selection) With(d Dimension, v string) Selection {
	if v == "" {
		v = All
	}
	switch d {
	case DimModel:
		s.Model = v
	case DimEnv:
		s.Env = v
	case DimLevel:
		s.Level = v
	case DimRun:
		s.RunID = v
	}
	return s
}

// Matches reports whether k satisfies every dimension of s.
func (s Selection) Matches(k Key) bool {
	return s.matchesExcept(k, -1)
}

func (s Selection) matchesExcept(k Key, skip Dimension) bool {
	for _, d := range Dimensions {
		if d == skip {
			continue
		}
		want := s.Get(d)
		if want != All && k.Get(d) != want {
			return false
		}
	}
	return true
}

func (s Selection) String() string {
	parts := make([]string, 0, numDims)
	for _, d := range Dimensions {
		parts = append(parts, fmt.Sprintf("%s=%s", d, s.Get(d)))
	}
	return strings.Join(parts, " ")
}

// OptionsMode selects how available option lists are derived.
type OptionsMode string

const (
	// ModeInclusive derives every list from the fully filtered set, so a
	// dimension's own selection narrows its list to that single value.
	ModeInclusive OptionsMode = "inclusive"
	// ModeExclusive derives the list for a dimension from the filters on the
	// other three dimensions only.
	ModeExclusive OptionsMode = "exclusive"
)

// ParseOptionsMode validates a mode name. Empty means ModeInclusive.
func ParseOptionsMode(s string) (OptionsMode, error) {
	switch OptionsMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeInclusive:
		return ModeInclusive, nil
	case ModeExclusive:
		return ModeExclusive, nil
	}
	return "", fmt.Errorf("unknown options mode %q (supported: inclusive, exclusive)", s)
}

// Result is the outcome of one evaluation pass.
type Result struct {
	Selection Selection
	// Available is only meaningful when Complete is true.
	Available  Options
	Trajectory []Record
	// Complete is false when a stale selection was reset and the pass was
	// abandoned before grouping.
	Complete bool
	Reset    Dimension
}

// Evaluate runs one pass of the filter/group engine.
func Evaluate(ds *Dataset, sel Selection, mode OptionsMode) Result {
	res := Result{Selection: sel, Reset: -1}
	if ds == nil {
		res.Complete = true
		return res
	}

	filtered := make([]Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if sel.Matches(r.Key) {
			filtered = append(filtered, r)
		}
	}

	var avail Options
	for _, d := range Dimensions {
		source := filtered
		if mode == ModeExclusive {
			source = source[:0:0]
			for _, r := range ds.Records {
				if sel.matchesExcept(r.Key, d) {
					source = append(source, r)
				}
			}
		}
		avail.set(d, distinct(source, d))
	}

	for _, d := range Dimensions {
		v := sel.Get(d)
		if v != All && !avail.Contains(d, v) {
			res.Selection = sel.With(d, All)
			res.Reset = d
			return res
		}
	}

	res.Available = avail
	res.Trajectory = SortTrajectory(ds.Records, filtered)
	res.Complete = true
	return res
}

// Settle evaluates until no selection needs resetting. Each incomplete pass
// resets one dimension to All, so at most numDims+1 passes run.
func Settle(ds *Dataset, sel Selection, mode OptionsMode) Result {
	res := Evaluate(ds, sel, mode)
	for i := 0; !res.Complete && i < numDims; i++ {
		res = Evaluate(ds, res.Selection, mode)
	}
	return res
}
