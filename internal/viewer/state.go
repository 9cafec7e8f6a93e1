// Package viewer holds the viewer state and the pure reducer that applies
// user and timer events to it. Rendering lives in internal/tui.
package viewer

import (
	"time"

	"github.com/agenticgokit/tales/internal/trajectory"
)

// Run selection policies applied after a load.
const (
	DefaultRunFirst = "first"
	DefaultRunAll   = "all"
)

// Settings are the knobs a State is created with.
type Settings struct {
	Mode     trajectory.OptionsMode
	Interval time.Duration
	// DefaultRun is DefaultRunFirst or DefaultRunAll.
	DefaultRun string
	// Preset overrides the post-load selection for every non-empty field.
	Preset trajectory.Selection
}

func (s Settings) interval() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}
	return s.Interval
}

// State is everything the presentation layer renders.
type State struct {
	Settings Settings

	Dataset    *trajectory.Dataset
	Selection  trajectory.Selection
	Available  trajectory.Options
	Trajectory []trajectory.Record
	Groups     []trajectory.Group

	Nav Navigation

	// Err is the last load failure, cleared by DismissError or a good load.
	Err error
}

// New returns the "no file loaded" state.
func New(settings Settings) State {
	if settings.Mode == "" {
		settings.Mode = trajectory.ModeInclusive
	}
	return State{
		Settings:  settings,
		Selection: trajectory.AllSelection(),
		Nav:       NewNavigation(0),
	}
}

// Loaded reports whether a dataset with at least one record is active. A
// file holding an empty array reads as nothing loaded.
func (s State) Loaded() bool {
	return s.Dataset != nil && s.Dataset.Len() > 0
}

// Empty reports a loaded dataset whose filters match nothing.
func (s State) Empty() bool {
	return s.Loaded() && len(s.Trajectory) == 0
}

// Current returns the record under the cursor.
func (s State) Current() (trajectory.Record, bool) {
	if s.Nav.Index < 0 || s.Nav.Index >= len(s.Trajectory) {
		return trajectory.Record{}, false
	}
	return s.Trajectory[s.Nav.Index], true
}

// CurrentGroup returns the trajectory segment under the cursor and the
// cursor's position inside it.
func (s State) CurrentGroup() (trajectory.Group, int, bool) {
	return trajectory.SegmentAt(s.Groups, s.Nav.Index)
}

// Choices lists the values a selector for d may take, All first. The run
// selector offers every run of the file; the others offer their available
// list.
func (s State) Choices(d trajectory.Dimension) []string {
	var values []string
	if d == trajectory.DimRun && s.Dataset != nil {
		values = s.Dataset.Options.RunIDs
	} else {
		values = s.Available.Get(d)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, trajectory.All)
	return append(out, values...)
}

// Event is an input to Reduce.
type Event interface {
	event()
}

type (
	// Loaded replaces the dataset. KeepSelection retains the current
	// selection instead of the post-load defaults, as a file reload does.
	Loaded struct {
		Dataset       *trajectory.Dataset
		KeepSelection bool
	}
	// LoadFailed records a load error; prior data stays active.
	LoadFailed struct{ Err error }
	// DismissError clears the last load error.
	DismissError struct{}
	// Select sets one filter dimension. An empty Value means All.
	Select struct {
		Dim   trajectory.Dimension
		Value string
	}
	ResetFilters struct{}
	Next         struct{}
	Previous     struct{}
	EditStep     struct{ Text string }
	// SubmitStep commits Text, the step number visible in the input field.
	SubmitStep     struct{ Text string }
	CancelStepEdit struct{}
	TogglePlay     struct{}
	// Tick is an autoplay tick issued for timer generation Gen.
	Tick struct{ Gen uint64 }
)

func (Loaded) event()         {}
func (LoadFailed) event()     {}
func (DismissError) event()   {}
func (Select) event()         {}
func (ResetFilters) event()   {}
func (Next) event()           {}
func (Previous) event()       {}
func (EditStep) event()       {}
func (SubmitStep) event()     {}
func (CancelStepEdit) event() {}
func (TogglePlay) event()     {}
func (Tick) event()           {}

// Reduce applies ev to s. It never blocks; a requested autoplay tick is
// returned as an Effect for the host to schedule.
func Reduce(s State, ev Event) (State, Effect) {
	prev := s.Nav.Timer

	switch e := ev.(type) {
	case Loaded:
		s = s.load(e)
	case LoadFailed:
		s.Err = e.Err
	case DismissError:
		s.Err = nil
	case Select:
		value := e.Value
		if value == "" {
			value = trajectory.All
		}
		if s.Selection.Get(e.Dim) == value {
			return s, Effect{}
		}
		s = s.refilter(s.Selection.With(e.Dim, value))
	case ResetFilters:
		s = s.refilter(trajectory.AllSelection())
	case Next:
		s.Nav = s.Nav.Next()
	case Previous:
		s.Nav = s.Nav.Previous()
	case EditStep:
		s.Nav = s.Nav.Edit(e.Text)
	case SubmitStep:
		s.Nav = s.Nav.JumpTo(e.Text)
	case CancelStepEdit:
		s.Nav = s.Nav.CancelEdit()
	case TogglePlay:
		s.Nav = s.Nav.TogglePlay()
	case Tick:
		s.Nav = s.Nav.Tick(e.Gen)
	}

	return s, s.effect(prev)
}

func (s State) effect(prev Timer) Effect {
	if !s.Nav.Playing || s.Nav.Timer == prev {
		return Effect{}
	}
	return Effect{Schedule: true, Gen: s.Nav.Timer.Gen(), After: s.Settings.interval()}
}

func (s State) load(e Loaded) State {
	if e.Dataset == nil {
		return s
	}
	sel := s.Selection
	if !e.KeepSelection || !s.Loaded() {
		sel = s.Settings.InitialSelection(e.Dataset)
	}
	s.Dataset = e.Dataset
	s.Err = nil
	return s.refilter(sel)
}

// InitialSelection is the selection applied when ds is first shown.
func (s Settings) InitialSelection(ds *trajectory.Dataset) trajectory.Selection {
	sel := trajectory.DefaultSelection(ds)
	if s.DefaultRun == DefaultRunAll {
		sel = trajectory.AllSelection()
	}
	for _, d := range trajectory.Dimensions {
		if v := s.Preset.Get(d); v != "" {
			sel = sel.With(d, v)
		}
	}
	return sel
}

// refilter runs the engine to a settled result and resets navigation onto
// the new trajectory.
func (s State) refilter(sel trajectory.Selection) State {
	if s.Dataset == nil {
		s.Selection = sel
		s.Nav = s.Nav.Reset(0)
		return s
	}
	res := trajectory.Settle(s.Dataset, sel, s.Settings.Mode)
	s.Selection = res.Selection
	s.Available = res.Available
	s.Trajectory = res.Trajectory
	s.Groups = trajectory.Segments(res.Trajectory)
	s.Nav = s.Nav.Reset(len(res.Trajectory))
	return s
}
