package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agenticgokit/tales/internal/trajectory"
	"github.com/agenticgokit/tales/internal/utils"
	"github.com/agenticgokit/tales/internal/viewer"
)

// LoadFunc reads a trajectory file.
type LoadFunc func(ctx context.Context, path string) (*trajectory.Dataset, error)

// tickMsg is an autoplay tick for one timer generation
type tickMsg struct{ gen uint64 }

type loadedMsg struct {
	ds     *trajectory.Dataset
	reload bool
}

type loadFailedMsg struct {
	path string
	err  error
}

// FileChangedMsg tells the viewer that the file at Path was modified.
type FileChangedMsg struct{ Path string }

// inputMode says which text field, if any, receives keystrokes
type inputMode int

const (
	inputNone inputMode = iota
	inputStep
	inputOpen
)

// Options configure a viewer Model.
type Options struct {
	Context  context.Context
	Path     string
	Settings viewer.Settings
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
	// Load defaults to trajectory.Load.
	Load LoadFunc
}

// Model is the bubbletea model of the trajectory viewer
type Model struct {
	ctx    context.Context
	load   LoadFunc
	logger zerolog.Logger
	path   string

	state viewer.State
	focus trajectory.Dimension
	input inputMode

	keys      keyMap
	help      help.Model
	stepInput textinput.Model
	openInput textinput.Model
	progress  progress.Model
	viewport  viewport.Model

	width  int
	height int
}

// New creates a viewer. When opts.Path is set, Init loads it.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Load == nil {
		opts.Load = trajectory.Load
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	step := textinput.New()
	step.Prompt = "Go to step: "
	step.CharLimit = 9
	step.Width = 10

	open := textinput.New()
	open.Prompt = "Open file: "
	open.Placeholder = "path/to/trajectories.json"
	open.Width = 60

	keys := defaultKeyMap()
	vp := viewport.New(80, 16)
	vp.KeyMap = viewportKeyMap()

	m := Model{
		ctx:       opts.Context,
		load:      opts.Load,
		logger:    logger,
		path:      opts.Path,
		state:     viewer.New(opts.Settings),
		focus:     trajectory.DimModel,
		keys:      keys,
		help:      help.New(),
		stepInput: step,
		openInput: open,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		viewport:  vp,
		width:     80,
		height:    30,
	}
	m.progress.Width = 40
	m.help.Styles.ShortKey = HelpKeyStyle
	m.help.Styles.FullKey = HelpKeyStyle
	m.syncViewport(true)
	return m
}

// State exposes the current viewer state.
func (m Model) State() viewer.State {
	return m.state
}

// Path returns the file currently shown.
func (m Model) Path() string {
	return m.path
}

// Init starts loading the initial file, if any
func (m Model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	return m.loadCmd(m.path, false)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.dispatch(viewer.Tick{Gen: msg.gen})

	case loadedMsg:
		if !msg.reload {
			m.path = msg.ds.Source
		}
		m.logger.Info().
			Str("file", msg.ds.Source).
			Int("records", msg.ds.Len()).
			Bool("reload", msg.reload).
			Msg("trajectory file loaded")
		return m.dispatch(viewer.Loaded{Dataset: msg.ds, KeepSelection: msg.reload})

	case loadFailedMsg:
		m.logger.Error().Err(msg.err).Str("file", msg.path).Msg("failed to load trajectory file")
		return m.dispatch(viewer.LoadFailed{Err: msg.err})

	case FileChangedMsg:
		if msg.Path != m.path {
			return m, nil
		}
		m.logger.Debug().Str("file", msg.Path).Msg("file changed, reloading")
		return m, m.loadCmd(msg.Path, true)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// The error modal swallows the first key.
	if m.state.Err != nil {
		return m.dispatch(viewer.DismissError{})
	}

	switch m.input {
	case inputStep:
		return m.updateStepInput(msg)
	case inputOpen:
		return m.updateOpenInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(viewer.Previous{})
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(viewer.Next{})
	case key.Matches(msg, m.keys.Play):
		return m.dispatch(viewer.TogglePlay{})
	case key.Matches(msg, m.keys.Reset):
		return m.dispatch(viewer.ResetFilters{})
	case key.Matches(msg, m.keys.FocusNext):
		m.focus = trajectory.Dimension((int(m.focus) + 1) % len(trajectory.Dimensions))
		return m, nil
	case key.Matches(msg, m.keys.FocusPrev):
		n := len(trajectory.Dimensions)
		m.focus = trajectory.Dimension((int(m.focus) + n - 1) % n)
		return m, nil
	case key.Matches(msg, m.keys.ValueNext):
		return m.cycle(1)
	case key.Matches(msg, m.keys.ValuePrev):
		return m.cycle(-1)
	case key.Matches(msg, m.keys.Jump):
		if !m.state.Loaded() || len(m.state.Trajectory) == 0 {
			return m, nil
		}
		m.input = inputStep
		m.stepInput.Placeholder = m.state.Nav.StepInput
		m.stepInput.SetValue("")
		cmd := m.stepInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		m.input = inputOpen
		m.openInput.SetValue(m.path)
		m.openInput.CursorEnd()
		cmd := m.openInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m = m.resize(m.width, m.height)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateStepInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.input = inputNone
		m.stepInput.Blur()
		return m.dispatch(viewer.SubmitStep{Text: m.stepInput.Value()})
	case tea.KeyEsc:
		m.input = inputNone
		m.stepInput.Blur()
		return m.dispatch(viewer.CancelStepEdit{})
	}

	var cmd tea.Cmd
	m.stepInput, cmd = m.stepInput.Update(msg)
	next, dispatchCmd := m.dispatch(viewer.EditStep{Text: m.stepInput.Value()})
	return next, tea.Batch(cmd, dispatchCmd)
}

func (m Model) updateOpenInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.input = inputNone
		m.openInput.Blur()
		path, err := utils.ExpandPath(m.openInput.Value())
		if err != nil {
			return m.dispatch(viewer.LoadFailed{Err: err})
		}
		return m, m.loadCmd(path, false)
	case tea.KeyEsc:
		m.input = inputNone
		m.openInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.openInput, cmd = m.openInput.Update(msg)
	return m, cmd
}

// cycle moves the focused filter to the next or previous choice.
func (m Model) cycle(delta int) (tea.Model, tea.Cmd) {
	if !m.state.Loaded() {
		return m, nil
	}
	choices := m.state.Choices(m.focus)
	current := m.state.Selection.Get(m.focus)
	idx := -1
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	next := 0
	if idx >= 0 {
		next = (idx + delta + len(choices)) % len(choices)
	}
	return m.dispatch(viewer.Select{Dim: m.focus, Value: choices[next]})
}

// dispatch runs the reducer and turns its effect into a command.
func (m Model) dispatch(ev viewer.Event) (Model, tea.Cmd) {
	prevIndex, prevTrajectory := m.state.Nav.Index, m.state.Trajectory

	var eff viewer.Effect
	m.state, eff = viewer.Reduce(m.state, ev)
	if m.input != inputStep {
		m.stepInput.SetValue(m.state.Nav.StepInput)
	}
	moved := m.state.Nav.Index != prevIndex || !sameRecords(prevTrajectory, m.state.Trajectory)
	m.syncViewport(moved)
	return m, scheduleTick(eff)
}

func scheduleTick(eff viewer.Effect) tea.Cmd {
	if !eff.Schedule {
		return nil
	}
	gen := eff.Gen
	return tea.Tick(eff.After, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) loadCmd(path string, reload bool) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		ds, err := load(ctx, path)
		if err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		if ds.Source == "" {
			ds.Source = path
		}
		return loadedMsg{ds: ds, reload: reload}
	}
}

// chromeHeight is the number of lines around the step panels.
const chromeHeight = 12

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width

	panelHeight := height - chromeHeight
	if m.help.ShowAll {
		panelHeight -= 4
	}
	if panelHeight < 5 {
		panelHeight = 5
	}
	m.viewport.Width = width
	m.viewport.Height = panelHeight

	barWidth := width - 40
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
	m.syncViewport(false)
	return m
}

// syncViewport renders the current step into the scrollable panel. The
// scroll position is kept unless top is set.
func (m *Model) syncViewport(top bool) {
	rec, ok := m.state.Current()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(RenderPanels(rec, m.viewport.Width))
	if top {
		m.viewport.GotoTop()
	}
}

// sameRecords reports whether a and b are the same trajectory slice.
func sameRecords(a, b []trajectory.Record) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
