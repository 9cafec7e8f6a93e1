package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticgokit/tales/internal/trajectory"
	"github.com/agenticgokit/tales/internal/viewer"
)

const sample = `[
	{"model": "A", "env": "X", "level": "easy", "run_id": "r1", "step": 2, "action": "a2"},
	{"model": "B", "env": "X", "level": "easy", "run_id": "r1", "step": 1, "action": "b1"},
	{"model": "A", "env": "X", "level": "easy", "run_id": "r1", "step": 1, "observation_before": "start", "action": "a1"},
	{"model": "A", "env": "Y", "level": "hard", "run_id": "r2", "step": 1, "action": "ay1"}
]`

func fakeLoad(data string) LoadFunc {
	return func(_ context.Context, path string) (*trajectory.Dataset, error) {
		ds, err := trajectory.Parse([]byte(data))
		if err != nil {
			return nil, err
		}
		ds.Source = path
		return ds, nil
	}
}

// run executes cmd and feeds its message back, the way the program loop would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model = m
	for _, k := range keys {
		next, cmd = next.(Model).Update(k)
	}
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{Path: "runs.json", Load: fakeLoad(sample)})
	return run(t, m, m.Init())
}

func TestNoFileLoaded(t *testing.T) {
	m := New(Options{})
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No file loaded")

	// Navigation keys are harmless without data.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, runes("g"))
	assert.Equal(t, 0, m.State().Nav.Index)
	assert.Equal(t, inputNone, m.input)
}

func TestLoadAndNavigate(t *testing.T) {
	m := loadedModel(t)
	assert.Equal(t, "runs.json", m.Path())
	assert.Len(t, m.State().Trajectory, 3)

	view := m.View()
	assert.Contains(t, view, "Current Trajectory: 3 steps")
	assert.Contains(t, view, "Step 1 / 3")
	assert.Contains(t, view, "start")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.State().Nav.Index)

	m, _ = press(m, runes("h"))
	assert.Equal(t, 1, m.State().Nav.Index)
}

func TestPlaySchedulesTick(t *testing.T) {
	m := loadedModel(t)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.State().Nav.Playing)
	require.NotNil(t, cmd)

	gen := m.State().Nav.Timer.Gen()
	next, cmd := m.Update(tickMsg{gen: gen})
	m = next.(Model)
	assert.Equal(t, 1, m.State().Nav.Index)
	assert.NotNil(t, cmd)

	// The old generation no longer advances anything.
	next, cmd = m.Update(tickMsg{gen: gen})
	assert.Equal(t, 1, next.(Model).State().Nav.Index)
	assert.Nil(t, cmd)
}

func TestFilterCycling(t *testing.T) {
	m := loadedModel(t)
	require.Equal(t, trajectory.DimModel, m.focus)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "A", m.State().Selection.Model)
	assert.Equal(t, []string{"a1", "a2"}, actionsOf(m.State().Trajectory))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, trajectory.All, m.State().Selection.Model)

	// Run ID cycles through the full run list.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, trajectory.DimRun, m.focus)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "r2", m.State().Selection.RunID)

	m, _ = press(m, runes("r"))
	assert.Equal(t, trajectory.AllSelection(), m.State().Selection)
	assert.Len(t, m.State().Trajectory, 4)
}

func TestStepJumpInput(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(m, runes("g"))
	require.Equal(t, inputStep, m.input)

	m, _ = press(m, runes("3"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, inputNone, m.input)
	assert.Equal(t, 2, m.State().Nav.Index)

	m, _ = press(m, runes("g"), runes("9"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.State().Nav.Index)
	assert.Equal(t, "3", m.State().Nav.StepInput)

	m, _ = press(m, runes("g"), runes("1"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 2, m.State().Nav.Index)
	assert.Equal(t, "3", m.State().Nav.StepInput)
}

func TestStepJumpWhilePlaying(t *testing.T) {
	m := loadedModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace}, runes("g"), runes("3"))
	require.True(t, m.State().Nav.Playing)
	require.Equal(t, inputStep, m.input)

	next, _ := m.Update(tickMsg{gen: m.State().Nav.Timer.Gen()})
	m = next.(Model)
	require.Equal(t, 1, m.State().Nav.Index)
	require.Equal(t, "3", m.stepInput.Value())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.State().Nav.Index)
	assert.Equal(t, "3", m.State().Nav.StepInput)
	assert.False(t, m.State().Nav.Playing)
}

func TestLoadFailureShowsModal(t *testing.T) {
	m := loadedModel(t)
	before := m.State().Trajectory

	next, _ := m.Update(loadFailedMsg{path: "bad.json", err: errors.New("invalid character '}'")})
	m = next.(Model)
	view := m.View()
	assert.Contains(t, view, "Error loading file")
	assert.Contains(t, view, "invalid character")
	assert.Equal(t, before, m.State().Trajectory)

	// Any key dismisses the modal without acting on it.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.NoError(t, m.State().Err)
	assert.Equal(t, 0, m.State().Nav.Index)
}

func TestOpenFilePrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"model": "Z", "run_id": "z", "step": 1, "action": "zz"}]`), 0o600))

	m := loadedModel(t)
	m.load = trajectory.Load

	m, _ = press(m, runes("o"))
	require.Equal(t, inputOpen, m.input)
	m.openInput.SetValue(path)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)
	assert.Equal(t, path, m.Path())
	assert.Equal(t, []string{"zz"}, actionsOf(m.State().Trajectory))
}

func TestFileChangedReloadKeepsSelection(t *testing.T) {
	m := loadedModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, "A", m.State().Selection.Model)

	next, cmd := m.Update(FileChangedMsg{Path: "elsewhere.json"})
	assert.Nil(t, cmd)

	next, cmd = next.(Model).Update(FileChangedMsg{Path: "runs.json"})
	m = run(t, next.(Model), cmd)
	assert.Equal(t, "A", m.State().Selection.Model)
}

func TestEmptyTrajectoryView(t *testing.T) {
	m := loadedModel(t)
	m.state.Trajectory = nil
	m.state.Nav = viewer.NewNavigation(0)

	require.True(t, m.State().Empty())
	assert.Contains(t, m.View(), "No data available for the selected filters")
}

func TestEmptyFileReadsAsNoFile(t *testing.T) {
	m := New(Options{Path: "empty.json", Load: fakeLoad(`[]`)})
	m = run(t, m, m.Init())
	assert.False(t, m.State().Loaded())
	assert.False(t, m.State().Empty())
	assert.Contains(t, m.View(), "No file loaded")
}

func TestResize(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 40-chromeHeight, m.viewport.Height)
	assert.Equal(t, 80, m.progress.Width)
}

func TestScrollKeptUntilStepChanges(t *testing.T) {
	long := strings.Repeat("line\\n", 40)
	data := `[
		{"model": "A", "run_id": "r1", "step": 1, "observation_before": "` + long + `", "action": "a1"},
		{"model": "A", "run_id": "r1", "step": 2, "observation_before": "` + long + `", "action": "a2"}
	]`
	m := New(Options{Path: "long.json", Load: fakeLoad(data)})
	m = run(t, m, m.Init())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Model)

	m, _ = press(m, runes("j"), runes("j"))
	require.Equal(t, 2, m.viewport.YOffset)

	// Events that leave the step alone keep the scroll position.
	next, _ = m.Update(tickMsg{gen: m.State().Nav.Timer.Gen() + 1})
	m = next.(Model)
	m, _ = press(m, runes("g"), runes("2"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 2, m.viewport.YOffset)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.State().Nav.Index)
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestRenderStepPlaceholders(t *testing.T) {
	ds, err := trajectory.Parse([]byte(`[{"model": "A"}]`))
	require.NoError(t, err)

	out := RenderStep(ds.Records[0], 1, 1, 80)
	assert.Contains(t, out, "Step 1 / 1")
	assert.Contains(t, out, "N/A")
	assert.Equal(t, 2, strings.Count(out, "No observation data"))
	assert.Contains(t, out, "No action")
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	msgs := make(chan tea.Msg, 4)
	w, err := WatchFile(path, func(msg tea.Msg) { msgs <- msg }, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	select {
	case msg := <-msgs:
		assert.Equal(t, FileChangedMsg{Path: w.Path()}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func actionsOf(records []trajectory.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Action
	}
	return out
}

var _ tea.Model = Model{}
