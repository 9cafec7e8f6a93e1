package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationSaturates(t *testing.T) {
	n := NewNavigation(3)
	n = n.Previous()
	assert.Equal(t, 0, n.Index)

	n = n.Next().Next().Next().Next()
	assert.Equal(t, 2, n.Index)
	assert.Equal(t, "3", n.StepInput)
	assert.True(t, n.AtLast())
}

func TestNavigationJumpTo(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIndex int
	}{
		{name: "in range", input: "2", wantIndex: 1},
		{name: "last", input: "3", wantIndex: 2},
		{name: "whitespace", input: " 3 ", wantIndex: 2},
		{name: "trailing text", input: "2abc", wantIndex: 1},
		{name: "too large", input: "5", wantIndex: 0},
		{name: "zero", input: "0", wantIndex: 0},
		{name: "negative", input: "-1", wantIndex: 0},
		{name: "not a number", input: "abc", wantIndex: 0},
		{name: "empty", input: "", wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNavigation(3).Edit(tt.input).JumpTo(tt.input)
			assert.Equal(t, tt.wantIndex, n.Index)
			assert.Equal(t, n.currentLabel(), n.StepInput)
			assert.False(t, n.Editing)
		})
	}
}

func TestNavigationJumpStopsPlayback(t *testing.T) {
	n := NewNavigation(3).TogglePlay()
	require.True(t, n.Playing)

	n = n.JumpTo("7")
	assert.False(t, n.Playing)
	assert.Equal(t, 0, n.Index)
}

func TestNavigationEditKeepsIndex(t *testing.T) {
	n := NewNavigation(5).Next()
	n = n.Edit("4")
	assert.Equal(t, 1, n.Index)
	assert.Equal(t, "4", n.StepInput)

	n = n.CancelEdit()
	assert.Equal(t, "2", n.StepInput)
	assert.False(t, n.Editing)
}

func TestNavigationTogglePlayAtLastRewinds(t *testing.T) {
	n := NewNavigation(3).Next().Next()
	require.True(t, n.AtLast())

	n = n.TogglePlay()
	assert.Equal(t, 0, n.Index)
	assert.True(t, n.Playing)
}

func TestNavigationTick(t *testing.T) {
	n := NewNavigation(2).TogglePlay()
	gen := n.Timer.Gen()

	n = n.Tick(gen)
	assert.Equal(t, 1, n.Index)
	assert.True(t, n.Playing)
	assert.NotEqual(t, gen, n.Timer.Gen())

	// The tick that advanced is now stale.
	stale := n.Tick(gen)
	assert.Equal(t, n, stale)

	n = n.Tick(n.Timer.Gen())
	assert.Equal(t, 1, n.Index)
	assert.False(t, n.Playing, "autoplay stops at the last step instead of wrapping")
}

func TestNavigationTickWhilePaused(t *testing.T) {
	n := NewNavigation(3)
	assert.Equal(t, n, n.Tick(n.Timer.Gen()))
}

func TestNavigationTimerReissue(t *testing.T) {
	n := NewNavigation(3)
	start := n.Timer

	same := n.Previous()
	assert.Equal(t, start, same.Timer, "a saturated move changes nothing")

	moved := n.Next()
	assert.NotEqual(t, start, moved.Timer)

	reset := moved.Reset(3)
	assert.NotEqual(t, moved.Timer, reset.Timer)
	assert.Equal(t, 0, reset.Index)
}

func TestNavigationEmpty(t *testing.T) {
	n := NewNavigation(0)
	assert.Equal(t, 0.0, n.Progress())
	assert.False(t, n.TogglePlay().Playing)
	assert.Equal(t, 0, n.JumpTo("1").Index)
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12", 12, true},
		{"  7", 7, true},
		{"+3", 3, true},
		{"-2", -2, true},
		{"4.9", 4, true},
		{"1e3", 1, true},
		{"x1", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
