package viewer

import (
	"strconv"
	"strings"
)

// Navigation tracks the position inside the current trajectory.
type Navigation struct {
	Index   int
	Length  int
	Playing bool

	// StepInput is the 1-based step text shown in the jump field. It is kept
	// apart from Index so partial typing never moves the cursor.
	StepInput string
	Editing   bool

	Timer Timer
}

// NewNavigation positions at the first step of a trajectory of n records.
func NewNavigation(n int) Navigation {
	nav := Navigation{Length: n}
	nav.StepInput = nav.currentLabel()
	return nav
}

// Last returns the last valid index, or -1 for an empty trajectory.
func (n Navigation) Last() int {
	return n.Length - 1
}

// AtLast reports whether the cursor is on the final step.
func (n Navigation) AtLast() bool {
	return n.Index == n.Last()
}

// Progress returns (Index+1)/Length, or 0 for an empty trajectory.
func (n Navigation) Progress() float64 {
	if n.Length == 0 {
		return 0
	}
	return float64(n.Index+1) / float64(n.Length)
}

// Reset moves to the first step of a new trajectory and stops autoplay.
func (n Navigation) Reset(length int) Navigation {
	prev := n
	n.Index = 0
	n.Length = length
	n.Playing = false
	n.Editing = false
	return n.settle(prev, true)
}

// Next advances one step, saturating at the last index.
func (n Navigation) Next() Navigation {
	prev := n
	if n.Index < n.Last() {
		n.Index++
	}
	return n.settle(prev, false)
}

// Previous moves back one step, saturating at zero.
func (n Navigation) Previous() Navigation {
	prev := n
	if n.Index > 0 {
		n.Index--
	}
	return n.settle(prev, false)
}

// Edit replaces the step input buffer without moving the cursor.
func (n Navigation) Edit(text string) Navigation {
	n.StepInput = text
	n.Editing = true
	return n
}

// CancelEdit discards the buffer and shows the committed step again.
func (n Navigation) CancelEdit() Navigation {
	n.Editing = false
	n.StepInput = n.currentLabel()
	return n
}

// JumpTo commits a 1-based step number typed by the user. Input that is not
// an integer in [1, Length] is rejected and the buffer reverts. Autoplay
// stops in either case.
func (n Navigation) JumpTo(text string) Navigation {
	prev := n
	n.Editing = false
	n.Playing = false
	if step, ok := parseLeadingInt(text); ok && step >= 1 && step <= n.Length {
		n.Index = step - 1
	}
	n.StepInput = n.currentLabel()
	return n.settle(prev, false)
}

// TogglePlay starts or pauses autoplay. Starting from the last step rewinds
// to the first one.
func (n Navigation) TogglePlay() Navigation {
	if n.Length == 0 {
		return n
	}
	prev := n
	if n.AtLast() {
		n.Index = 0
	}
	n.Playing = !n.Playing
	return n.settle(prev, false)
}

// Tick handles an autoplay tick issued for generation gen. Stale ticks and
// ticks while paused are ignored. At the last step autoplay stops instead of
// wrapping.
func (n Navigation) Tick(gen uint64) Navigation {
	if !n.Playing || !n.Timer.Valid(gen) {
		return n
	}
	prev := n
	if n.Index < n.Last() {
		n.Index++
	} else {
		n.Playing = false
	}
	return n.settle(prev, false)
}

// settle reissues the timer whenever playing, index or trajectory changed and
// keeps the input buffer in sync with the cursor.
func (n Navigation) settle(prev Navigation, newTrajectory bool) Navigation {
	if newTrajectory || n.Playing != prev.Playing || n.Index != prev.Index || n.Length != prev.Length {
		n.Timer = prev.Timer.Reissue()
	}
	if n.Index != prev.Index || !n.Editing {
		n.StepInput = n.currentLabel()
	}
	return n
}

func (n Navigation) currentLabel() string {
	return strconv.Itoa(n.Index + 1)
}

// parseLeadingInt reads an optionally signed decimal integer prefix after
// leading whitespace, ignoring whatever follows it.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
