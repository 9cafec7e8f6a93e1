// Package trajectory holds the step record model, file ingestion and the
// filter/group engine that turns a flat array of step records into ordered
// trajectories.
package trajectory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// All is the selection value that places no constraint on a dimension.
const All = "all"

// Dimension identifies one component of a trajectory key.
type Dimension int

const (
	DimModel Dimension = iota
	DimEnv
	DimLevel
	DimRun
)

// Dimensions lists every filter dimension in evaluation order.
var Dimensions = []Dimension{DimModel, DimEnv, DimLevel, DimRun}

const numDims = 4

// String returns the JSON field name of the dimension.
func (d Dimension) String() string {
	switch d {
	case DimModel:
		return "model"
	case DimEnv:
		return "env"
	case DimLevel:
		return "level"
	case DimRun:
		return "run_id"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Label returns a human readable name for the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimModel:
		return "Model"
	case DimEnv:
		return "Environment"
	case DimLevel:
		return "Level"
	case DimRun:
		return "Run ID"
	default:
		return d.String()
	}
}

// ParseDimension accepts the field name or a short alias ("run").
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "model":
		return DimModel, nil
	case "env", "environment":
		return DimEnv, nil
	case "level":
		return DimLevel, nil
	case "run", "run_id", "run-id":
		return DimRun, nil
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// Key is the canonical (model, env, level, run_id) tuple of a record.
type Key struct {
	Model string `json:"model" yaml:"model"`
	Env   string `json:"env" yaml:"env"`
	Level string `json:"level" yaml:"level"`
	RunID string `json:"run_id" yaml:"run_id"`
}

// Get returns the component for dimension d.
func (k Key) Get(d Dimension) string {
	switch d {
	case DimModel:
		return k.Model
	case DimEnv:
		return k.Env
	case DimLevel:
		return k.Level
	case DimRun:
		return k.RunID
	}
	return ""
}

func (k *Key) set(d Dimension, v string) {
	switch d {
	case DimModel:
		k.Model = v
	case DimEnv:
		k.Env = v
	case DimLevel:
		k.Level = v
	case DimRun:
		k.RunID = v
	}
}

func (k Key) String() string {
	parts := make([]string, 0, numDims)
	for _, d := range Dimensions {
		v := k.Get(d)
		if v == "" {
			v = "-"
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, " / ")
}

// Record is one step of one trajectory.
type Record struct {
	// Index is the position of the record in the original input array.
	Index int
	Key   Key

	// Step is the numeric sequence position; non-numeric values read as 0.
	Step float64
	// StepLabel is the step as written in the file, empty when absent.
	StepLabel string
	HasStep   bool

	ObservationBefore string
	Action            string
	ObservationAfter  string

	// Extra holds fields the viewer does not interpret.
	Extra map[string]json.RawMessage

	truthy [numDims]bool
}

// Truthy reports whether the record carries a non-empty value for d.
// Null, missing, false, 0 and "" are not truthy.
func (r Record) Truthy(d Dimension) bool {
	return r.truthy[d]
}

// GroupKey is the key used to order trajectories. Falsy components collapse
// to the empty string so that null, 0 and "" share a group.
func (r Record) GroupKey() Key {
	var k Key
	for _, d := range Dimensions {
		if r.truthy[d] {
			k.set(d, r.Key.Get(d))
		}
	}
	return k
}

var knownFields = map[string]bool{
	"model": true, "env": true, "level": true, "run_id": true, "step": true,
	"observation_before": true, "action": true, "observation_after": true,
}

func newRecord(index int, fields map[string]json.RawMessage) Record {
	r := Record{Index: index}
	for _, d := range Dimensions {
		v, ok := canonical(fields[d.String()])
		r.Key.set(d, v)
		r.truthy[d] = ok
	}

	if raw, ok := fields["step"]; ok {
		r.HasStep = true
		r.StepLabel, _ = canonical(raw)
		r.Step = numeric(raw)
	}

	r.ObservationBefore, _ = canonical(fields["observation_before"])
	r.Action, _ = canonical(fields["action"])
	r.ObservationAfter, _ = canonical(fields["observation_after"])

	for name, raw := range fields {
		if knownFields[name] {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[name] = raw
	}
	return r
}

// canonical coerces a JSON value to its comparison string and reports
// whether the value is truthy.
func canonical(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case 'n':
		return "", false
	case 't':
		return "true", true
	case 'f':
		return "false", false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw), true
		}
		return s, s != ""
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return string(raw), true
		}
		return buf.String(), true
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return string(raw), true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), f != 0
}

// numeric mirrors Number(x) || 0 for step values.
func numeric(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	var f float64
	switch raw[0] {
	case 't':
		return 1
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		parsed, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
