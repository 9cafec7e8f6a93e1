package trajectory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options holds the distinct values of each filter dimension.
type Options struct {
	Models []string `json:"models" yaml:"models"`
	Envs   []string `json:"envs" yaml:"envs"`
	Levels []string `json:"levels" yaml:"levels"`
	RunIDs []string `json:"run_ids" yaml:"run_ids"`
}

// Get returns the values for dimension d.
func (o Options) Get(d Dimension) []string {
	switch d {
	case DimModel:
		return o.Models
	case DimEnv:
		return o.Envs
	case DimLevel:
		return o.Levels
	case DimRun:
		return o.RunIDs
	}
	return nil
}

func (o *Options) set(d Dimension, values []string) {
	switch d {
	case DimModel:
		o.Models = values
	case DimEnv:
		o.Envs = values
	case DimLevel:
		o.Levels = values
	case DimRun:
		o.RunIDs = values
	}
}

// Contains reports whether v is one of the values for dimension d.
func (o Options) Contains(d Dimension, v string) bool {
	for _, have := range o.Get(d) {
		if have == v {
			return true
		}
	}
	return false
}

// fullOptions derives the option lists shown right after a load.
func fullOptions(records []Record) Options {
	var o Options
	for _, d := range Dimensions {
		o.set(d, distinct(records, d))
	}
	return o
}

// distinct collects the truthy values of d in first-seen order. Run IDs are
// sorted afterwards.
func distinct(records []Record, d Dimension) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, r := range records {
		if !r.truthy[d] {
			continue
		}
		v := r.Key.Get(d)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	if d == DimRun {
		sortRunIDs(values)
	}
	return values
}

// sortRunIDs orders run IDs by collation rather than numeric value, so
// "r10" sorts before "r2" and 10 before 9.
func sortRunIDs(values []string) {
	c := collate.New(language.Und)
	sort.SliceStable(values, func(i, j int) bool {
		return c.CompareString(values[i], values[j]) < 0
	})
}
