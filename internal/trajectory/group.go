package trajectory

import "sort"

// groupOrder maps each distinct group key to the position of its first
// appearance in the original array.
func groupOrder(all []Record) map[Key]int {
	order := make(map[Key]int)
	for _, r := range all {
		k := r.GroupKey()
		if _, ok := order[k]; !ok {
			order[k] = len(order)
		}
	}
	return order
}

// SortTrajectory orders filtered records so that each trajectory is
// contiguous, trajectories follow their first appearance in all, and steps
// ascend within a trajectory. The input slice is not modified.
func SortTrajectory(all, filtered []Record) []Record {
	order := groupOrder(all)
	out := make([]Record, len(filtered))
	copy(out, filtered)
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := order[out[i].GroupKey()], order[out[j].GroupKey()]
		if gi != gj {
			return gi < gj
		}
		return out[i].Step < out[j].Step
	})
	return out
}

// Group summarises one trajectory.
type Group struct {
	Key       Key
	Steps     int
	FirstStep float64
	LastStep  float64
	// Offset is the index of the group's first record in the slice it was
	// computed from.
	Offset int
}

// Groups lists every trajectory of the dataset in first-appearance order.
func Groups(ds *Dataset) []Group {
	if ds == nil {
		return nil
	}
	return Segments(SortTrajectory(ds.Records, ds.Records))
}

// Segments splits an ordered trajectory into its contiguous groups.
func Segments(ordered []Record) []Group {
	var groups []Group
	for i, r := range ordered {
		k := r.GroupKey()
		if n := len(groups); n > 0 && groups[n-1].Key == k {
			g := &groups[n-1]
			g.Steps++
			if r.Step < g.FirstStep {
				g.FirstStep = r.Step
			}
			if r.Step > g.LastStep {
				g.LastStep = r.Step
			}
			continue
		}
		groups = append(groups, Group{
			Key:       k,
			Steps:     1,
			FirstStep: r.Step,
			LastStep:  r.Step,
			Offset:    i,
		})
	}
	return groups
}

// SegmentAt returns the group containing position idx of an ordered
// trajectory and the 0-based position of idx inside that group.
func SegmentAt(groups []Group, idx int) (Group, int, bool) {
	for _, g := range groups {
		if idx >= g.Offset && idx < g.Offset+g.Steps {
			return g, idx - g.Offset, true
		}
	}
	return Group{}, 0, false
}
