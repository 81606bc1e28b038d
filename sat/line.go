package sat

import "math"

// Line is the 1-D shadow of a shape projected onto an axis.
// Min <= Max always holds once the line has consumed at least one value.
type Line struct {
	Min float64
	Max float64
}

// NewLine creates a degenerate line holding a single projected value
func NewLine(v float64) Line {
	return Line{Min: v, Max: v}
}

// Consume widens the line so that it contains v
func (l *Line) Consume(v float64) {
	if v < l.Min {
		l.Min = v
	}
	if v > l.Max {
		l.Max = v
	}
}

// Length returns the extent of the line
func (l Line) Length() float64 {
	return l.Max - l.Min
}

// Overlaps checks if two lines share at least one point.
// Touching end points count as an overlap.
func (l Line) Overlaps(other Line) bool {
	return !(l.Max < other.Min || other.Max < l.Min)
}

// Overlap returns how far the lines must be moved apart along the axis to stop overlapping.
// When one line contains the other, the shortest way out through either end is added.
// The result is negative when the lines are disjoint.
func (l Line) Overlap(other Line) float64 {
	overlap := math.Min(l.Max, other.Max) - math.Max(l.Min, other.Min)

	if l.contains(other) || other.contains(l) {
		overlap += math.Min(math.Abs(l.Min-other.Min), math.Abs(l.Max-other.Max))
	}

	return overlap
}

func (l Line) contains(other Line) bool {
	return l.Min <= other.Min && other.Max <= l.Max
}
