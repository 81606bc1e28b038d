package sat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length under which a direction is considered degenerate
const Epsilon = 1e-9

// Box is a rectangular box given by its 8 world-space corners.
// Corners follow the ordering of actor.OBB: edges 0→1, 0→3 and 0→4 span the three face directions.
type Box interface {
	Corners() [8]mgl64.Vec3
}

// Result of a separating axis test between two boxes
type Result struct {
	Hit bool
	// Normal points from B toward A: moving A by Normal*Penetration separates the boxes
	Normal      mgl64.Vec3
	Penetration float64
}

// Normalize returns the unit vector of v.
// ok is false when v is too short to carry a direction, in which case v is returned unchanged.
func Normalize(v mgl64.Vec3) (unit mgl64.Vec3, ok bool) {
	length := v.Len()
	if length < Epsilon || math.IsNaN(length) {
		return v, false
	}

	return v.Mul(1.0 / length), true
}

// Axes returns the face normals of a box, derived from its edges 0→1, 0→3 and 0→4.
// A flat box (one half-extent equal to 0) has one zero-length edge: its normal is rebuilt
// from the cross product of the two others. Directions that cannot be recovered are skipped.
func Axes(corners [8]mgl64.Vec3) []mgl64.Vec3 {
	edges := [3]mgl64.Vec3{
		corners[1].Sub(corners[0]),
		corners[3].Sub(corners[0]),
		corners[4].Sub(corners[0]),
	}

	var units [3]mgl64.Vec3
	var valid [3]bool
	count := 0
	for i, edge := range edges {
		units[i], valid[i] = Normalize(edge)
		if valid[i] {
			count++
		}
	}

	if count == 2 {
		for i := range units {
			if valid[i] {
				continue
			}
			u, v := units[(i+1)%3], units[(i+2)%3]
			units[i], valid[i] = Normalize(u.Cross(v))
		}
	}

	axes := make([]mgl64.Vec3, 0, 3)
	for i, unit := range units {
		if valid[i] {
			axes = append(axes, unit)
		}
	}

	return axes
}

// Project returns the shadow of the corners on the axis
func Project(corners [8]mgl64.Vec3, axis mgl64.Vec3) Line {
	line := NewLine(corners[0].Dot(axis))
	for _, corner := range corners[1:] {
		line.Consume(corner.Dot(axis))
	}

	return line
}

// Center returns the mean of the corners
func Center(corners [8]mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, corner := range corners {
		sum = sum.Add(corner)
	}

	return sum.Mul(1.0 / 8.0)
}

// Intersects tests two boxes against the face normals of A, then those of B.
// It stops at the first separating axis. When no axis separates the boxes, the axis
// with the smallest overlap is reported as the contact normal.
func Intersects(a, b Box) Result {
	cornersA := a.Corners()
	cornersB := b.Corners()

	axes := append(Axes(cornersA), Axes(cornersB)...)
	if len(axes) == 0 {
		return Result{}
	}

	bestDepth := math.Inf(1)
	var bestAxis mgl64.Vec3

	for _, axis := range axes {
		lineA := Project(cornersA, axis)
		lineB := Project(cornersB, axis)

		if !lineA.Overlaps(lineB) {
			return Result{}
		}

		if depth := lineA.Overlap(lineB); depth < bestDepth {
			bestDepth = depth
			bestAxis = axis
		}
	}

	// Orient the normal from B toward A
	if Center(cornersA).Sub(Center(cornersB)).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Mul(-1)
	}

	return Result{
		Hit:         true,
		Normal:      bestAxis,
		Penetration: bestDepth,
	}
}
