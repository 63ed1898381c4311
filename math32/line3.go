// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Line3 represents a 3D line segment defined by a start and an end point.
type Line3 struct {
	Start Vector3
	End   Vector3
}

// NewLine3 creates and returns a new [Line3] with the
// specified start and end points.
func NewLine3(start, end Vector3) Line3 {
	return Line3{start, end}
}

// Center calculates this line segment center point.
func (l *Line3) Center() Vector3 {
	return l.Start.Add(l.End).MulScalar(0.5)
}

// Delta calculates the vector from the start to end point of this line segment.
func (l *Line3) Delta() Vector3 {
	return l.End.Sub(l.Start)
}

// Length returns the length from start to end point of this line segment.
func (l *Line3) Length() float32 {
	return l.Start.DistanceTo(l.End)
}

// At returns the point at parameter t, with 0 the start and 1 the end.
func (l *Line3) At(t float32) Vector3 {
	return l.Start.Lerp(l.End, t)
}

// ClosestPointToPoint returns the point on the segment closest to the
// given point along with its parameter in [0, 1]. A zero length
// segment returns its start point with parameter 0.
func (l *Line3) ClosestPointToPoint(point Vector3) (Vector3, float32) {
	dir := l.Delta()
	lsq := dir.LengthSquared()
	if lsq == 0 {
		return l.Start, 0
	}
	t := Clamp(point.Sub(l.Start).Dot(dir)/lsq, 0, 1)
	return l.At(t), t
}
