// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"slices"
	"testing"

	"cogentcore.org/jot/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestVector2(t *testing.T) {
	assert.Equal(t, Vector2{5, 10}, Vec2(5, 10))
	a := Vec2(1, 2)
	b := Vec2(3, 6)
	assert.Equal(t, Vec2(4, 8), a.Add(b))
	assert.Equal(t, Vec2(-2, -4), a.Sub(b))
	assert.Equal(t, Vec2(2, 4), a.MulScalar(2))
	assert.Equal(t, Vec2(2, 4), a.Lerp(b, 0.5))
	assert.True(t, a.IsEqualTol(Vec2(1.0005, 2), 1e-3))
	assert.False(t, a.IsEqualTol(b, 1e-3))
	assert.Equal(t, "(1, 2)", a.String())
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)
	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, Vec3(2, 4, 6), a.MulScalar(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, Vector3{}, a.DivScalar(0))
	assert.Equal(t, Vec3(2.5, 3.5, 4.5), a.Lerp(b, 0.5))

	tolassert.Equal(t, 1, Vec3(3, 4, 12).Normal().Length())
	tolassert.Equal(t, 13, Vec3(3, 4, 12).Length())
	tolassert.Equal(t, Pi/2, Vec3(1, 0, 0).AngleTo(Vec3(0, 0, 2)))

	p := Vec3(1, 2, 3).ProjectOnPlane(Vec3(0, 0, 1))
	assert.Equal(t, Vec3(1, 2, 0), p)

	n := Vec3(0, 0, 5)
	perp := n.Perpendicular()
	tolassert.Equal(t, 0, perp.Dot(n))
	tolassert.Equal(t, 1, perp.Length())
}

func TestVector3Compare(t *testing.T) {
	pts := []Vector3{Vec3(1, 0, 0), Vec3(0, 1, 1), Vec3(0, 1, 0), Vec3(0, 0, 5)}
	slices.SortFunc(pts, Vector3.Compare)
	assert.Equal(t, []Vector3{Vec3(0, 0, 5), Vec3(0, 1, 0), Vec3(0, 1, 1), Vec3(1, 0, 0)}, pts)
	assert.Equal(t, 0, Vec3(1, 2, 3).Compare(Vec3(1, 2, 3)))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, float32(0), b.Diagonal())
	b.ExpandByPoint(Vec3(-1, -1, -1))
	b.ExpandByPoint(Vec3(1, 1, 1))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vector3{}, b.Center())
	assert.True(t, b.ContainsPoint(Vec3(0.5, 0, -0.5)))
	tolassert.Equal(t, 2*Sqrt(3), b.Diagonal())
}

func TestLine3(t *testing.T) {
	l := NewLine3(Vec3(0, 0, 0), Vec3(2, 0, 0))
	pt, s := l.ClosestPointToPoint(Vec3(0.5, 3, 0))
	assert.Equal(t, Vec3(0.5, 0, 0), pt)
	tolassert.Equal(t, 0.25, s)

	pt, s = l.ClosestPointToPoint(Vec3(-4, 1, 0))
	assert.Equal(t, l.Start, pt)
	assert.Equal(t, float32(0), s)

	pt, s = l.ClosestPointToPoint(Vec3(9, 1, 0))
	assert.Equal(t, l.End, pt)
	assert.Equal(t, float32(1), s)

	z := NewLine3(Vec3(1, 1, 1), Vec3(1, 1, 1))
	_, s = z.ClosestPointToPoint(Vec3(0, 0, 0))
	assert.Equal(t, float32(0), s)
}

func TestVector4(t *testing.T) {
	c := Vec4(1, 0, 0, 1)
	d := Vec4(0, 0, 1, 1)
	assert.Equal(t, Vec4(0.5, 0, 0.5, 1), c.Lerp(d, 0.5))
	assert.Equal(t, Vec4(1, 0, 1, 2), c.Add(d))
	assert.Equal(t, Vec3(1, 0, 0), c.Vector3())
}
