package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	if c.Position() != (mgl32.Vec3{}) {
		t.Errorf("Position() = %v, want origin", c.Position())
	}
	if c.WorldDirection() != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("WorldDirection() = %v, want (0, 0, -1)", c.WorldDirection())
	}
	if c.Up() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Up() = %v, want (0, 1, 0)", c.Up())
	}
	if !near(c.Fov(), math.Pi/4, 1e-6) || c.Aspect() != 1 || c.Near() != 0.1 || c.Far() != 100 {
		t.Errorf("projection defaults = fov %v aspect %v near %v far %v", c.Fov(), c.Aspect(), c.Near(), c.Far())
	}
}

func TestWithLookAt_ResolvedAgainstFinalPosition(t *testing.T) {
	// WithLookAt comes before WithPosition on purpose.
	c := NewCamera(WithLookAt(mgl32.Vec3{0, 0, 0}), WithPosition(mgl32.Vec3{5, 0, 0}))
	if !vecNear(c.WorldDirection(), mgl32.Vec3{-1, 0, 0}, 1e-6) {
		t.Errorf("WorldDirection() = %v, want (-1, 0, 0)", c.WorldDirection())
	}
}

func TestLookAt_SamePointKeepsOrientation(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}), WithLookAt(mgl32.Vec3{1, 2, 0}))
	before := c.WorldDirection()
	c.LookAt(mgl32.Vec3{1, 2, 3})
	if c.WorldDirection() != before {
		t.Errorf("WorldDirection() = %v, want %v", c.WorldDirection(), before)
	}
}

func TestSetPosition_IgnoresNonFinite(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 1, 1}))
	c.SetPosition(mgl32.Vec3{float32(math.NaN()), 0, 0})
	c.SetPosition(mgl32.Vec3{0, float32(math.Inf(-1)), 0})
	if c.Position() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Position() = %v, want (1, 1, 1)", c.Position())
	}
}

func TestViewMatrix_MapsLookAtPointOntoNegativeZ(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{3, 4, 12}), WithLookAt(mgl32.Vec3{}))
	got := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !vecNear(got, mgl32.Vec3{0, 0, -13}, 1e-4) {
		t.Errorf("origin in view space = %v, want (0, 0, -13)", got)
	}
}

func TestProjectionMatrices(t *testing.T) {
	c := NewCamera(WithAspect(16.0/9.0), WithNear(0.5), WithFar(50))
	id := c.ProjectionMatrix().Mul4(c.InverseProjectionMatrix())
	if !id.ApproxEqualThreshold(mgl32.Ident4(), 1e-5) {
		t.Errorf("projection * inverse = %v, want identity", id)
	}
	want := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	if !c.ViewProjectionMatrix().ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("ViewProjectionMatrix() = %v, want %v", c.ViewProjectionMatrix(), want)
	}
}

func TestSetAspect_InvalidKeepsProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(0)
	if c.ProjectionMatrix() != before {
		t.Errorf("projection changed for aspect 0")
	}
	c.SetAspect(2)
	if c.ProjectionMatrix() == before {
		t.Errorf("projection unchanged for aspect 2")
	}
}

func TestViewMatrix_ParallelUpKeepsPrevious(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 5, 0}))
	before := c.ViewMatrix()

	// Facing straight down makes forward parallel to up.
	c.LookAt(mgl32.Vec3{})
	if !vecNear(c.WorldDirection(), mgl32.Vec3{0, -1, 0}, 1e-6) {
		t.Fatalf("WorldDirection() = %v, want (0, -1, 0)", c.WorldDirection())
	}
	if c.ViewMatrix() != before {
		t.Errorf("view matrix = %v, want previous %v", c.ViewMatrix(), before)
	}
}

func TestFrustum(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 0, 10}), WithLookAt(mgl32.Vec3{}), WithNear(0.1), WithFar(100))
	f := c.Frustum()

	cases := []struct {
		name string
		p    mgl32.Vec3
		want bool
	}{
		{"look-at point", mgl32.Vec3{0, 0, 0}, true},
		{"behind camera", mgl32.Vec3{0, 0, 20}, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -200}, false},
		{"far to the side", mgl32.Vec3{100, 0, 0}, false},
	}
	for _, tc := range cases {
		if got := f.ContainsPoint(tc.p); got != tc.want {
			t.Errorf("%s: ContainsPoint(%v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
	if !f.ContainsSphere(mgl32.Vec3{0, 0, 11}, 2) {
		t.Errorf("sphere straddling the near plane reported outside")
	}
}
