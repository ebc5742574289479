package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type fakeViewport struct{ w, h int }

func (v fakeViewport) Width() int  { return v.w }
func (v fakeViewport) Height() int { return v.h }

// newTestController builds a controller around a camera at pos looking at the origin.
func newTestController(t *testing.T, pos mgl32.Vec3, options ...OrbitControllerOption) (OrbitController, Camera) {
	t.Helper()
	cam := NewCamera(WithPosition(pos), WithLookAt(mgl32.Vec3{}))
	oc, err := NewOrbitController(fakeViewport{800, 600}, nil, cam, options...)
	if err != nil {
		t.Fatalf("NewOrbitController: %v", err)
	}
	return oc, cam
}

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return near(a[0], b[0], eps) && near(a[1], b[1], eps) && near(a[2], b[2], eps)
}

func TestNewOrbitController_RequiresHandles(t *testing.T) {
	cam := NewCamera()
	if _, err := NewOrbitController(fakeViewport{}, nil, nil); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("nil camera: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewOrbitController(nil, nil, cam); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("nil viewport: err = %v, want ErrInvalidArgument", err)
	}
}

func TestNewOrbitController_SeedsFromCameraPosition(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})
	st := oc.State()
	if st.CurrentSpherical != st.TargetSpherical {
		t.Fatalf("current %+v != target %+v", st.CurrentSpherical, st.TargetSpherical)
	}
	if !near(st.TargetSpherical.Radius, 10, 1e-5) ||
		!near(st.TargetSpherical.Polar, math.Pi/2, 1e-5) ||
		!near(st.TargetSpherical.Azimuth, 0, 1e-5) {
		t.Errorf("seeded spherical = %+v, want r=10 polar=π/2 azimuth=0", st.TargetSpherical)
	}
	if st.DirectionLerpSpeed != 10 || st.PositionLerpSpeed != 10 || st.DistanceMin != 0 || st.DistanceMax != 0 {
		t.Errorf("defaults = %s", common.SDump(st))
	}
}

func TestUpdate_SnapRotation(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDirectionLerpSpeed(0))

	oc.RotateHorizontally(0.3)
	oc.RotateHorizontally(0.2)
	oc.RotateVertically(-0.4)
	oc.Update(&InputSnapshot{DeltaTime: 0.016})

	st := oc.State()
	if st.CurrentSpherical.Azimuth != st.TargetSpherical.Azimuth || st.CurrentSpherical.Polar != st.TargetSpherical.Polar {
		t.Fatalf("snap failed: %s", common.SDump(st))
	}
	if !near(st.CurrentSpherical.Azimuth, 0.5, 1e-6) {
		t.Errorf("azimuth = %v, want 0.5", st.CurrentSpherical.Azimuth)
	}
	if !near(st.CurrentSpherical.Polar, math.Pi/2-0.4, 1e-6) {
		t.Errorf("polar = %v, want %v", st.CurrentSpherical.Polar, math.Pi/2-0.4)
	}
}

func TestZoom_Clamped(t *testing.T) {
	cases := []struct {
		name     string
		min, max float32
		amounts  []float32
		want     float32
	}{
		{"min bound", 2, 20, []float32{-100, -100, -100}, 2},
		{"max bound", 2, 20, []float32{100, 1e6}, 20},
		{"unbounded max", 0, 0, []float32{1e6}, 10 + 1e6},
		{"never below zero", 0, 0, []float32{-100}, 0},
		{"within bounds", 2, 20, []float32{-3}, 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDistanceBounds(c.min, c.max))
			for _, a := range c.amounts {
				oc.Zoom(a)
				r := oc.State().TargetSpherical.Radius
				if r < c.min || (c.max > 0 && r > c.max) {
					t.Fatalf("radius %v escaped [%v, %v]", r, c.min, c.max)
				}
			}
			if got := oc.State().TargetSpherical.Radius; !near(got, c.want, 1e-3) {
				t.Errorf("radius = %v, want %v", got, c.want)
			}
		})
	}
}

func TestZoom_RepeatedZoomInStopsAtMinimum(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDistanceBounds(2, 20))
	for i := 0; i < 50; i++ {
		oc.Zoom(-100)
	}
	if got := oc.State().TargetSpherical.Radius; got != 2 {
		t.Errorf("radius = %v, want exactly 2", got)
	}
}

func TestUpdate_ZoomWithSnap(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10}, WithPositionLerpSpeed(0))

	oc.Zoom(-5)
	oc.Update(&InputSnapshot{DeltaTime: 1})

	pos := cam.Position()
	if !near(pos.Len(), 5, 1e-4) {
		t.Errorf("camera distance = %v, want 5 (position %v)", pos.Len(), pos)
	}
	if !vecNear(pos, mgl32.Vec3{0, 0, 5}, 1e-4) {
		t.Errorf("camera position = %v, want (0, 0, 5)", pos)
	}
	if oc.Target() != (mgl32.Vec3{}) || oc.LookAt() != (mgl32.Vec3{}) {
		t.Errorf("offset %v / look-at %v moved, want origin", oc.Target(), oc.LookAt())
	}
	if !vecNear(cam.WorldDirection(), mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("camera direction = %v, want (0, 0, -1)", cam.WorldDirection())
	}
}

func TestUpdate_ConvergesWithoutOvershoot(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})

	oc.RotateHorizontally(1)
	oc.RotateVertically(-0.5)
	oc.Zoom(5)
	oc.MoveTargetBy(mgl32.Vec3{3, 0, -2})
	oc.SetLookAt(mgl32.Vec3{1, 1, 1})

	remaining := func(st OrbitState) []float32 {
		return []float32{
			st.TargetSpherical.Azimuth - st.CurrentSpherical.Azimuth,
			st.TargetSpherical.Polar - st.CurrentSpherical.Polar,
			st.TargetSpherical.Radius - st.CurrentSpherical.Radius,
			st.TargetOffset.Sub(st.CurrentOffset).Len(),
			st.TargetLookAt.Sub(st.CurrentLookAt).Len(),
		}
	}

	prev := remaining(oc.State())
	for i := 0; i < 300; i++ {
		oc.Update(&InputSnapshot{DeltaTime: 0.05})
		cur := remaining(oc.State())
		for ch := range cur {
			if math.Abs(float64(cur[ch])) > math.Abs(float64(prev[ch]))+1e-6 {
				t.Fatalf("step %d channel %d moved away from target: %v -> %v", i, ch, prev[ch], cur[ch])
			}
			if prev[ch]*cur[ch] < 0 {
				t.Fatalf("step %d channel %d overshot: %v -> %v", i, ch, prev[ch], cur[ch])
			}
		}
		prev = cur
	}
	for ch, r := range prev {
		if math.Abs(float64(r)) > 1e-4 {
			t.Errorf("channel %d did not converge, remaining %v", ch, r)
		}
	}
}

func TestUpdate_StepSizeIndependent(t *testing.T) {
	setup := func() OrbitController {
		oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDirectionLerpSpeed(1), WithPositionLerpSpeed(1))
		oc.RotateHorizontally(2)
		oc.RotateVertically(0.5)
		oc.Zoom(10)
		oc.MoveTargetBy(mgl32.Vec3{4, 2, 0})
		return oc
	}

	one := setup()
	one.Update(&InputSnapshot{DeltaTime: 1})

	ten := setup()
	for i := 0; i < 10; i++ {
		ten.Update(&InputSnapshot{DeltaTime: 0.1})
	}

	a, b := one.State(), ten.State()
	const tol = 1e-4
	if !near(a.CurrentSpherical.Azimuth, b.CurrentSpherical.Azimuth, tol) ||
		!near(a.CurrentSpherical.Polar, b.CurrentSpherical.Polar, tol) ||
		!near(a.CurrentSpherical.Radius, b.CurrentSpherical.Radius, tol) ||
		!vecNear(a.CurrentOffset, b.CurrentOffset, tol) {
		t.Errorf("1x1.0 and 10x0.1 differ:\n%s\n%s", common.SDump(a), common.SDump(b))
	}
	// Sanity: the step actually moved partway (e^-1 of the distance remains).
	if !near(a.CurrentSpherical.Azimuth, 2*(1-float32(math.Exp(-1))), 1e-4) {
		t.Errorf("azimuth = %v, want %v", a.CurrentSpherical.Azimuth, 2*(1-math.Exp(-1)))
	}
}

func TestUpdate_PoleSafety(t *testing.T) {
	cases := []struct {
		name  string
		delta float32
	}{
		{"north pole", -math.Pi / 2},
		{"south pole", math.Pi / 2},
		{"far past north", -10},
		{"far past south", 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDirectionLerpSpeed(0))
			oc.RotateVertically(c.delta)
			oc.Update(&InputSnapshot{DeltaTime: 0.016})

			st := oc.State()
			for _, polar := range []float32{st.CurrentSpherical.Polar, st.TargetSpherical.Polar} {
				if !(float64(polar) > 0 && float64(polar) < math.Pi) {
					t.Errorf("polar %v not strictly inside (0, π)", polar)
				}
			}
			if !common.IsFiniteVec3(cam.Position()) {
				t.Fatalf("camera position = %v", cam.Position())
			}
			if !common.IsFiniteVec3(cam.WorldDirection()) {
				t.Fatalf("camera direction = %v", cam.WorldDirection())
			}
			for _, f := range cam.ViewMatrix() {
				if !common.IsFinite(f) {
					t.Fatalf("view matrix not finite: %v", cam.ViewMatrix())
				}
			}
		})
	}
}

func TestMoveOffsetHorizontally_Snap(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10}, WithPositionLerpSpeed(0))
	forward := cam.WorldDirection()

	oc.MoveOffsetHorizontally(10)
	oc.Update(&InputSnapshot{DeltaTime: 1})

	moved := oc.Target()
	if !near(moved.Len(), 10, 1e-4) {
		t.Errorf("offset length = %v, want 10", moved.Len())
	}
	if moved.Y() != 0 {
		t.Errorf("offset %v is not horizontal", moved)
	}
	if d := moved.Dot(forward); !near(d, 0, 1e-4) {
		t.Errorf("offset %v not perpendicular to forward %v (dot %v)", moved, forward, d)
	}
	if !vecNear(moved, mgl32.Vec3{-10, 0, 0}, 1e-4) {
		t.Errorf("offset = %v, want (-10, 0, 0)", moved)
	}
}

func TestMoveOffsetHorizontally_IgnoresPitch(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 10, 10}, WithPositionLerpSpeed(0))
	oc.MoveOffsetHorizontally(3)
	got := oc.State().TargetOffset
	if !near(got.Len(), 3, 1e-4) || got.Y() != 0 {
		t.Errorf("offset = %v, want horizontal length 3", got)
	}
}

func TestMoveOffsetHorizontally_DegenerateIsNoop(t *testing.T) {
	// Looking straight down leaves no horizontal facing direction.
	oc, _ := newTestController(t, mgl32.Vec3{0, 10, 0})
	oc.MoveOffsetHorizontally(5)
	oc.Update(&InputSnapshot{DeltaTime: 0.1})

	st := oc.State()
	if st.TargetOffset != (mgl32.Vec3{}) {
		t.Errorf("target offset = %v, want unchanged", st.TargetOffset)
	}
	if !common.IsFiniteVec3(st.CurrentOffset) {
		t.Errorf("current offset = %v", st.CurrentOffset)
	}
}

func TestMoveOffsetVertically(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10})
	forward := cam.WorldDirection()

	oc.MoveOffsetVertically(4)
	got := oc.State().TargetOffset

	if !near(got.Len(), 4, 1e-4) {
		t.Errorf("offset length = %v, want 4", got.Len())
	}
	if !near(got.Dot(forward), 0, 1e-4) {
		t.Errorf("offset %v not perpendicular to forward %v", got, forward)
	}
	if !near(float32(math.Abs(float64(got.Y()))), 4, 1e-4) {
		t.Errorf("offset = %v, want purely vertical for a level camera", got)
	}
}

func TestMoveTargetForwardAndBackwards(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})

	oc.MoveTargetForward(3)
	if got := oc.State().TargetOffset; !vecNear(got, mgl32.Vec3{0, 0, -3}, 1e-5) {
		t.Errorf("after forward: %v, want (0, 0, -3)", got)
	}
	oc.MoveTargetBackwards(3)
	if got := oc.State().TargetOffset; !vecNear(got, mgl32.Vec3{}, 1e-5) {
		t.Errorf("after backwards: %v, want origin", got)
	}
}

func TestSetTarget_BypassesSmoothing(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})
	oc.SetTarget(mgl32.Vec3{1, 2, 3})

	st := oc.State()
	if st.CurrentOffset != (mgl32.Vec3{1, 2, 3}) || st.TargetOffset != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("SetTarget did not snap: %s", common.SDump(st))
	}
	if oc.Target() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Target() = %v", oc.Target())
	}

	// Other mutators only move the target.
	oc.MoveTargetBy(mgl32.Vec3{1, 0, 0})
	if oc.Target() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("MoveTargetBy changed current offset to %v", oc.Target())
	}
}

func TestUpdate_AppliesSnapshotScaledByDeltaTime(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})

	oc.Update(&InputSnapshot{
		DeltaTime:          0.5,
		RotateHorizontally: 2,
		RotateVertically:   -0.2,
		Zoom:               4,
		MoveTarget:         mgl32.Vec3{2, 0, 0},
	})

	st := oc.State()
	if !near(st.TargetSpherical.Azimuth, 1, 1e-6) {
		t.Errorf("target azimuth = %v, want 1", st.TargetSpherical.Azimuth)
	}
	if !near(st.TargetSpherical.Polar, math.Pi/2-0.1, 1e-6) {
		t.Errorf("target polar = %v, want %v", st.TargetSpherical.Polar, math.Pi/2-0.1)
	}
	if !near(st.TargetSpherical.Radius, 12, 1e-5) {
		t.Errorf("target radius = %v, want 12", st.TargetSpherical.Radius)
	}
	if !vecNear(st.TargetOffset, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("target offset = %v, want (1, 0, 0)", st.TargetOffset)
	}
}

func TestUpdate_SanitizesSnapshot(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10})
	nan := float32(math.NaN())

	oc.Update(&InputSnapshot{
		DeltaTime:              1,
		RotateHorizontally:     nan,
		Zoom:                   float32(math.Inf(1)),
		MoveTarget:             mgl32.Vec3{nan, 0, 0},
		MoveOffsetHorizontally: nan,
	})
	oc.Update(&InputSnapshot{DeltaTime: nan, RotateHorizontally: 1})

	st := oc.State()
	if st.TargetSpherical.Azimuth != 0 || !near(st.TargetSpherical.Radius, 10, 1e-5) || st.TargetOffset != (mgl32.Vec3{}) {
		t.Errorf("non-finite input leaked into state: %s", common.SDump(st))
	}
	if !common.IsFiniteVec3(cam.Position()) {
		t.Errorf("camera position = %v", cam.Position())
	}
}

func TestUpdate_NilInputSkipsSmoothing(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10})
	oc.RotateHorizontally(1)
	oc.Zoom(5)
	before := oc.State()

	oc.Update(nil)
	oc.Update(nil)

	after := oc.State()
	if after.CurrentSpherical != before.CurrentSpherical || after.CurrentOffset != before.CurrentOffset {
		t.Errorf("Update(nil) advanced smoothing:\n%s\n%s", common.SDump(before), common.SDump(after))
	}
	if !vecNear(cam.Position(), mgl32.Vec3{0, 0, 10}, 1e-4) {
		t.Errorf("camera position = %v, want (0, 0, 10)", cam.Position())
	}
}

func TestSetPosition_GlidesToNewSpherical(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10}, WithDirectionLerpSpeed(0), WithPositionLerpSpeed(0))
	oc.SetPosition(mgl32.Vec3{20, 0, 0})

	if oc.State().CurrentSpherical.Radius != 10 {
		t.Fatalf("SetPosition changed current state before Update")
	}
	oc.Update(&InputSnapshot{DeltaTime: 0.1})
	if !vecNear(cam.Position(), mgl32.Vec3{20, 0, 0}, 1e-3) {
		t.Errorf("camera position = %v, want (20, 0, 0)", cam.Position())
	}
	if !vecNear(oc.Position(), cam.Position(), 0) {
		t.Errorf("Position() = %v, camera = %v", oc.Position(), cam.Position())
	}
}

func TestSetDistanceBounds_Reclamp(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})

	oc.SetDistanceMin(15)
	if got := oc.State().TargetSpherical.Radius; got != 15 {
		t.Errorf("radius after SetDistanceMin(15) = %v, want 15", got)
	}
	oc.SetDistanceMin(0)
	oc.SetDistanceMax(12)
	if got := oc.State().TargetSpherical.Radius; got != 12 {
		t.Errorf("radius after SetDistanceMax(12) = %v, want 12", got)
	}
	oc.SetDistanceMin(-3)
	if got := oc.DistanceMin(); got != 0 {
		t.Errorf("DistanceMin() = %v, want 0", got)
	}
}

func TestLerpSpeedSetters(t *testing.T) {
	oc, _ := newTestController(t, mgl32.Vec3{0, 0, 10})
	oc.SetDirectionLerpSpeed(-1)
	oc.SetPositionLerpSpeed(float32(math.NaN()))
	if oc.DirectionLerpSpeed() != 0 || oc.PositionLerpSpeed() != 0 {
		t.Errorf("speeds = %v, %v, want 0, 0", oc.DirectionLerpSpeed(), oc.PositionLerpSpeed())
	}
	oc.SetDirectionLerpSpeed(4)
	if oc.DirectionLerpSpeed() != 4 {
		t.Errorf("DirectionLerpSpeed() = %v, want 4", oc.DirectionLerpSpeed())
	}
}

func TestDispose(t *testing.T) {
	oc, cam := newTestController(t, mgl32.Vec3{0, 0, 10}, WithPositionLerpSpeed(0))
	oc.Dispose()
	oc.Zoom(-5)
	oc.Update(&InputSnapshot{DeltaTime: 1})
	if !vecNear(cam.Position(), mgl32.Vec3{0, 0, 10}, 0) {
		t.Errorf("disposed controller moved the camera to %v", cam.Position())
	}
}

func TestHandlesRetained(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, 10}))
	scene := struct{ name string }{"demo"}
	vp := fakeViewport{640, 480}
	oc, err := NewOrbitController(vp, scene, cam)
	if err != nil {
		t.Fatal(err)
	}
	if oc.Camera() != cam || oc.Viewport() != vp || oc.Scene() != scene {
		t.Errorf("handles not retained")
	}
}
