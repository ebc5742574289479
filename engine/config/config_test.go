package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Camera.Position != (mgl32.Vec3{100, 100, 100}) {
		t.Errorf("default camera position = %v", cfg.Camera.Position)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: test viewer
camera:
  position: [0, 0, 10]
orbit:
  direction_lerp_speed: 0
  distance_min: 2
  distance_max: 20
controls:
  rotate_button: mouse_middle
  zoom_in_key: ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "test viewer" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("width = %d, want default 1280", cfg.Window.Width)
	}
	if cfg.Camera.Position != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("position = %v, want (0, 0, 10)", cfg.Camera.Position)
	}
	if cfg.Orbit.DirectionLerpSpeed != 0 || cfg.Orbit.PositionLerpSpeed != 10 {
		t.Errorf("speeds = %v, %v", cfg.Orbit.DirectionLerpSpeed, cfg.Orbit.PositionLerpSpeed)
	}

	m, err := cfg.Controls.Mapping()
	if err != nil {
		t.Fatalf("Mapping: %v", err)
	}
	if m.RotateButton != common.MouseMiddle || m.MoveButton != common.MouseLeft {
		t.Errorf("buttons = %d, %d", m.RotateButton, m.MoveButton)
	}
	if m.ZoomInKey != "" || m.ZoomOutKey != "page_down" {
		t.Errorf("zoom keys = %q, %q", m.ZoomInKey, m.ZoomOutKey)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file config = %s", common.SDump(cfg))
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file: expected error")
	}
	if _, err := Load(writeConfig(t, "window: [")); err == nil {
		t.Errorf("malformed yaml: expected error")
	}
	_, err := Load(writeConfig(t, "camera:\n  zoom: 3\n"))
	if err == nil || !strings.Contains(err.Error(), "zoom") {
		t.Errorf("unknown field: err = %v", err)
	}
	if _, err := Load(writeConfig(t, "camera:\n  position: [1, 2]\n")); err == nil {
		t.Errorf("short position: expected error")
	}
}

func TestValidate_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"negative frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }},
		{"zero fov", func(c *Config) { c.Camera.FovDeg = 0 }},
		{"fov too large", func(c *Config) { c.Camera.FovDeg = 180 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"nan position", func(c *Config) { c.Camera.Position[1] = float32(math.NaN()) }},
		{"negative direction speed", func(c *Config) { c.Orbit.DirectionLerpSpeed = -1 }},
		{"nan position speed", func(c *Config) { c.Orbit.PositionLerpSpeed = float32(math.NaN()) }},
		{"negative min distance", func(c *Config) { c.Orbit.DistanceMin = -1 }},
		{"max below min", func(c *Config) { c.Orbit.DistanceMin, c.Orbit.DistanceMax = 5, 2 }},
		{"unknown rotate button", func(c *Config) { c.Controls.RotateButton = "mouse_back" }},
		{"key as move button", func(c *Config) { c.Controls.MoveButton = "a" }},
		{"unknown zoom key", func(c *Config) { c.Controls.ZoomOutKey = "pgdn" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, common.ErrInvalidArgument) {
				t.Errorf("Validate() = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestValidate_UnboundedMaxDistance(t *testing.T) {
	cfg := Default()
	cfg.Orbit.DistanceMin = 50
	cfg.Orbit.DistanceMax = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

type fakeViewport struct{}

func (fakeViewport) Width() int  { return 1280 }
func (fakeViewport) Height() int { return 720 }

func TestOptions_BuildController(t *testing.T) {
	cfg := Default()
	cfg.Orbit.DistanceMin = 10
	cfg.Orbit.DistanceMax = 100

	cam := camera.NewCamera(cfg.Camera.CameraOptions()...)
	if cam.Position() != cfg.Camera.Position {
		t.Errorf("camera position = %v", cam.Position())
	}
	if d := cam.Fov() - float32(math.Pi/4); d > 1e-6 || d < -1e-6 {
		t.Errorf("camera fov = %v, want π/4", cam.Fov())
	}

	oc, err := camera.NewOrbitController(fakeViewport{}, nil, cam, cfg.Orbit.ControllerOptions(cfg.Camera.LookAt)...)
	if err != nil {
		t.Fatalf("NewOrbitController: %v", err)
	}
	st := oc.State()
	// |(100, 100, 100)| is above the configured maximum.
	if st.TargetSpherical.Radius != 100 {
		t.Errorf("target radius = %v, want clamped to 100", st.TargetSpherical.Radius)
	}
	if st.DistanceMin != 10 || st.DirectionLerpSpeed != 10 {
		t.Errorf("controller state = %s", common.SDump(st))
	}

	if got := len(cfg.Input.InputOptions()); got != 1 {
		t.Errorf("InputOptions() returned %d options", got)
	}
}
