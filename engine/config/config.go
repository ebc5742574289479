package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WindowConfig describes the viewer window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // initial width in screen coordinates
	Height int    `yaml:"height"` // initial height in screen coordinates
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	Profiling  bool    `yaml:"profiling"`
	FrameLimit float64 `yaml:"frame_limit"` // frames per second, 0 = uncapped
}

// CameraConfig holds the initial camera placement and projection.
type CameraConfig struct {
	FovDeg   float32    `yaml:"fov_deg"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position mgl32.Vec3 `yaml:"position"`
	LookAt   mgl32.Vec3 `yaml:"look_at"`
}

// OrbitConfig holds the orbit controller's smoothing rates and distance bounds.
type OrbitConfig struct {
	DirectionLerpSpeed float32 `yaml:"direction_lerp_speed"` // 0 = snap
	PositionLerpSpeed  float32 `yaml:"position_lerp_speed"`  // 0 = snap
	DistanceMin        float32 `yaml:"distance_min"`
	DistanceMax        float32 `yaml:"distance_max"` // 0 = unbounded
}

// ControlsConfig maps mouse buttons and keys to orbit actions.
// Buttons and keys use the input manager's code names (mouse_right, page_up, ...).
type ControlsConfig struct {
	RotateButton string  `yaml:"rotate_button"`
	MoveButton   string  `yaml:"move_button"`
	ZoomInKey    string  `yaml:"zoom_in_key"`  // empty disables
	ZoomOutKey   string  `yaml:"zoom_out_key"` // empty disables
	KeyZoomStep  float32 `yaml:"key_zoom_step"`
	ZoomScale    float32 `yaml:"zoom_scale"`
	RotateScale  float32 `yaml:"rotate_scale"`
	MoveScale    float32 `yaml:"move_scale"`
}

// InputConfig holds input manager settings.
type InputConfig struct {
	ResetOnFocusLoss bool `yaml:"reset_on_focus_loss"`
}

// Config aggregates all viewer configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Engine   EngineConfig   `yaml:"engine"`
	Camera   CameraConfig   `yaml:"camera"`
	Orbit    OrbitConfig    `yaml:"orbit"`
	Controls ControlsConfig `yaml:"controls"`
	Input    InputConfig    `yaml:"input"`
}

// Default returns the built-in configuration: a camera at (100, 100, 100) looking at the origin
// with the standard orbit controls.
//
// Returns:
//   - *Config: the default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-orbit",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			Profiling:  false,
			FrameLimit: 144,
		},
		Camera: CameraConfig{
			FovDeg:   45,
			Near:     1,
			Far:      1000,
			Position: mgl32.Vec3{100, 100, 100},
			LookAt:   mgl32.Vec3{0, 0, 0},
		},
		Orbit: OrbitConfig{
			DirectionLerpSpeed: 10,
			PositionLerpSpeed:  10,
		},
		Controls: ControlsConfig{
			RotateButton: "mouse_right",
			MoveButton:   "mouse_left",
			ZoomInKey:    "page_up",
			ZoomOutKey:   "page_down",
			KeyZoomStep:  10,
			ZoomScale:    10,
			RotateScale:  1,
			MoveScale:    10,
		},
		Input: InputConfig{
			ResetOnFocusLoss: true,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values; unknown keys are rejected.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Empty input yields the defaults.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: the parsed configuration
//   - error: error if the document cannot be parsed or validated
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "unmarshal yaml")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting for a usable value.
//
// Returns:
//   - error: an error wrapping common.ErrInvalidArgument describing the first invalid setting
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.Wrapf(common.ErrInvalidArgument, format, args...)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Engine.FrameLimit < 0 || math.IsNaN(c.Engine.FrameLimit) {
		return invalid("engine.frame_limit must be >= 0, got %v", c.Engine.FrameLimit)
	}

	if !(c.Camera.FovDeg > 0 && c.Camera.FovDeg < 180) {
		return invalid("camera.fov_deg must be between 0 and 180, got %v", c.Camera.FovDeg)
	}
	if !(c.Camera.Near > 0) {
		return invalid("camera.near must be > 0, got %v", c.Camera.Near)
	}
	if !(c.Camera.Far > c.Camera.Near) {
		return invalid("camera.far must be > camera.near, got %v", c.Camera.Far)
	}
	if !common.IsFiniteVec3(c.Camera.Position) || !common.IsFiniteVec3(c.Camera.LookAt) {
		return invalid("camera.position and camera.look_at must be finite")
	}

	speeds := map[string]float32{
		"orbit.direction_lerp_speed": c.Orbit.DirectionLerpSpeed,
		"orbit.position_lerp_speed":  c.Orbit.PositionLerpSpeed,
	}
	for name, v := range speeds {
		if !(v >= 0) || !common.IsFinite(v) {
			return invalid("%s must be >= 0, got %v", name, v)
		}
	}
	if !(c.Orbit.DistanceMin >= 0) || !common.IsFinite(c.Orbit.DistanceMin) {
		return invalid("orbit.distance_min must be >= 0, got %v", c.Orbit.DistanceMin)
	}
	if !common.IsFinite(c.Orbit.DistanceMax) || (c.Orbit.DistanceMax != 0 && c.Orbit.DistanceMax < c.Orbit.DistanceMin) {
		return invalid("orbit.distance_max must be 0 or >= distance_min, got %v", c.Orbit.DistanceMax)
	}

	if _, err := c.Controls.Mapping(); err != nil {
		return err
	}
	return nil
}

// CameraOptions converts the camera settings into camera builder options.
// The aspect ratio is not configured here; it follows the window size.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c CameraConfig) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(c.FovDeg)),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithPosition(c.Position),
		camera.WithLookAt(c.LookAt),
	}
}

// ControllerOptions converts the orbit settings into orbit controller options.
// The controller's look-at point is the camera's configured look-at.
//
// Parameters:
//   - lookAt: the point the controller orbits around
//
// Returns:
//   - []camera.OrbitControllerOption: options for camera.NewOrbitController
func (o OrbitConfig) ControllerOptions(lookAt mgl32.Vec3) []camera.OrbitControllerOption {
	return []camera.OrbitControllerOption{
		camera.WithDirectionLerpSpeed(o.DirectionLerpSpeed),
		camera.WithPositionLerpSpeed(o.PositionLerpSpeed),
		camera.WithDistanceBounds(o.DistanceMin, o.DistanceMax),
		camera.WithOrbitLookAt(lookAt),
	}
}

// Mapping converts the control settings into a camera.InputMapping.
//
// Returns:
//   - camera.InputMapping: the resolved mapping
//   - error: an error wrapping common.ErrInvalidArgument if a button or key name is unknown
func (c ControlsConfig) Mapping() (camera.InputMapping, error) {
	rotate, err := input.ParseMouseButton(c.RotateButton)
	if err != nil {
		return camera.InputMapping{}, errors.Wrap(err, "controls.rotate_button")
	}
	move, err := input.ParseMouseButton(c.MoveButton)
	if err != nil {
		return camera.InputMapping{}, errors.Wrap(err, "controls.move_button")
	}
	for name, code := range map[string]string{
		"controls.zoom_in_key":  c.ZoomInKey,
		"controls.zoom_out_key": c.ZoomOutKey,
	} {
		if code == "" {
			continue
		}
		if err := input.ValidateCode(code); err != nil {
			return camera.InputMapping{}, errors.Wrap(err, name)
		}
	}

	return camera.InputMapping{
		RotateButton: rotate,
		MoveButton:   move,
		ZoomInKey:    c.ZoomInKey,
		ZoomOutKey:   c.ZoomOutKey,
		KeyZoomStep:  c.KeyZoomStep,
		ZoomScale:    c.ZoomScale,
		RotateScale:  c.RotateScale,
		MoveScale:    c.MoveScale,
	}, nil
}

// InputOptions converts the input settings into input manager options.
//
// Returns:
//   - []input.InputBuilderOption: options for input.NewInput
func (i InputConfig) InputOptions() []input.InputBuilderOption {
	return []input.InputBuilderOption{
		input.WithResetOnFocusLoss(i.ResetOnFocusLoss),
	}
}
