package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// targetMoveSpeed is how far W/S move the orbit target per second, in world units.
const targetMoveSpeed = 50

const defaultTitle = "oxy-orbit"

// titleInterval throttles window title updates.
const titleInterval = 250 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	profile := flag.Bool("profile", false, "log frame rate and memory statistics once per second")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// ── Window + Input + Engine ─────────────────────────────────────────
	title := common.Coalesce(cfg.Window.Title, defaultTitle)
	win, err := window.NewWindow(
		window.WithTitle(title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	in := input.NewInput(cfg.Input.InputOptions()...)
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithInput(in),
		engine.WithProfiling(cfg.Engine.Profiling || *profile),
		engine.WithFrameLimit(cfg.Engine.FrameLimit),
	)

	// ── Camera + Orbit Controller ───────────────────────────────────────
	cam := camera.NewCamera(append(cfg.Camera.CameraOptions(),
		camera.WithAspect(aspect(win.Width(), win.Height())),
	)...)

	oc, err := camera.NewOrbitController(win, nil, cam, cfg.Orbit.ControllerOptions(cfg.Camera.LookAt)...)
	if err != nil {
		log.Fatalf("Failed to create orbit controller: %v", err)
	}
	defer oc.Dispose()

	mapping, err := cfg.Controls.Mapping()
	if err != nil {
		log.Fatalf("Invalid controls: %v", err)
	}
	if err := mapping.Validate(in); err != nil {
		log.Fatalf("Invalid controls: %v", err)
	}

	eng.SetResizeCallback(func(width, height int) {
		if height > 0 {
			cam.SetAspect(aspect(width, height))
		}
	})

	var sinceTitle time.Duration
	eng.SetTickCallback(func(dt float32) {
		snap := mapping.Snapshot(in, dt)
		handleKeys(in, oc, dt)
		oc.Update(&snap)

		sinceTitle += time.Duration(dt * float32(time.Second))
		if sinceTitle >= titleInterval {
			sinceTitle = 0
			win.SetTitle(statusTitle(title, oc))
		}
	})

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  oxy-orbit viewer                                    ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Right drag=Orbit  Left drag=Pan                     ║")
	fmt.Println("║  Scroll, PageUp/PageDown=Zoom  W/S=Move target       ║")
	fmt.Println("║  R=Re-center  F1=Dump state  Esc=Quit                ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Println("Starting oxy-orbit viewer")
	eng.Run()
}

// handleKeys applies the viewer's keyboard actions that are not part of the orbit input mapping.
//
// Parameters:
//   - in: the polled input state
//   - oc: the orbit controller to drive
//   - dt: seconds since the previous frame
func handleKeys(in input.Input, oc camera.OrbitController, dt float32) {
	if in.KeyDown(common.KeyW) {
		oc.MoveTargetForward(targetMoveSpeed * dt)
	}
	if in.KeyDown(common.KeyS) {
		oc.MoveTargetBackwards(targetMoveSpeed * dt)
	}
	if in.KeyPressed(common.KeyR) {
		oc.SetTarget(mgl32.Vec3{})
	}
	if in.KeyPressed(common.KeyF1) {
		common.LogDump(oc.State())
	}
}

// statusTitle formats the window title with the camera's distance and orbit target,
// flagging when the target has left the view.
func statusTitle(base string, oc camera.OrbitController) string {
	st := oc.State()
	t := st.CurrentOffset
	title := fmt.Sprintf("%s | distance %.1f | target (%.1f, %.1f, %.1f)",
		base, st.CurrentSpherical.Radius, t.X(), t.Y(), t.Z())
	if !oc.Camera().Frustum().ContainsPoint(st.CurrentLookAt.Add(t)) {
		title += " | target off-screen"
	}
	return title
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
