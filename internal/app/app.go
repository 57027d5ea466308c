// Package app implements the main viewer loop and frame state.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/orbitlab/shipview/internal/config"
	"github.com/orbitlab/shipview/internal/engine/camera"
	"github.com/orbitlab/shipview/internal/engine/input"
	"github.com/orbitlab/shipview/internal/engine/lighting"
	"github.com/orbitlab/shipview/internal/engine/mesh"
	"github.com/orbitlab/shipview/internal/engine/motion"
	"github.com/orbitlab/shipview/internal/engine/renderer"
	"github.com/orbitlab/shipview/internal/engine/segment"
	"github.com/orbitlab/shipview/internal/engine/shadow"
	"github.com/orbitlab/shipview/internal/engine/state"
	"github.com/orbitlab/shipview/internal/engine/transform"
	"github.com/orbitlab/shipview/internal/engine/window"
	"github.com/orbitlab/shipview/internal/logger"
)

// colorUpdateInterval throttles animated recoloring; pulsing at 10Hz is
// indistinguishable from per-frame updates and far cheaper.
const colorUpdateInterval = 0.1

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	model      *mesh.Mesh
	labels     []segment.Region
	classifier *segment.Classifier

	camera    *camera.Orbit
	clock     *motion.Clock
	toggles   *state.State
	lightPath motion.LightPath
	materials segment.MaterialTable
	plane     shadow.Plane

	// Recoloring bookkeeping.
	colorsDirty     bool
	lastColorUpdate float32
}

// New loads the model and brings up the window, GL state and frame
// state from configuration.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("model", cfg.Model.Path),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg}

	m, err := mesh.Load(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	a.model = m.Fitted(cfg.Model.FitSize)
	logger.Info("model loaded",
		zap.Int("vertices", len(a.model.Positions)),
		zap.Int("faces", a.model.FaceCount()),
	)

	a.classifier = segment.NewClassifier(cfg.Segment)
	a.labels = a.classifier.Classify(a.model)
	logRegionCounts(a.labels)

	a.toggles, err = state.FromConfig(cfg.Startup)
	if err != nil {
		return nil, fmt.Errorf("invalid startup state: %w", err)
	}

	// Window first: the GL context must exist before the renderer.
	a.window, err = window.New(window.Config{
		Title:      "shipview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	t := a.toggles.Toggles()
	colors := segment.FaceColors(t.ColoringMode, t.Scheme, a.model, a.labels, 0)
	if err := a.renderer.UploadMesh(a.model, a.labels, colors); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}
	a.renderer.UploadGround(cfg.Ground.Height, cfg.Ground.Size, cfg.Ground.Color)

	a.input = input.New()
	a.camera = camera.New(cfg.Camera)
	a.clock = motion.NewClock()
	a.plane = shadow.GroundPlane(cfg.Ground.Height)
	a.materials = segment.Materials(baseMaterial(cfg.Material))
	a.lightPath = motion.LightPath{
		Base:         mgl32.Vec3(cfg.Light.Position),
		Orbit:        cfg.Light.OrbitEnabled,
		OrbitRadius:  cfg.Light.OrbitRadius,
		OrbitSpeed:   cfg.Light.OrbitSpeed,
		OrbitCenter:  mgl32.Vec3(cfg.Light.OrbitCenter),
		Bob:          cfg.Light.BobEnabled,
		BobAmplitude: cfg.Light.BobAmplitude,
		BobSpeed:     cfg.Light.BobSpeed,
		BobBaseY:     cfg.Light.BobBaseY,
		Eight:        cfg.Light.PathEnabled,
		EightScale:   cfg.Light.PathScale,
		EightSpeed:   cfg.Light.PathSpeed,
		MinHeight:    cfg.Light.MinHeight,
	}

	logger.Info("viewer initialized")
	return a, nil
}

// Run drives the frame loop until quit.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		a.handleEvents()
		dt := a.clock.Tick(time.Now())
		a.handleHeldKeys(dt)
		a.camera.Update(dt)

		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("delta_ms", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// render draws one frame from the current toggles, clock and camera.
func (a *App) render() {
	t := a.toggles.Toggles()
	elapsed := a.clock.Elapsed()

	// Object pose: motion-mode offset composed with the auto spin.
	offset, facingYaw := motion.Offset(t.MotionMode, elapsed, motionParams(a.cfg.Motion))
	pose := transform.NewPose()
	pose.Position = offset
	pose.Yaw = facingYaw + motion.SpinYaw(elapsed, a.cfg.Motion.SpinSpeedDegrees)

	model := pose.Matrix()
	view := a.camera.ViewMatrix()
	proj := transform.Projection(a.cfg.Camera.FOVDegrees, a.renderer.Aspect(),
		a.cfg.Camera.Near, a.cfg.Camera.Far)

	if !transform.IsFinite(model) || !transform.IsFinite(view) {
		logger.Warn("non-finite transform, skipping frame")
		return
	}

	a.refreshColors(t, elapsed)

	lightPos := a.lightPath.Position(elapsed)
	light := lighting.Light{
		Position: lightPos,
		Ambient:  mgl32.Vec3(a.cfg.Light.Ambient),
		Diffuse:  mgl32.Vec3(a.cfg.Light.Diffuse),
		Specular: mgl32.Vec3(a.cfg.Light.Specular),
	}

	a.renderer.Begin()

	if t.Ground {
		a.renderer.DrawGround(view, proj)
	}

	a.renderer.DrawMesh(model, view, proj, transform.NormalMatrix(model),
		light, a.materials, a.camera.Position(), t.Lighting, t.RenderMode)

	// The shadow needs the ground to fall on, and a light that is not
	// parallel to it.
	if t.Shadows && t.Ground {
		if flatten, ok := shadow.FromPoint(lightPos, a.plane); ok {
			a.renderer.DrawShadow(flatten.Mul4(model), view, proj, a.cfg.Ground.ShadowColor)
		} else {
			logger.Debug("shadow degenerate, skipping", zap.Any("light", lightPos))
		}
	}
}

// refreshColors re-derives face colors when a toggle changed them, or
// on the animated-mode cadence.
func (a *App) refreshColors(t state.Toggles, elapsed float32) {
	animate := t.ColoringMode == segment.ColoringAnimated &&
		elapsed-a.lastColorUpdate >= colorUpdateInterval

	if !a.colorsDirty && !animate {
		return
	}

	colors := segment.FaceColors(t.ColoringMode, t.Scheme, a.model, a.labels, elapsed)
	if err := a.renderer.UpdateColors(colors); err != nil {
		logger.Error("recolor failed", zap.Error(err))
		return
	}
	a.colorsDirty = false
	a.lastColorUpdate = elapsed
}

// reset restores camera, toggles, clock and materials to startup values.
func (a *App) reset() {
	a.camera.Reset()
	a.toggles.Reset()
	a.clock.Reset()
	a.materials = segment.Materials(baseMaterial(a.cfg.Material))
	a.colorsDirty = true
	logger.Info("state reset to defaults")
}

// baseMaterial converts the configured hull material.
func baseMaterial(cfg config.MaterialConfig) lighting.Material {
	return lighting.Material{
		Ambient:   mgl32.Vec3(cfg.Ambient),
		Diffuse:   mgl32.Vec3(cfg.Diffuse),
		Specular:  mgl32.Vec3(cfg.Specular),
		Shininess: cfg.Shininess,
	}
}

func motionParams(cfg config.MotionConfig) motion.Params {
	return motion.Params{
		OrbitRadius:  cfg.OrbitRadius,
		OrbitSpeed:   cfg.OrbitSpeed,
		BobAmplitude: cfg.BobAmplitude,
		BobSpeed:     cfg.BobSpeed,
		EightRadius:  cfg.EightRadius,
		EightSpeed:   cfg.EightSpeed,
		BaseHeight:   cfg.BaseHeight,
	}
}

func logRegionCounts(labels []segment.Region) {
	counts := make(map[segment.Region]int)
	for _, r := range labels {
		counts[r]++
	}
	fields := make([]zap.Field, 0, len(counts))
	for r, n := range counts {
		fields = append(fields, zap.Int(r.String(), n))
	}
	logger.Info("faces classified", fields...)
}
