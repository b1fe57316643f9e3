package main

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sprite3d/internal/config"
	"github.com/Faultbox/sprite3d/internal/engine/camera"
	"github.com/Faultbox/sprite3d/internal/engine/picking"
	"github.com/Faultbox/sprite3d/internal/engine/render"
	"github.com/Faultbox/sprite3d/internal/engine/sprite"
	"github.com/Faultbox/sprite3d/internal/engine/window"
	"github.com/Faultbox/sprite3d/internal/logger"
)

// viewer owns the window, the render context and the demo scene, and runs
// the frame loop. All of it lives on the main thread.
type viewer struct {
	cfg *config.Config
	win *window.Window
	rc  *render.GL

	orbit *camera.OrbitCamera
	root  *sprite.Node

	width  int
	height int

	dragging  bool
	dragMoved bool

	// Clip range picked up from the previous frame's traversal.
	near float32
	far  float32
}

func newViewer(cfg *config.Config) (*viewer, error) {
	win, err := window.New(window.Config{
		Title:      "sprite3d viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	rc, err := render.NewGL()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating render context: %w", err)
	}

	orbit := camera.NewOrbitCamera()
	orbit.Distance = cfg.Scene.CameraDistance

	v := &viewer{
		cfg:    cfg,
		win:    win,
		rc:     rc,
		orbit:  orbit,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
		near:   1,
		far:    10000,
	}
	v.root = buildDemoScene(rc, cfg)

	return v, nil
}

// Run drives the frame loop until the window is closed.
func (v *viewer) Run() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	for {
		start := time.Now()

		if v.pollEvents() {
			return nil
		}

		v.drawFrame()
		v.win.SwapBuffers()

		if frameBudget > 0 {
			if elapsed := time.Since(start); elapsed < frameBudget {
				time.Sleep(frameBudget - elapsed)
			}
		}
	}
}

// pollEvents drains the SDL queue. Returns true on quit.
func (v *viewer) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return true
			}

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				v.width = int(e.Data1)
				v.height = int(e.Data2)
				gl.Viewport(0, 0, int32(v.width), int32(v.height))
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				v.dragging = true
				v.dragMoved = false
			} else {
				v.dragging = false
				if !v.dragMoved {
					v.pick(float32(e.X), float32(e.Y))
				}
			}

		case *sdl.MouseMotionEvent:
			if v.dragging {
				v.dragMoved = true
				v.orbit.HandleDrag(float32(e.XRel), float32(e.YRel))
			}

		case *sdl.MouseWheelEvent:
			v.orbit.HandleZoom(float32(e.Y))
		}
	}
	return false
}

func (v *viewer) drawFrame() {
	cam := v.orbit.State(v.cfg.Graphics.FovY, float32(v.width), float32(v.height))
	cam.Near, cam.Far = v.near, v.far

	v.rc.BeginFrame(cam)

	gl.ClearColor(0.08, 0.09, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.root.Draw(nil, 0)

	// Drawn nodes with auto-clip narrow the depth range for the next frame.
	if near, far, ok := v.rc.ClipRange(); ok {
		v.near, v.far = near, far
	} else {
		v.near, v.far = 1, 10000
	}
}

// pick casts a ray through the clicked pixel and logs what it hits.
func (v *viewer) pick(x, y float32) {
	cam := v.rc.Camera()
	inv := cam.ViewProjection().Inverse()

	ray := picking.ScreenToRay(x, y, cam.ViewportW, cam.ViewportH, inv)
	hits := v.root.RayIntersections(ray, flagPickable, nil)
	if len(hits) == 0 {
		logger.Debug("pick missed")
		return
	}
	for _, n := range hits {
		dist, _ := n.RayIntersect(ray)
		logger.Info("picked node",
			zap.String("node", n.Name),
			zap.Float32("distance", dist),
		)
	}
}

// Close tears down the scene and the window.
func (v *viewer) Close() {
	if v.root != nil {
		disposeTree(v.root)
	}
	if v.rc != nil {
		v.rc.Destroy()
	}
	if v.win != nil {
		v.win.Close()
	}
}

func disposeTree(n *sprite.Node) {
	for _, c := range n.Children() {
		disposeTree(c)
	}
	n.Dispose()
}
