// Package viewer runs the interactive orbit camera window.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcam/internal/config"
	"github.com/Faultbox/orbitcam/internal/engine/camera"
	"github.com/Faultbox/orbitcam/internal/engine/controls"
	"github.com/Faultbox/orbitcam/internal/engine/input/sdlsource"
	"github.com/Faultbox/orbitcam/internal/engine/renderer"
	"github.com/Faultbox/orbitcam/internal/engine/rig"
	"github.com/Faultbox/orbitcam/internal/engine/window"
	"github.com/Faultbox/orbitcam/internal/logger"
	"github.com/Faultbox/orbitcam/internal/replay"
)

// idleDelay throttles the loop while nothing needs redrawing.
const idleDelay = 5 * time.Millisecond

// Options holds settings that are not part of the config file.
type Options struct {
	Title      string
	ConfigPath string // Watched for changes when set
	RecordPath string // Input trace written here on Close when set
}

// Viewer is the orbit camera window and its input loop.
type Viewer struct {
	opts Options
	log  *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	source   *sdlsource.Source
	watcher  *config.Watcher

	store  *camera.Store
	router *controls.Router
	rig    *rig.Rig
	trace  *replay.Trace

	detach  []func()
	running bool
}

// New creates the window and wires the camera to it.
func New(cfg *config.Config, opts Options) (*Viewer, error) {
	camCfg, err := cfg.Camera.ToCamera()
	if err != nil {
		return nil, err
	}
	tuning, err := cfg.Controls.ToTuning()
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "OrbitCam"
	}

	v := &Viewer{
		opts: opts,
		log:  logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v.store, err = camera.NewStore(camCfg)
	if err != nil {
		return nil, err
	}
	v.router = controls.NewRouter(v.store, controls.WithTuning(tuning))

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:  opts.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(renderer.DefaultConfig(dw, dh))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	lens := rig.DefaultLens()
	lens.FovY = mgl32.DegToRad(float32(cfg.Window.FovY))
	lens.Aspect = aspect(dw, dh)
	v.rig = rig.New(lens)

	v.source = sdlsource.New()
	v.source.LinePixels = cfg.Controls.LinePixels

	if opts.RecordPath != "" {
		v.trace = &replay.Trace{Name: opts.Title}
	}

	if opts.ConfigPath != "" {
		v.watcher, err = config.NewWatcher(opts.ConfigPath)
		if err != nil {
			// Hot reload is a convenience; run without it.
			v.log.Warn("config watcher unavailable", zap.Error(err))
		}
	}

	v.detach = append(v.detach,
		v.store.Subscribe(v.updateTitle),
		v.store.SubscribeConfig(func(c camera.Config) {
			v.log.Info("camera bounds changed",
				zap.Float64("min_r", c.MinR),
				zap.Float64("max_r", c.MaxR),
				zap.Float64("min_theta", c.MinTheta),
				zap.Float64("max_theta", c.MaxTheta),
			)
		}),
		v.rig.Attach(v.store),
	)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run processes input and draws until the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		if v.source.Update() {
			v.running = false
			break
		}

		if _, _, ok := v.source.Resized(); ok {
			dw, dh := v.window.GetDrawableSize()
			v.renderer.Resize(dw, dh)
			v.rig.SetAspect(aspect(dw, dh))
		}

		events := v.source.Events()
		if v.trace != nil {
			for _, e := range events {
				v.trace.Append(e)
			}
		}
		v.router.RouteAll(events)

		v.drainWatcher()

		if !v.rig.Dirty() {
			sdl.Delay(uint32(idleDelay / time.Millisecond))
			continue
		}
		v.rig.ClearDirty()

		v.renderer.Draw(v.rig.ViewProjection(), toVec3(v.rig.State().Origin.Array()))
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the window and writes the input trace if recording.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	for i := len(v.detach) - 1; i >= 0; i-- {
		v.detach[i]()
	}
	v.detach = nil

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("failed to close config watcher", zap.Error(err))
		}
	}

	if v.trace != nil {
		if err := v.trace.SaveTo(v.opts.RecordPath); err != nil {
			v.log.Error("failed to save input trace", zap.String("path", v.opts.RecordPath), zap.Error(err))
		} else {
			v.log.Info("input trace saved",
				zap.String("path", v.opts.RecordPath),
				zap.Int("events", len(v.trace.Events)),
			)
		}
	}

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// drainWatcher applies reloaded configs on the loop goroutine, which is the
// only one allowed to touch the store.
func (v *Viewer) drainWatcher() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-v.watcher.Configs:
			if !ok {
				v.watcher = nil
				return
			}
			v.applyConfig(cfg)
		case err, ok := <-v.watcher.Errors:
			if !ok {
				v.watcher = nil
				return
			}
			v.log.Warn("config reload error", zap.Error(err))
		default:
			return
		}
	}
}

func (v *Viewer) applyConfig(cfg *config.Config) {
	camCfg, err := cfg.Camera.ToCamera()
	if err != nil {
		v.log.Warn("ignoring reloaded camera section", zap.Error(err))
	} else if err := v.store.SetConfig(camCfg); err != nil {
		v.log.Warn("store rejected reloaded camera section", zap.Error(err))
	}

	tuning, err := cfg.Controls.ToTuning()
	if err != nil {
		v.log.Warn("ignoring reloaded controls section", zap.Error(err))
	} else {
		v.router.SetTuning(tuning)
		v.source.LinePixels = cfg.Controls.LinePixels
	}
}

func (v *Viewer) updateTitle(s camera.State) {
	c := s.Coords
	v.window.SetTitle(fmt.Sprintf("%s  r=%.2f θ=%.2f φ=%.2f", v.opts.Title, c.R, c.Theta, c.Phi))
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func toVec3(a [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}
