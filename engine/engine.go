package engine

import (
	"fmt"
	"time"

	"github.com/spatialworks/maquette/engine/config"
	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/editor"
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/platform"
	"github.com/spatialworks/maquette/engine/scene"
)

var (
	defaultCameraPosition = math.NewVec3(8, 6, 8)
	defaultCameraTarget   = math.NewVec3Zero()
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	config       *config.Config
	store        *scene.Store
	camera       *scene.Camera
	session      *editor.Session
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	cfg, err := config.Load(g.ApplicationConfig.ConfigPath)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     platform.New(),
		config:       cfg,
		isRunning:    true,
		isSuspended:  false,
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.gameInstance.ApplicationConfig.LogLevel)

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)
	core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, e.onButton)
	core.EventRegister(core.EVENT_CODE_BUTTON_RELEASED, e.onButton)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, e.onMouseMove)
	core.EventRegister(core.EVENT_CODE_SCENE_FILE_CHANGED, e.onSceneFileChanged)

	if err := e.platform.Startup(e.config.Window.Title,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.config.Window.Width,
		e.config.Window.Height); err != nil {
		return err
	}

	e.store = scene.NewStore(e.config.Autosave.Path, time.Duration(e.config.Autosave.DebounceMS)*time.Millisecond)
	graph, err := e.store.Load()
	if err != nil {
		core.LogWarn("scene load failed, starting empty: %v", err)
		graph = scene.NewGraph()
	}
	if graph.Len() == 0 && e.gameInstance.FnSetupScene != nil {
		if err := e.gameInstance.FnSetupScene(graph); err != nil {
			return err
		}
	}

	aspect := float32(e.width) / float32(e.height)
	e.camera = scene.NewCamera(defaultCameraPosition, defaultCameraTarget, aspect)
	e.session = editor.NewSession(graph, e.camera, e.store, e.config)
	e.session.SetViewport(float32(e.width), float32(e.height))

	if e.config.Autosave.WatchFile {
		err := e.store.Watch(func() {
			// Watcher goroutine: hand the reload to the engine tick.
			core.EventEnqueue(core.EventContext{Type: core.EVENT_CODE_SCENE_FILE_CHANGED})
		})
		if err != nil {
			core.LogWarn("scene file watch unavailable: %v", err)
		}
	}

	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Session() *editor.Session {
	return e.session
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}
		core.ProcessEvents()

		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := platform.GetAbsoluteTime()

		e.session.Update()
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(e.session, delta); err != nil {
				core.LogError("game update failed, shutting down: %v", err)
				e.isRunning = false
				break
			}
		}

		core.MetricsUpdate(platform.GetAbsoluteTime() - frameStartTime)

		// Input state copying happens after anything that reads press
		// edges; it is the last thing in the frame.
		core.InputUpdate(delta)
		e.lastTime = currentTime
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	// Flush outstanding edits before tearing anything down.
	if e.store != nil && e.config.Autosave.Enabled {
		if err := e.store.Save(e.session.Graph()); err != nil {
			core.LogWarn("final save failed: %v", err)
		}
		if err := e.store.Close(); err != nil {
			core.LogWarn("store close: %v", err)
		}
	}
	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("application quit requested, shutting down")
		e.isRunning = false
	}
}

func (e *Engine) onButton(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}
	if me.Button != core.BUTTON_LEFT {
		return
	}
	if context.Type == core.EVENT_CODE_BUTTON_PRESSED {
		additive := core.InputIsKeyDown(core.KEY_SHIFT)
		e.session.PointerDown(float32(me.PosX), float32(me.PosY), additive)
	} else {
		e.session.PointerUp()
	}
}

func (e *Engine) onMouseMove(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}
	if core.InputIsButtonDown(core.BUTTON_LEFT) {
		e.session.PointerMove(float32(me.PosX), float32(me.PosY))
	}
}

func (e *Engine) onSceneFileChanged(context core.EventContext) {
	core.LogInfo("scene file changed on disk, reloading")
	graph, err := e.store.Load()
	if err != nil {
		core.LogError("scene reload failed: %v", err)
		return
	}
	e.session.ReplaceScene(graph)
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}
	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	e.session.SetViewport(float32(width), float32(height))
	if e.gameInstance.FnOnResize != nil {
		e.gameInstance.FnOnResize(width, height)
	}
}
