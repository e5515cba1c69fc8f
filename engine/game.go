package engine

import (
	"github.com/spatialworks/maquette/engine/editor"
	"github.com/spatialworks/maquette/engine/scene"
)

// Game is the application hosted by the engine: it seeds the scene
// when no saved file exists and gets a callback every tick.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnSetupScene      SetupScene
	FnUpdate          Update
	FnOnResize        OnResize
}

type SetupScene func(g *scene.Graph) error
type Update func(session *editor.Session, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
