package testbed

import (
	"github.com/spatialworks/maquette/engine"
	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/editor"
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

// TestGame is a small editing playground: a floor plus a handful of
// crates to select, resize, group-move and snap against.
type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32

	statusTicker float64
}

func NewTestGame() *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:  100,
				StartPosY:  100,
				ConfigPath: "maquette.toml",
				LogLevel:   core.DebugLevel,
			},
			State: &gameState{},
		},
	}

	tg.FnSetupScene = tg.SetupScene
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize

	return tg
}

func unitCube() math.Extents3D {
	return math.NewExtents3D(math.NewVec3(-0.5, -0.5, -0.5), math.NewVec3(0.5, 0.5, 0.5))
}

// SetupScene seeds the demo content when no saved scene exists.
func (g *TestGame) SetupScene(graph *scene.Graph) error {
	core.LogInfo("seeding demo scene")

	floor := graph.Spawn("floor", scene.InvalidNodeID)
	graph.SetMeshBounds(floor, unitCube())
	graph.SetScale(floor, math.NewVec3(12, 0.2, 12))
	graph.SetPosition(floor, math.NewVec3(0, -0.1, 0))

	crates := []struct {
		name  string
		pos   math.Vec3
		scale math.Vec3
	}{
		{"crate_a", math.NewVec3(-2, 0.5, 0), math.NewVec3One()},
		{"crate_b", math.NewVec3(0, 0.5, 0), math.NewVec3One()},
		{"crate_c", math.NewVec3(2.3, 0.5, 1), math.NewVec3(1, 1, 2)},
	}
	for _, c := range crates {
		id := graph.Spawn(c.name, scene.InvalidNodeID)
		graph.SetMeshBounds(id, unitCube())
		graph.SetPosition(id, c.pos)
		graph.SetScale(id, c.scale)
	}

	// A parented pair, to exercise cross-parent group drags.
	shelf := graph.Spawn("shelf", scene.InvalidNodeID)
	graph.SetMeshBounds(shelf, unitCube())
	graph.SetScale(shelf, math.NewVec3(3, 0.3, 1))
	graph.SetPosition(shelf, math.NewVec3(-3, 1.5, -3))
	book := graph.Spawn("book", shelf)
	graph.SetMeshBounds(book, unitCube())
	graph.SetScale(book, math.NewVec3(0.2, 0.6, 0.8))
	graph.SetPosition(book, math.NewVec3(0, 1.5, 0))

	return nil
}

func (g *TestGame) Update(session *editor.Session, deltaTime float64) error {
	state := g.State.(*gameState)

	// Periodic status line instead of per-frame spam.
	state.statusTicker += deltaTime
	if state.statusTicker >= 5.0 {
		state.statusTicker = 0
		drags, snaps, pushes := core.MetricsEditor()
		core.LogDebug("fps=%.1f nodes=%d selected=%d drags=%d snaps=%d history=%d",
			core.MetricsFPS(), session.Graph().Len(), session.Selection().Count(),
			drags, snaps, pushes)
	}
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}
