package editor

import (
	"github.com/spatialworks/maquette/engine/config"
	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

// Session owns all editor-side mutable state: the selection, the
// active manipulation tool (handle set or pivot), the drag in
// progress, and the undo history. All methods run on the engine tick;
// nothing here is safe for concurrent use.
type Session struct {
	graph  *scene.Graph
	camera *scene.Camera
	store  *scene.Store
	cfg    *config.Config

	selection *Selection
	handles   *HandleSet
	pivot     *MultiSelectPivot
	history   *HistoryStack
	drag      *DragSession

	restoring  bool
	snapActive bool
	width      float32
	height     float32
}

func NewSession(g *scene.Graph, cam *scene.Camera, store *scene.Store, cfg *config.Config) *Session {
	s := &Session{
		graph:     g,
		camera:    cam,
		store:     store,
		cfg:       cfg,
		selection: NewSelection(),
		history:   NewHistoryStack(cfg.History.Capacity),
		width:     float32(cfg.Window.Width),
		height:    float32(cfg.Window.Height),
	}
	if err := s.history.Push(g, "initial"); err != nil {
		core.LogWarn("session: initial snapshot failed: %v", err)
	}
	return s
}

func (s *Session) Graph() *scene.Graph {
	return s.graph
}

func (s *Session) Selection() *Selection {
	return s.selection
}

func (s *Session) Handles() *HandleSet {
	return s.handles
}

func (s *Session) Pivot() *MultiSelectPivot {
	return s.pivot
}

func (s *Session) History() *HistoryStack {
	return s.history
}

func (s *Session) Dragging() bool {
	return s.drag != nil
}

func (s *Session) SetViewport(width, height float32) {
	if width > 0 && height > 0 {
		s.width = width
		s.height = height
		s.camera.Aspect = width / height
	}
}

// PointerDown hit-tests handles first, then the pivot, then scene
// objects. A hit on a manipulator starts a drag; a hit on an object
// updates the selection; a miss clears it unless additive.
func (s *Session) PointerDown(x, y float32, additive bool) {
	if s.drag != nil {
		return
	}
	ray := ScreenToRay(s.camera, x, y, s.width, s.height)

	if s.handles != nil && !s.handles.Empty() {
		if h, ok := PickHandle(s.handles, ray, s.cfg.Handles.PickRadius); ok {
			s.drag = beginHandleDrag(s.handles, h, s.camera)
			s.drag.candidates = buildSnapCandidates(s.graph, s.excludeSet())
			return
		}
	}
	if s.pivot != nil && ray.DistanceToPoint(s.pivot.Position()) <= s.cfg.Handles.PickRadius {
		if d, ok := beginPivotDrag(s.graph, s.pivot, s.camera, ray); ok {
			s.drag = d
			s.drag.candidates = buildSnapCandidates(s.graph, s.excludeSet())
		}
		return
	}

	if id, _, ok := RaycastScene(s.graph, ray); ok {
		if additive {
			s.selection.Toggle(id)
		} else {
			s.selection.SelectSingle(id)
		}
	} else if !additive {
		s.selection.Clear()
	}
	s.refreshTools()
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
}

// PointerMove advances the active drag one tick. Transform writes are
// applied live; snapping is an additive correction on translate drags.
func (s *Session) PointerMove(x, y float32) {
	if s.drag == nil {
		return
	}
	ray := ScreenToRay(s.camera, x, y, s.width, s.height)
	snapCfg := s.cfg.Snap

	var changed bool
	var snap SnapResult
	switch s.drag.mode {
	case DragHandle:
		changed, snap = s.drag.updateHandle(ray,
			s.cfg.Handles.MinExtent, snapCfg.Enabled, snapCfg.EnterDistance, snapCfg.OverlapAllowance)
		if changed {
			s.handles.Reposition()
		}
	case DragPivot:
		changed, snap = s.drag.updatePivot(s.graph, s.pivot, ray,
			snapCfg.Enabled, snapCfg.EnterDistance, snapCfg.OverlapAllowance)
	default:
		return
	}
	if !changed {
		return
	}
	s.updateSnapHighlight(snap)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_TRANSFORM_EDITED, Data: s.selection.Objects()})
	// Every applied move nudges the debounced autosave; the debounce
	// window keeps mid-drag ticks from hitting the disk.
	s.sceneChanged()
}

// PointerUp commits the drag: the handle set is fully rebuilt, a
// history snapshot is recorded, and the autosave is nudged.
func (s *Session) PointerUp() {
	if s.drag == nil {
		return
	}
	s.endDrag()
	if err := s.history.Push(s.graph, "drag"); err != nil {
		core.LogWarn("session: %v", err)
	}
	s.sceneChanged()
}

// CancelDrag discards the session without reverting transform writes
// already applied. Partial drags are committed live; only Undo takes
// them back.
func (s *Session) CancelDrag() {
	if s.drag == nil {
		return
	}
	s.endDrag()
}

func (s *Session) endDrag() {
	if s.drag.mode == DragPivot && s.pivot != nil {
		s.pivot.EndDrag()
	}
	if s.drag.mode == DragHandle && s.handles != nil {
		s.handles.Rebuild()
	}
	s.drag = nil
	s.updateSnapHighlight(noSnap())
}

// DeleteSelected removes every selected subtree and records a
// snapshot.
func (s *Session) DeleteSelected() {
	if s.drag != nil || s.selection.Count() == 0 {
		return
	}
	for _, id := range s.selection.Objects() {
		s.graph.Remove(id)
	}
	s.selection.Clear()
	s.refreshTools()
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
	if err := s.history.Push(s.graph, "delete"); err != nil {
		core.LogWarn("session: %v", err)
	}
	s.sceneChanged()
}

// duplicateOffset keeps a copy from landing exactly on its source.
var duplicateOffset = math.NewVec3(0.5, 0, 0.5)

// DuplicateSelected deep-copies every selected subtree, offsets the
// copies, and selects them.
func (s *Session) DuplicateSelected() {
	if s.drag != nil || s.selection.Count() == 0 {
		return
	}
	var dups []scene.NodeID
	for _, id := range s.selection.Objects() {
		dup, err := s.graph.Duplicate(id)
		if err != nil {
			core.LogWarn("session: duplicate: %v", err)
			continue
		}
		pos := s.graph.WorldPosition(dup).Add(duplicateOffset)
		world := s.graph.WorldMatrix(dup)
		_, rot, scl := world.Decompose()
		s.graph.SetWorldMatrix(dup, math.NewMat4TRS(pos, rot, scl))
		dups = append(dups, dup)
	}
	if len(dups) == 0 {
		return
	}
	s.selection.Clear()
	for _, id := range dups {
		s.selection.Toggle(id)
	}
	s.refreshTools()
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
	if err := s.history.Push(s.graph, "duplicate"); err != nil {
		core.LogWarn("session: %v", err)
	}
	s.sceneChanged()
}

// SelectAll selects every visible meshed object in the scene.
func (s *Session) SelectAll() {
	if s.drag != nil {
		return
	}
	s.selection.Clear()
	s.graph.Each(func(id scene.NodeID) {
		n, ok := s.graph.Node(id)
		if ok && n.Visible && n.HasMesh {
			s.selection.Toggle(id)
		}
	})
	s.refreshTools()
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
}

// Undo walks the history back one snapshot and swaps in the rebuilt
// scene. A failed restore leaves everything untouched.
func (s *Session) Undo() error {
	return s.applyRestore(s.history.Undo)
}

func (s *Session) Redo() error {
	return s.applyRestore(s.history.Redo)
}

func (s *Session) applyRestore(step func() (*scene.Graph, error)) error {
	if s.drag != nil {
		return core.ErrDragInProgress
	}
	g, err := step()
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	s.restoring = true
	s.graph = g
	s.selection.Clear()
	s.refreshTools()
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: nil})
	s.restoring = false
	if s.store != nil && s.cfg.Autosave.Enabled {
		s.store.RequestSave(s.graph)
	}
	return nil
}

// ReplaceScene swaps in an externally loaded graph (file reload) and
// resets editor state around it.
func (s *Session) ReplaceScene(g *scene.Graph) {
	if s.drag != nil {
		s.CancelDrag()
	}
	s.graph = g
	s.selection.Clear()
	s.refreshTools()
	if err := s.history.Push(g, "reload"); err != nil {
		core.LogWarn("session: %v", err)
	}
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SELECTION_CHANGED, Data: s.selection.Objects()})
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: nil})
}

// Update polls the editor key bindings once per tick.
func (s *Session) Update() {
	if core.InputIsKeyPressed(core.KEY_ESCAPE) {
		s.CancelDrag()
	}
	if core.InputIsKeyPressed(core.KEY_DELETE) {
		s.DeleteSelected()
	}
	ctrl := core.InputIsKeyDown(core.KEY_CONTROL)
	if ctrl && core.InputIsKeyPressed(core.KEY_Z) {
		if err := s.Undo(); err != nil {
			core.LogWarn("session: undo: %v", err)
		}
	}
	if ctrl && core.InputIsKeyPressed(core.KEY_Y) {
		if err := s.Redo(); err != nil {
			core.LogWarn("session: redo: %v", err)
		}
	}
	if ctrl && core.InputIsKeyPressed(core.KEY_D) {
		s.DuplicateSelected()
	}
	if ctrl && core.InputIsKeyPressed(core.KEY_A) {
		s.SelectAll()
	}
}

// refreshTools rebuilds the manipulation tool for the selection size:
// one selection gets a handle set, two or more get a pivot.
func (s *Session) refreshTools() {
	s.selection.Prune(s.graph)
	s.handles = nil
	s.pivot = nil
	switch {
	case s.selection.Count() == 1:
		s.handles = BuildHandleSet(s.graph.Ref(s.selection.Active()))
	case s.selection.Count() >= 2:
		s.pivot = NewMultiSelectPivot(s.graph, s.selection.Objects())
	}
}

func (s *Session) excludeSet() map[scene.NodeID]bool {
	out := make(map[scene.NodeID]bool, s.selection.Count())
	for _, id := range s.selection.Objects() {
		out[id] = true
	}
	return out
}

func (s *Session) updateSnapHighlight(snap SnapResult) {
	if snap.Active() {
		if !s.snapActive {
			core.MetricsCountSnapHit()
		}
		s.snapActive = true
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SNAP_HIGHLIGHT, Data: snap})
		return
	}
	if s.snapActive {
		s.snapActive = false
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SNAP_CLEARED, Data: nil})
	}
}

func (s *Session) sceneChanged() {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCENE_CHANGED, Data: nil})
	if s.store != nil && s.cfg.Autosave.Enabled && !s.restoring {
		s.store.RequestSave(s.graph)
	}
}
