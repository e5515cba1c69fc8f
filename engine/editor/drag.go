package editor

import (
	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"

	"github.com/chewxy/math32"
)

type DragMode uint8

const (
	DragNone DragMode = iota
	DragHandle
	DragPivot
)

// DragSession holds the state of one continuous pointer press. It is
// created on pointer-down and discarded on release or cancel; there is
// never more than one alive at a time. Cancelling does not revert
// transform writes already applied — only Undo does.
type DragSession struct {
	mode   DragMode
	target Manipulable
	handle Handle

	// Frames captured at drag start and fixed for the whole drag.
	plane          math.Plane
	grabStartWorld math.Vec3
	startWorldPos  math.Vec3
	startRotation  math.Quaternion
	startScale     math.Vec3
	startBox       math.Extents3D
	trInv          math.Mat4

	startWorldBounds math.Extents3D
	candidates       []SnapCandidate
	lastSnap         SnapResult
}

// minScaleExtent guards against degenerate start boxes; the working
// minimum comes from configuration.
const minScaleExtent = 1e-6

func beginHandleDrag(hs *HandleSet, h Handle, cam *scene.Camera) *DragSession {
	target := hs.Target()
	pos, rot, scl := target.WorldMatrix().Decompose()
	grab := hs.WorldPosition(h)
	d := &DragSession{
		mode:             DragHandle,
		target:           target,
		handle:           h,
		plane:            CameraFacingPlane(cam, grab),
		grabStartWorld:   grab,
		startWorldPos:    pos,
		startRotation:    rot,
		startScale:       scl,
		startBox:         hs.Box(),
		trInv:            hs.trInv,
		startWorldBounds: target.WorldBounds(),
		lastSnap:         noSnap(),
	}
	core.MetricsCountDragSession()
	return d
}

func beginPivotDrag(g *scene.Graph, pivot *MultiSelectPivot, cam *scene.Camera, downRay math.Ray) (*DragSession, bool) {
	plane := CameraFacingPlane(cam, pivot.Position())
	hit, ok := downRay.IntersectPlane(plane)
	if !ok {
		return nil, false
	}
	pivot.BeginDrag(g)
	d := &DragSession{
		mode:             DragPivot,
		plane:            plane,
		grabStartWorld:   hit,
		startWorldBounds: pivot.CombinedWorldBounds(g),
		lastSnap:         noSnap(),
	}
	core.MetricsCountDragSession()
	return d, true
}

// updateHandle applies one pointer-move tick to a handle drag and
// reports whether the target changed plus the snap state for this tick.
func (d *DragSession) updateHandle(ray math.Ray, minExtent float32, snapEnabled bool, enter, overlap float32) (bool, SnapResult) {
	hit, ok := ray.IntersectPlane(d.plane)
	if !ok {
		return false, d.lastSnap
	}

	if d.handle.Kind == HandleCenter {
		offset := hit.Sub(d.grabStartWorld)
		newPos := d.startWorldPos.Add(offset)
		snap := noSnap()
		if snapEnabled {
			moving := d.startWorldBounds.Translate(offset)
			snap = ComputeSnapDelta(moving, d.candidates, enter, overlap)
			newPos = newPos.Add(snap.Delta)
		}
		d.lastSnap = snap
		d.target.SetWorldMatrix(math.NewMat4TRS(newPos, d.startRotation, d.startScale))
		return true, snap
	}

	// Resize: convert the plane hit into the drag-start TR frame,
	// replace the dragged side's extent per masked axis, keep the
	// anchor side pinned.
	local := hit.Transform(d.trInv)
	factor := math.NewVec3One()
	displacement := math.NewVec3Zero()
	size := d.startBox.Size()
	for i := 0; i < 3; i++ {
		if !d.handle.AxisMask[i] {
			continue
		}
		anchor := d.handle.Anchor.Component(i)
		oldExtent := size.Component(i)
		if oldExtent < minScaleExtent {
			continue
		}
		newExtent := math.Clamp(math32.Abs(local.Component(i)-anchor), minExtent, math32.MaxFloat32)
		f := newExtent / oldExtent
		factor = factor.SetComponent(i, f)
		// The anchor's TR-frame coordinate scales with the object, so
		// the origin shifts by (1-f)*anchor to keep the anchor's world
		// position fixed.
		displacement = displacement.SetComponent(i, (1.0-f)*anchor)
	}

	newScale := d.startScale.Mul(factor)
	newPos := d.startWorldPos.Add(d.startRotation.RotateVec3(displacement))
	if !newScale.IsFinite() || !newPos.IsFinite() {
		return false, d.lastSnap
	}
	d.target.SetWorldMatrix(math.NewMat4TRS(newPos, d.startRotation, newScale))
	return true, d.lastSnap
}

// updatePivot applies one pointer-move tick to a pivot drag.
func (d *DragSession) updatePivot(g *scene.Graph, pivot *MultiSelectPivot, ray math.Ray, snapEnabled bool, enter, overlap float32) (bool, SnapResult) {
	hit, ok := ray.IntersectPlane(d.plane)
	if !ok {
		return false, d.lastSnap
	}
	offset := hit.Sub(d.grabStartWorld)
	snap := noSnap()
	if snapEnabled {
		moving := d.startWorldBounds.Translate(offset)
		snap = ComputeSnapDelta(moving, d.candidates, enter, overlap)
		offset = offset.Add(snap.Delta)
	}
	d.lastSnap = snap
	pivot.Translate(g, offset)
	return true, snap
}

// buildSnapCandidates collects world boxes of every meshed node not in
// the exclude set and not parented under an excluded node.
func buildSnapCandidates(g *scene.Graph, exclude map[scene.NodeID]bool) []SnapCandidate {
	var out []SnapCandidate
	g.Each(func(id scene.NodeID) {
		if excludedThroughParents(g, id, exclude) {
			return
		}
		n, ok := g.Node(id)
		if !ok || !n.Visible || !n.HasMesh {
			return
		}
		box := g.WorldBounds(id)
		if !box.IsFinite() {
			return
		}
		out = append(out, SnapCandidate{ID: id, Box: box})
	})
	return out
}

func excludedThroughParents(g *scene.Graph, id scene.NodeID, exclude map[scene.NodeID]bool) bool {
	for id != scene.InvalidNodeID {
		if exclude[id] {
			return true
		}
		n, ok := g.Node(id)
		if !ok {
			return false
		}
		id = n.Parent
	}
	return false
}
