package editor

import (
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

type HandleKind uint8

const (
	HandleCenter HandleKind = iota
	HandleFace
	HandleEdge
	HandleCorner
)

func (k HandleKind) String() string {
	switch k {
	case HandleCenter:
		return "center"
	case HandleFace:
		return "face"
	case HandleEdge:
		return "edge"
	case HandleCorner:
		return "corner"
	}
	return "unknown"
}

// Handle is one manipulable control point on a selected node's box.
// Positions are expressed in the node's rotation-translation frame,
// with the node's own scale already baked into the box, so handle
// geometry follows the node's orientation without being sheared by
// non-uniform scale.
type Handle struct {
	Kind HandleKind
	// Selector places the handle on the box: each component is -1
	// (min side), 0 (centered), or +1 (max side). (0,0,0) is the
	// center handle.
	Selector [3]int
	// AxisMask flags which axes a drag of this handle scales.
	AxisMask [3]bool
	// Local is the handle position in the TR frame.
	Local math.Vec3
	// Anchor is the TR-frame point that must stay fixed in world
	// space while this handle is dragged.
	Anchor math.Vec3
}

// Manipulable is everything the handle set needs from a selected
// object: transform access plus bounds in an arbitrary frame. The
// graph's NodeRef satisfies it; the set itself never sees the graph.
type Manipulable interface {
	scene.Transformable
	scene.Boundable
}

var _ Manipulable = scene.NodeRef{}

// HandleSet derives the 27 handles (8 corners, 12 edges, 6 faces,
// 1 center) for a single selected object. An empty set means the
// object has no visible mesh bounds to manipulate.
type HandleSet struct {
	target  Manipulable
	box     math.Extents3D
	tr      math.Mat4
	trInv   math.Mat4
	handles []Handle
}

// BuildHandleSet computes the target's box in its TR frame and derives
// one handle per selector. A degenerate box yields an empty set.
func BuildHandleSet(target Manipulable) *HandleSet {
	hs := &HandleSet{target: target}
	hs.Rebuild()
	return hs
}

// trFrame is the target's world rotation and translation with the
// scale stripped out. Handle geometry lives in this frame so it is not
// distorted by the object's own non-uniform scale.
func (hs *HandleSet) trFrame() math.Mat4 {
	pos, rot, _ := hs.target.WorldMatrix().Decompose()
	return math.NewMat4TR(pos, rot)
}

func (hs *HandleSet) Rebuild() {
	hs.handles = hs.handles[:0]
	hs.tr = hs.trFrame()
	hs.trInv = hs.tr.Inverse()
	hs.box = hs.target.BoundsInFrame(hs.trInv)
	if !hs.box.IsFinite() {
		return
	}
	center := hs.box.Center()
	half := hs.box.Size().MulScalar(0.5)
	for sx := -1; sx <= 1; sx++ {
		for sy := -1; sy <= 1; sy++ {
			for sz := -1; sz <= 1; sz++ {
				sel := [3]int{sx, sy, sz}
				h := Handle{
					Kind:     kindForSelector(sel),
					Selector: sel,
				}
				for i := 0; i < 3; i++ {
					h.AxisMask[i] = sel[i] != 0
					offset := half.Component(i) * float32(sel[i])
					h.Local = h.Local.SetComponent(i, center.Component(i)+offset)
					h.Anchor = h.Anchor.SetComponent(i, center.Component(i)-offset)
				}
				hs.handles = append(hs.handles, h)
			}
		}
	}
}

// Reposition refreshes handle and anchor positions from the live box
// without rebuilding handle identity. Used during a drag; a full
// Rebuild runs on release.
func (hs *HandleSet) Reposition() {
	if len(hs.handles) == 0 {
		return
	}
	hs.tr = hs.trFrame()
	hs.trInv = hs.tr.Inverse()
	hs.box = hs.target.BoundsInFrame(hs.trInv)
	if !hs.box.IsFinite() {
		hs.handles = hs.handles[:0]
		return
	}
	center := hs.box.Center()
	half := hs.box.Size().MulScalar(0.5)
	for i := range hs.handles {
		h := &hs.handles[i]
		for axis := 0; axis < 3; axis++ {
			offset := half.Component(axis) * float32(h.Selector[axis])
			h.Local = h.Local.SetComponent(axis, center.Component(axis)+offset)
			h.Anchor = h.Anchor.SetComponent(axis, center.Component(axis)-offset)
		}
	}
}

func kindForSelector(sel [3]int) HandleKind {
	nonZero := 0
	for _, s := range sel {
		if s != 0 {
			nonZero++
		}
	}
	switch nonZero {
	case 3:
		return HandleCorner
	case 2:
		return HandleEdge
	case 1:
		return HandleFace
	}
	return HandleCenter
}

func (hs *HandleSet) Target() Manipulable {
	return hs.target
}

func (hs *HandleSet) Handles() []Handle {
	return hs.handles
}

func (hs *HandleSet) Empty() bool {
	return len(hs.handles) == 0
}

func (hs *HandleSet) Box() math.Extents3D {
	return hs.box
}

// WorldPosition maps a handle's TR-frame position into world space.
func (hs *HandleSet) WorldPosition(h Handle) math.Vec3 {
	return h.Local.Transform(hs.tr)
}

// FindBySelector returns the handle at the given box position.
func (hs *HandleSet) FindBySelector(sel [3]int) (Handle, bool) {
	for _, h := range hs.handles {
		if h.Selector == sel {
			return h, true
		}
	}
	return Handle{}, false
}
