package editor

import (
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

// MultiSelectPivot is a synthetic transform at the centroid of a
// multi-object selection. Dragging it applies one rigid delta to every
// member while each member's relative placement is preserved exactly.
// The pivot is never written into the scene.
type MultiSelectPivot struct {
	members  []scene.NodeID
	position math.Vec3
	rotation math.Quaternion

	dragging     bool
	startWorld   math.Mat4
	startInverse math.Mat4
	memberStarts []math.Mat4
}

func NewMultiSelectPivot(g *scene.Graph, members []scene.NodeID) *MultiSelectPivot {
	p := &MultiSelectPivot{
		members:  append([]scene.NodeID(nil), members...),
		rotation: math.NewQuatIdentity(),
	}
	sum := math.NewVec3Zero()
	for _, m := range p.members {
		sum = sum.Add(g.WorldPosition(m))
	}
	if len(p.members) > 0 {
		p.position = sum.MulScalar(1.0 / float32(len(p.members)))
	}
	return p
}

func (p *MultiSelectPivot) Position() math.Vec3 {
	return p.position
}

func (p *MultiSelectPivot) Members() []scene.NodeID {
	return p.members
}

func (p *MultiSelectPivot) Dragging() bool {
	return p.dragging
}

// BeginDrag snapshots the pivot's world matrix and every member's
// world matrix. Member transforms are resolved again through their own
// parent chains on each update, so members with different parents stay
// rigid relative to each other.
func (p *MultiSelectPivot) BeginDrag(g *scene.Graph) {
	p.startWorld = math.NewMat4TR(p.position, p.rotation)
	p.startInverse = p.startWorld.Inverse()
	p.memberStarts = p.memberStarts[:0]
	for _, m := range p.members {
		p.memberStarts = append(p.memberStarts, g.WorldMatrix(m))
	}
	p.dragging = true
}

// SetWorld moves the pivot to a new world transform and writes
// delta-transformed start matrices back to every member.
func (p *MultiSelectPivot) SetWorld(g *scene.Graph, world math.Mat4) {
	if !p.dragging {
		return
	}
	delta := p.startInverse.Mul(world)
	for i, m := range p.members {
		if !g.Alive(m) {
			continue
		}
		g.SetWorldMatrix(m, p.memberStarts[i].Mul(delta))
	}
	p.position = world.Translation()
}

// Translate is the common pivot drag: move by a world-space offset
// from the drag-start position.
func (p *MultiSelectPivot) Translate(g *scene.Graph, offset math.Vec3) {
	start := p.startWorld.Translation()
	p.SetWorld(g, math.NewMat4TR(start.Add(offset), p.rotation))
}

func (p *MultiSelectPivot) EndDrag() {
	p.dragging = false
	p.memberStarts = p.memberStarts[:0]
}

// CombinedWorldBounds merges all member world boxes, for snapping the
// group as one moving box.
func (p *MultiSelectPivot) CombinedWorldBounds(g *scene.Graph) math.Extents3D {
	out := math.NewExtents3DEmpty()
	for _, m := range p.members {
		if !g.Alive(m) {
			continue
		}
		b := g.WorldBounds(m)
		if b.IsFinite() {
			out = out.Merge(b)
		}
	}
	return out
}
