package scene

import (
	"github.com/spatialworks/maquette/engine/math"
)

// NodeID is a stable index into the graph's node arena.
type NodeID uint32

// InvalidNodeID marks "no node"; roots carry it as their parent.
const InvalidNodeID NodeID = 0xFFFFFFFF

// Node is one entry in the arena. Parent and children are stored as
// indices so the graph holds no pointer cycles and snapshots can
// serialize the arena directly. Transform fields are written through
// the Graph (or a NodeRef) so the cached world matrix stays coherent.
type Node struct {
	UUID    string
	Name    string
	Visible bool

	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3

	// MeshBounds is the node's own mesh-local bounding box. HasMesh is
	// false for pure grouping nodes, which contribute no bounds.
	MeshBounds math.Extents3D
	HasMesh    bool

	Parent   NodeID
	Children []NodeID

	alive      bool
	worldDirty bool
	world      math.Mat4
}

// Transformable is the capability the editor needs to move something:
// local TRS access plus world-matrix get/set resolved through the
// owner's parent chain.
type Transformable interface {
	LocalPosition() math.Vec3
	LocalRotation() math.Quaternion
	LocalScale() math.Vec3
	SetLocalPosition(math.Vec3)
	SetLocalRotation(math.Quaternion)
	SetLocalScale(math.Vec3)
	WorldMatrix() math.Mat4
	SetWorldMatrix(math.Mat4)
	ParentWorldMatrix() math.Mat4
}

// Boundable is the capability the editor needs to measure something:
// its aggregated bounds expressed in an arbitrary frame.
type Boundable interface {
	// BoundsInFrame returns the axis-aligned box of all visible mesh
	// descendants (the node included) with worldToFrame applied. The
	// result is not finite when nothing contributes bounds.
	BoundsInFrame(worldToFrame math.Mat4) math.Extents3D
	// WorldBounds is BoundsInFrame with the identity frame.
	WorldBounds() math.Extents3D
}

// NodeRef couples a node id with its graph and implements the
// capability interfaces. It is a small value, fine to copy.
type NodeRef struct {
	graph *Graph
	id    NodeID
}

func (r NodeRef) ID() NodeID { return r.id }

func (r NodeRef) Valid() bool {
	return r.graph != nil && r.graph.Alive(r.id)
}

func (r NodeRef) LocalPosition() math.Vec3 {
	return r.graph.nodes[r.id].Position
}

func (r NodeRef) LocalRotation() math.Quaternion {
	return r.graph.nodes[r.id].Rotation
}

func (r NodeRef) LocalScale() math.Vec3 {
	return r.graph.nodes[r.id].Scale
}

func (r NodeRef) SetLocalPosition(p math.Vec3) {
	r.graph.SetPosition(r.id, p)
}

func (r NodeRef) SetLocalRotation(q math.Quaternion) {
	r.graph.SetRotation(r.id, q)
}

func (r NodeRef) SetLocalScale(s math.Vec3) {
	r.graph.SetScale(r.id, s)
}

func (r NodeRef) WorldMatrix() math.Mat4 {
	return r.graph.WorldMatrix(r.id)
}

func (r NodeRef) SetWorldMatrix(m math.Mat4) {
	r.graph.SetWorldMatrix(r.id, m)
}

func (r NodeRef) ParentWorldMatrix() math.Mat4 {
	return r.graph.ParentWorldMatrix(r.id)
}

func (r NodeRef) BoundsInFrame(worldToFrame math.Mat4) math.Extents3D {
	return r.graph.BoundsInFrame(r.id, worldToFrame)
}

func (r NodeRef) WorldBounds() math.Extents3D {
	return r.graph.BoundsInFrame(r.id, math.NewMat4Identity())
}
