package scene

import (
	"github.com/spatialworks/maquette/engine/math"
)

// BoundsInFrame aggregates the mesh boxes of a node and its visible
// descendants, each projected through its own world matrix and then
// into the given frame (worldToFrame is typically an inverted TR
// matrix, or identity for world-space bounds). Nodes without meshes
// contribute nothing; if nothing contributes, the result is not
// finite.
func (g *Graph) BoundsInFrame(id NodeID, worldToFrame math.Mat4) math.Extents3D {
	out := math.NewExtents3DEmpty()
	g.accumulateBounds(id, worldToFrame, &out)
	return out
}

func (g *Graph) accumulateBounds(id NodeID, worldToFrame math.Mat4, out *math.Extents3D) {
	if !g.Alive(id) || !g.nodes[id].Visible {
		return
	}
	n := &g.nodes[id]
	if n.HasMesh {
		toFrame := g.WorldMatrix(id).Mul(worldToFrame)
		*out = out.Merge(n.MeshBounds.Transform(toFrame))
	}
	for _, c := range n.Children {
		g.accumulateBounds(c, worldToFrame, out)
	}
}

// WorldBounds returns the aggregated world-space box of the subtree.
func (g *Graph) WorldBounds(id NodeID) math.Extents3D {
	return g.BoundsInFrame(id, math.NewMat4Identity())
}

// TRMatrix returns the node's world rotation and translation with the
// scale stripped out. Handle geometry lives in this frame so it is not
// distorted by the node's own non-uniform scale.
func (g *Graph) TRMatrix(id NodeID) math.Mat4 {
	pos, rot, _ := g.WorldMatrix(id).Decompose()
	return math.NewMat4TR(pos, rot)
}
