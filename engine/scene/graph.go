package scene

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/math"
)

// Graph owns the scene as an arena of nodes addressed by stable ids.
// The editor never creates or destroys what a node represents, it only
// reads and writes transforms; node lifetime itself is managed here.
type Graph struct {
	nodes []Node
	free  []NodeID
}

func NewGraph() *Graph {
	return &Graph{}
}

// Spawn adds a node under parent (InvalidNodeID for a root) and
// returns its id.
func (g *Graph) Spawn(name string, parent NodeID) NodeID {
	n := Node{
		UUID:       core.IdentifierAcquire(),
		Name:       name,
		Visible:    true,
		Rotation:   math.NewQuatIdentity(),
		Scale:      math.NewVec3One(),
		Parent:     InvalidNodeID,
		alive:      true,
		worldDirty: true,
	}

	var id NodeID
	if len(g.free) > 0 {
		id = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		g.nodes[id] = n
	} else {
		id = NodeID(len(g.nodes))
		g.nodes = append(g.nodes, n)
	}

	if parent != InvalidNodeID && g.Alive(parent) {
		g.nodes[id].Parent = parent
		g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	}
	return id
}

// Remove deletes a node and its whole subtree.
func (g *Graph) Remove(id NodeID) {
	if !g.Alive(id) {
		return
	}
	parent := g.nodes[id].Parent
	if parent != InvalidNodeID && g.Alive(parent) {
		siblings := g.nodes[parent].Children
		for i, c := range siblings {
			if c == id {
				g.nodes[parent].Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	g.removeSubtree(id)
}

func (g *Graph) removeSubtree(id NodeID) {
	for _, c := range g.nodes[id].Children {
		g.removeSubtree(c)
	}
	g.nodes[id] = Node{Parent: InvalidNodeID}
	g.free = append(g.free, id)
}

// Alive reports whether id addresses a live node.
func (g *Graph) Alive(id NodeID) bool {
	return id != InvalidNodeID && int(id) < len(g.nodes) && g.nodes[id].alive
}

// Node returns a read-only view of the node. Transform writes must go
// through the setter methods so world caches invalidate.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.Alive(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Ref returns a NodeRef implementing Transformable and Boundable.
func (g *Graph) Ref(id NodeID) NodeRef {
	return NodeRef{graph: g, id: id}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes) - len(g.free)
}

// Each visits every live node id in arena order.
func (g *Graph) Each(fn func(NodeID)) {
	for i := range g.nodes {
		if g.nodes[i].alive {
			fn(NodeID(i))
		}
	}
}

// Roots returns the ids of all parentless live nodes in arena order.
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	g.Each(func(id NodeID) {
		if g.nodes[id].Parent == InvalidNodeID {
			roots = append(roots, id)
		}
	})
	return roots
}

// FindByName returns the first live node with the given name.
func (g *Graph) FindByName(name string) (NodeID, bool) {
	for i := range g.nodes {
		if g.nodes[i].alive && g.nodes[i].Name == name {
			return NodeID(i), true
		}
	}
	return InvalidNodeID, false
}

func (g *Graph) SetPosition(id NodeID, p math.Vec3) {
	if !g.Alive(id) {
		return
	}
	g.nodes[id].Position = p
	g.markDirty(id)
}

func (g *Graph) SetRotation(id NodeID, q math.Quaternion) {
	if !g.Alive(id) {
		return
	}
	g.nodes[id].Rotation = q
	g.markDirty(id)
}

func (g *Graph) SetScale(id NodeID, s math.Vec3) {
	if !g.Alive(id) {
		return
	}
	g.nodes[id].Scale = s
	g.markDirty(id)
}

// SetMeshBounds attaches a mesh-local bounding box to the node, making
// it contribute to aggregated bounds.
func (g *Graph) SetMeshBounds(id NodeID, bounds math.Extents3D) {
	if !g.Alive(id) {
		return
	}
	g.nodes[id].MeshBounds = bounds
	g.nodes[id].HasMesh = true
}

func (g *Graph) SetVisible(id NodeID, visible bool) {
	if !g.Alive(id) {
		return
	}
	g.nodes[id].Visible = visible
}

func (g *Graph) markDirty(id NodeID) {
	g.nodes[id].worldDirty = true
	for _, c := range g.nodes[id].Children {
		if g.Alive(c) {
			g.markDirty(c)
		}
	}
}

// WorldMatrix returns the node's cached child-to-world matrix.
func (g *Graph) WorldMatrix(id NodeID) math.Mat4 {
	if !g.Alive(id) {
		return math.NewMat4Identity()
	}
	n := &g.nodes[id]
	if n.worldDirty {
		local := math.NewMat4TRS(n.Position, n.Rotation, n.Scale)
		if n.Parent != InvalidNodeID && g.Alive(n.Parent) {
			n.world = local.Mul(g.WorldMatrix(n.Parent))
		} else {
			n.world = local
		}
		n.worldDirty = false
	}
	return n.world
}

// ParentWorldMatrix returns the world matrix of the node's parent, or
// identity for roots.
func (g *Graph) ParentWorldMatrix(id NodeID) math.Mat4 {
	if !g.Alive(id) {
		return math.NewMat4Identity()
	}
	p := g.nodes[id].Parent
	if p == InvalidNodeID || !g.Alive(p) {
		return math.NewMat4Identity()
	}
	return g.WorldMatrix(p)
}

// SetWorldMatrix writes a world matrix back to the node by converting
// it into the node's local frame through the parent chain.
func (g *Graph) SetWorldMatrix(id NodeID, world math.Mat4) {
	if !g.Alive(id) {
		return
	}
	local := world.Mul(g.ParentWorldMatrix(id).Inverse())
	pos, rot, scale := local.Decompose()
	n := &g.nodes[id]
	n.Position = pos
	n.Rotation = rot
	n.Scale = scale
	g.markDirty(id)
}

// WorldPosition returns the node's origin in world space.
func (g *Graph) WorldPosition(id NodeID) math.Vec3 {
	return g.WorldMatrix(id).Translation()
}

// Duplicate deep-copies a node and its subtree next to the original
// and returns the new root's id. Copies get fresh UUIDs.
func (g *Graph) Duplicate(id NodeID) (NodeID, error) {
	if !g.Alive(id) {
		return InvalidNodeID, fmt.Errorf("duplicate: node %d is not alive", id)
	}
	src := g.nodes[id]
	dup := g.Spawn(src.Name+".copy", src.Parent)

	var n Node
	if err := copier.CopyWithOption(&n, &src, copier.Option{DeepCopy: true}); err != nil {
		g.Remove(dup)
		return InvalidNodeID, fmt.Errorf("duplicate: %w", err)
	}
	// copier only touches exported fields; identity and arena state
	// stay with the freshly spawned slot.
	n.UUID = g.nodes[dup].UUID
	n.Name = g.nodes[dup].Name
	n.Parent = g.nodes[dup].Parent
	n.Children = nil
	n.alive = true
	n.worldDirty = true
	g.nodes[dup] = n

	for _, c := range src.Children {
		childDup, err := g.Duplicate(c)
		if err != nil {
			g.Remove(dup)
			return InvalidNodeID, err
		}
		g.Reparent(childDup, dup)
	}
	return dup, nil
}

// Reparent moves a node under a new parent, keeping its local
// transform (its world placement may change).
func (g *Graph) Reparent(id, newParent NodeID) {
	if !g.Alive(id) || id == newParent {
		return
	}
	old := g.nodes[id].Parent
	if old != InvalidNodeID && g.Alive(old) {
		siblings := g.nodes[old].Children
		for i, c := range siblings {
			if c == id {
				g.nodes[old].Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	g.nodes[id].Parent = InvalidNodeID
	if newParent != InvalidNodeID && g.Alive(newParent) {
		g.nodes[id].Parent = newParent
		g.nodes[newParent].Children = append(g.nodes[newParent].Children, id)
	}
	g.markDirty(id)
}
