package scene

import (
	"testing"

	"github.com/spatialworks/maquette/engine/math"
)

const testEpsilon = 1e-4

func unitBox() math.Extents3D {
	return math.NewExtents3D(math.NewVec3(-0.5, -0.5, -0.5), math.NewVec3(0.5, 0.5, 0.5))
}

func TestSpawnAndRemove(t *testing.T) {
	g := NewGraph()
	a := g.Spawn("a", InvalidNodeID)
	b := g.Spawn("b", a)
	c := g.Spawn("c", b)

	if g.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.Len())
	}
	if n, _ := g.Node(b); n.Parent != a {
		t.Errorf("expected b's parent to be a")
	}

	g.Remove(b)
	if g.Alive(b) || g.Alive(c) {
		t.Error("removing b should remove its subtree")
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 node left, got %d", g.Len())
	}

	// Freed slots are reused, ids stay in range.
	d := g.Spawn("d", a)
	if !g.Alive(d) {
		t.Error("spawn after remove should yield a live node")
	}
}

func TestWorldMatrixParentChain(t *testing.T) {
	g := NewGraph()
	parent := g.Spawn("parent", InvalidNodeID)
	child := g.Spawn("child", parent)

	g.SetPosition(parent, math.NewVec3(10, 0, 0))
	g.SetRotation(parent, math.NewQuatFromAxisAngle(math.NewVec3(0, 0, 1), math.DegToRad(90)))
	g.SetPosition(child, math.NewVec3(1, 0, 0))

	// The child's local +X offset rotates into parent +Y.
	got := g.WorldPosition(child)
	if want := math.NewVec3(10, 1, 0); !got.Compare(want, testEpsilon) {
		t.Errorf("expected child at %v, got %v", want, got)
	}

	// Moving the parent dirties the child's cache.
	g.SetPosition(parent, math.NewVec3(20, 0, 0))
	got = g.WorldPosition(child)
	if want := math.NewVec3(20, 1, 0); !got.Compare(want, testEpsilon) {
		t.Errorf("after parent move expected %v, got %v", want, got)
	}
}

func TestSetWorldMatrixRoundTrip(t *testing.T) {
	g := NewGraph()
	parent := g.Spawn("parent", InvalidNodeID)
	child := g.Spawn("child", parent)
	g.SetPosition(parent, math.NewVec3(5, 0, 0))
	g.SetRotation(parent, math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(45)))

	want := math.NewMat4TRS(
		math.NewVec3(1, 2, 3),
		math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.DegToRad(30)),
		math.NewVec3(2, 1, 1),
	)
	g.SetWorldMatrix(child, want)
	got := g.WorldMatrix(child)

	p := math.NewVec3(0.3, -0.7, 1.1)
	if !p.Transform(got).Compare(p.Transform(want), 1e-3) {
		t.Errorf("world matrix round trip diverged: %v vs %v", p.Transform(got), p.Transform(want))
	}
}

func TestWorldBoundsAggregation(t *testing.T) {
	g := NewGraph()
	root := g.Spawn("root", InvalidNodeID)
	a := g.Spawn("a", root)
	b := g.Spawn("b", root)
	g.SetMeshBounds(a, unitBox())
	g.SetMeshBounds(b, unitBox())
	g.SetPosition(a, math.NewVec3(-2, 0, 0))
	g.SetPosition(b, math.NewVec3(2, 0, 0))

	bounds := g.WorldBounds(root)
	if !bounds.IsFinite() {
		t.Fatal("expected finite bounds")
	}
	if got, want := bounds.Min, math.NewVec3(-2.5, -0.5, -0.5); !got.Compare(want, testEpsilon) {
		t.Errorf("min: expected %v, got %v", want, got)
	}
	if got, want := bounds.Max, math.NewVec3(2.5, 0.5, 0.5); !got.Compare(want, testEpsilon) {
		t.Errorf("max: expected %v, got %v", want, got)
	}

	// Hidden children stop contributing.
	g.SetVisible(b, false)
	bounds = g.WorldBounds(root)
	if got, want := bounds.Max, math.NewVec3(-1.5, 0.5, 0.5); !got.Compare(want, testEpsilon) {
		t.Errorf("after hide: expected max %v, got %v", want, got)
	}
}

func TestWorldBoundsWithoutMeshesIsNotFinite(t *testing.T) {
	g := NewGraph()
	root := g.Spawn("empty", InvalidNodeID)
	if g.WorldBounds(root).IsFinite() {
		t.Error("bounds of a meshless subtree should not be finite")
	}
}

func TestBoundsInTRFrameIgnoresRotationKeepsScale(t *testing.T) {
	g := NewGraph()
	id := g.Spawn("box", InvalidNodeID)
	g.SetMeshBounds(id, unitBox())
	g.SetScale(id, math.NewVec3(4, 1, 1))
	g.SetRotation(id, math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(90)))
	g.SetPosition(id, math.NewVec3(7, 0, 0))

	box := g.BoundsInFrame(id, g.TRMatrix(id).Inverse())
	// Scale is baked in, orientation and translation are not.
	if got, want := box.Size(), math.NewVec3(4, 1, 1); !got.Compare(want, testEpsilon) {
		t.Errorf("TR-frame size: expected %v, got %v", want, got)
	}
	if got := box.Center(); !got.Compare(math.NewVec3Zero(), testEpsilon) {
		t.Errorf("TR-frame center: expected origin, got %v", got)
	}
}

func TestDuplicateSubtree(t *testing.T) {
	g := NewGraph()
	root := g.Spawn("root", InvalidNodeID)
	child := g.Spawn("child", root)
	g.SetMeshBounds(root, unitBox())
	g.SetPosition(root, math.NewVec3(1, 2, 3))
	g.SetPosition(child, math.NewVec3(0, 1, 0))

	dup, err := g.Duplicate(root)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	dn, ok := g.Node(dup)
	if !ok {
		t.Fatal("duplicate should be alive")
	}
	rn, _ := g.Node(root)
	if dn.UUID == rn.UUID {
		t.Error("duplicate must get a fresh UUID")
	}
	if !dn.Position.Compare(rn.Position, testEpsilon) {
		t.Error("duplicate should keep the transform")
	}
	if len(dn.Children) != 1 {
		t.Fatalf("expected 1 duplicated child, got %d", len(dn.Children))
	}
	if g.Len() != 4 {
		t.Errorf("expected 4 nodes, got %d", g.Len())
	}
}
