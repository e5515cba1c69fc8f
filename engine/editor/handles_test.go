package editor

import (
	"testing"

	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

func spawnBox(g *scene.Graph, name string, bounds math.Extents3D) scene.NodeID {
	id := g.Spawn(name, scene.InvalidNodeID)
	g.SetMeshBounds(id, bounds)
	return id
}

// rayHitting builds a ray whose plane intersection is exactly p,
// assuming p already lies on the plane.
func rayHitting(p math.Vec3, planeNormal math.Vec3) math.Ray {
	return math.NewRay(p.Add(planeNormal.MulScalar(10)), planeNormal.MulScalar(-1))
}

func testCamera() *scene.Camera {
	return scene.NewCamera(math.NewVec3(0, 0, 20), math.NewVec3Zero(), 16.0/9.0)
}

func TestBuildHandleSetCounts(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 2, 2, 2))
	hs := BuildHandleSet(g.Ref(id))

	if got := len(hs.Handles()); got != 27 {
		t.Fatalf("expected 27 handles, got %d", got)
	}
	counts := map[HandleKind]int{}
	for _, h := range hs.Handles() {
		counts[h.Kind]++
	}
	if counts[HandleCorner] != 8 || counts[HandleEdge] != 12 || counts[HandleFace] != 6 || counts[HandleCenter] != 1 {
		t.Errorf("kind counts wrong: %v", counts)
	}
}

func TestBuildHandleSetDegenerateBox(t *testing.T) {
	g := scene.NewGraph()
	id := g.Spawn("meshless", scene.InvalidNodeID)
	hs := BuildHandleSet(g.Ref(id))
	if !hs.Empty() {
		t.Errorf("a meshless node should yield zero handles, got %d", len(hs.Handles()))
	}
}

func TestHandleAnchorsOpposeSelectors(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(1, 2, 3, 2, 4, 6))
	g.SetPosition(id, math.NewVec3(5, 0, 0))
	hs := BuildHandleSet(g.Ref(id))

	for _, h := range hs.Handles() {
		center := hs.Box().Center()
		// Handle and anchor mirror each other through the box center.
		mirrored := center.MulScalar(2).Sub(h.Local)
		if !h.Anchor.Compare(mirrored, testEpsilon) {
			t.Errorf("selector %v: anchor %v is not the mirror of %v", h.Selector, h.Anchor, h.Local)
		}
		for i := 0; i < 3; i++ {
			if h.AxisMask[i] != (h.Selector[i] != 0) {
				t.Errorf("selector %v: mask %v is inconsistent", h.Selector, h.AxisMask)
			}
		}
	}
}

func TestFaceDragScalesFromAnchor(t *testing.T) {
	// A 2x2x2 box spanning [0,2]^3: dragging the +X face to x=5 must
	// produce an X scale factor of 2.5 while the -X face stays at
	// world x=0.
	g := scene.NewGraph()
	id := spawnBox(g, "box", math.NewExtents3D(math.NewVec3Zero(), math.NewVec3(2, 2, 2)))
	hs := BuildHandleSet(g.Ref(id))
	h, ok := hs.FindBySelector([3]int{1, 0, 0})
	if !ok {
		t.Fatal("missing +X face handle")
	}

	d := beginHandleDrag(hs, h, testCamera())
	ray := rayHitting(math.NewVec3(5, 1, 1), math.NewVec3(0, 0, 1))
	changed, _ := d.updateHandle(ray, 0.1, false, 0, 0)
	if !changed {
		t.Fatal("drag tick applied no change")
	}

	n, _ := g.Node(id)
	if !n.Scale.Compare(math.NewVec3(2.5, 1, 1), testEpsilon) {
		t.Errorf("expected scale (2.5,1,1), got %v", n.Scale)
	}
	bounds := g.WorldBounds(id)
	if minX := bounds.Min.X; minX < -testEpsilon || minX > testEpsilon {
		t.Errorf("-X face should stay at world x=0, got %v", minX)
	}
	if got := bounds.Max.X; got < 5-testEpsilon || got > 5+testEpsilon {
		t.Errorf("+X face should land at world x=5, got %v", got)
	}
}

func TestAnchorInvarianceUnderRotationAndScale(t *testing.T) {
	// Corner drags must keep the opposite corner fixed in world space
	// for arbitrary existing rotation and non-uniform scale.
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))
	g.SetPosition(id, math.NewVec3(3, 1, 2))
	g.SetScale(id, math.NewVec3(2, 1, 3))
	g.SetRotation(id, math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(30)).
		Mul(math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.DegToRad(20))))

	hs := BuildHandleSet(g.Ref(id))
	h, ok := hs.FindBySelector([3]int{1, 1, 1})
	if !ok {
		t.Fatal("missing corner handle")
	}
	anchorBefore := h.Anchor.Transform(g.TRMatrix(id))

	cam := testCamera()
	d := beginHandleDrag(hs, h, cam)
	// Pull the grabbed corner sideways within the drag plane.
	grab := hs.WorldPosition(h)
	target := grab.Add(math.NewVec3(1.3, 0.8, 0))
	changed, _ := d.updateHandle(rayHitting(target, math.NewVec3(0, 0, 1)), 0.1, false, 0, 0)
	if !changed {
		t.Fatal("drag tick applied no change")
	}

	rebuilt := BuildHandleSet(g.Ref(id))
	h2, _ := rebuilt.FindBySelector([3]int{1, 1, 1})
	anchorAfter := h2.Anchor.Transform(g.TRMatrix(id))
	if !anchorAfter.Compare(anchorBefore, 1e-2) {
		t.Errorf("anchor drifted: before %v, after %v", anchorBefore, anchorAfter)
	}
}

func TestMinimumExtentClamp(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", math.NewExtents3D(math.NewVec3Zero(), math.NewVec3(2, 2, 2)))
	hs := BuildHandleSet(g.Ref(id))
	h, _ := hs.FindBySelector([3]int{1, 0, 0})

	d := beginHandleDrag(hs, h, testCamera())
	// Drag the +X face onto (and past) the anchor.
	changed, _ := d.updateHandle(rayHitting(math.NewVec3(0, 1, 1), math.NewVec3(0, 0, 1)), 0.1, false, 0, 0)
	if !changed {
		t.Fatal("drag tick applied no change")
	}
	size := g.WorldBounds(id).Size()
	if size.X < 0.1-testEpsilon {
		t.Errorf("extent clamped below minimum: %v", size.X)
	}
}

func TestCenterHandleTranslatesWithSnap(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "mover", box(0, 0, 0, 1, 1, 1))
	other := spawnBox(g, "anchor", box(3, 0, 0, 1, 1, 1))

	hs := BuildHandleSet(g.Ref(id))
	h, _ := hs.FindBySelector([3]int{0, 0, 0})
	d := beginHandleDrag(hs, h, testCamera())
	d.candidates = buildSnapCandidates(g, map[scene.NodeID]bool{id: true})
	if len(d.candidates) != 1 || d.candidates[0].ID != other {
		t.Fatalf("expected the other box as the only candidate, got %v", d.candidates)
	}

	// Move to x=1.8: the face gap to the candidate is 0.2, inside the
	// enter distance, so the box lands flush at x=2.
	changed, snap := d.updateHandle(rayHitting(math.NewVec3(1.8, 0, 0), math.NewVec3(0, 0, 1)), 0.1, true, 0.3, 0.06)
	if !changed {
		t.Fatal("drag tick applied no change")
	}
	if !snap.Active() {
		t.Fatal("expected a snap")
	}
	if got := g.WorldPosition(id); !got.Compare(math.NewVec3(2, 0, 0), testEpsilon) {
		t.Errorf("expected snapped position (2,0,0), got %v", got)
	}
}

// fixedBody implements the manipulation capabilities with no scene
// graph behind them: a parentless world matrix plus a mesh-local box.
type fixedBody struct {
	world math.Mat4
	box   math.Extents3D
}

func (b *fixedBody) LocalPosition() math.Vec3 {
	p, _, _ := b.world.Decompose()
	return p
}

func (b *fixedBody) LocalRotation() math.Quaternion {
	_, r, _ := b.world.Decompose()
	return r
}

func (b *fixedBody) LocalScale() math.Vec3 {
	_, _, s := b.world.Decompose()
	return s
}

func (b *fixedBody) SetLocalPosition(p math.Vec3) {
	_, r, s := b.world.Decompose()
	b.world = math.NewMat4TRS(p, r, s)
}

func (b *fixedBody) SetLocalRotation(r math.Quaternion) {
	p, _, s := b.world.Decompose()
	b.world = math.NewMat4TRS(p, r, s)
}

func (b *fixedBody) SetLocalScale(s math.Vec3) {
	p, r, _ := b.world.Decompose()
	b.world = math.NewMat4TRS(p, r, s)
}

func (b *fixedBody) WorldMatrix() math.Mat4     { return b.world }
func (b *fixedBody) SetWorldMatrix(m math.Mat4) { b.world = m }
func (b *fixedBody) ParentWorldMatrix() math.Mat4 {
	return math.NewMat4Identity()
}

func (b *fixedBody) BoundsInFrame(worldToFrame math.Mat4) math.Extents3D {
	return b.box.Transform(b.world.Mul(worldToFrame))
}

func (b *fixedBody) WorldBounds() math.Extents3D {
	return b.BoundsInFrame(math.NewMat4Identity())
}

func TestHandleDragThroughCapabilityInterfaces(t *testing.T) {
	// The full build/drag path must work against any Transformable +
	// Boundable target, not just a graph node.
	body := &fixedBody{
		world: math.NewMat4Identity(),
		box:   math.NewExtents3D(math.NewVec3Zero(), math.NewVec3(2, 2, 2)),
	}
	hs := BuildHandleSet(body)
	if got := len(hs.Handles()); got != 27 {
		t.Fatalf("expected 27 handles, got %d", got)
	}
	h, ok := hs.FindBySelector([3]int{1, 0, 0})
	if !ok {
		t.Fatal("missing +X face handle")
	}

	d := beginHandleDrag(hs, h, testCamera())
	changed, _ := d.updateHandle(rayHitting(math.NewVec3(5, 1, 1), math.NewVec3(0, 0, 1)), 0.1, false, 0, 0)
	if !changed {
		t.Fatal("drag tick applied no change")
	}
	_, _, scl := body.world.Decompose()
	if !scl.Compare(math.NewVec3(2.5, 1, 1), testEpsilon) {
		t.Errorf("expected scale (2.5,1,1) on the stub target, got %v", scl)
	}
}

func TestRepositionFollowsLiveBox(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 2, 2, 2))
	hs := BuildHandleSet(g.Ref(id))

	g.SetScale(id, math.NewVec3(2, 1, 1))
	hs.Reposition()
	h, _ := hs.FindBySelector([3]int{1, 0, 0})
	if got := hs.WorldPosition(h); !got.Compare(math.NewVec3(2, 0, 0), testEpsilon) {
		t.Errorf("+X face handle should track the scaled box, got %v", got)
	}
}
