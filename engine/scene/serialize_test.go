package scene

import (
	"testing"

	"github.com/spatialworks/maquette/engine/math"
)

func TestSerializeRoundTrip(t *testing.T) {
	g := NewGraph()
	root := g.Spawn("root", InvalidNodeID)
	child := g.Spawn("child", root)
	g.SetMeshBounds(child, unitBox())
	g.SetPosition(root, math.NewVec3(1, 2, 3))
	g.SetRotation(child, math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(30)))
	g.SetScale(child, math.NewVec3(2, 2, 2))
	g.SetVisible(child, false)

	data, err := Serialize(g)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	g2, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if g2.Len() != g.Len() {
		t.Fatalf("expected %d nodes, got %d", g.Len(), g2.Len())
	}
	c2, ok := g2.FindByName("child")
	if !ok {
		t.Fatal("child missing after round trip")
	}
	n, _ := g2.Node(c2)
	orig, _ := g.Node(child)
	if n.UUID != orig.UUID {
		t.Error("UUIDs must survive the round trip")
	}
	if n.Visible {
		t.Error("visibility must survive the round trip")
	}
	if !n.Scale.Compare(orig.Scale, testEpsilon) || !n.Rotation.Compare(orig.Rotation, testEpsilon) {
		t.Error("transform must survive the round trip")
	}
	if !n.HasMesh || !n.MeshBounds.Min.Compare(orig.MeshBounds.Min, testEpsilon) {
		t.Error("mesh bounds must survive the round trip")
	}
	r2, _ := g2.FindByName("root")
	if p, _ := g2.Node(c2); p.Parent != r2 {
		t.Error("hierarchy must survive the round trip")
	}
}

func TestDeserializeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"wrong version", `{"Version": 99, "Nodes": []}`},
		{"overflowing bounds", `{"Version": 1, "Nodes": [{"Name": "n", "Visible": true,
			"Scale": {"X": 1, "Y": 1, "Z": 1},
			"Bounds": {"Min": {"X": 0, "Y": 0, "Z": 0}, "Max": {"X": 1e99, "Y": 0, "Z": 0}}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Deserialize([]byte(tc.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	g := NewGraph()
	a := g.Spawn("a", InvalidNodeID)
	g.Spawn("b", a)
	one, err := Serialize(g)
	if err != nil {
		t.Fatal(err)
	}
	two, err := Serialize(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(one) != string(two) {
		t.Error("serializing an unchanged scene must be byte-stable")
	}
}
