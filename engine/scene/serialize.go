package scene

import (
	"encoding/json"
	"fmt"

	"github.com/spatialworks/maquette/engine/math"
)

type vec3JSON struct {
	X, Y, Z float32
}

type quatJSON struct {
	X, Y, Z, W float32
}

type boundsJSON struct {
	Min vec3JSON
	Max vec3JSON
}

type nodeJSON struct {
	UUID     string
	Name     string
	Visible  bool
	Position vec3JSON
	Rotation quatJSON
	Scale    vec3JSON
	Bounds   *boundsJSON `json:",omitempty"`
	Children []nodeJSON  `json:",omitempty"`
}

type sceneJSON struct {
	Version int
	Nodes   []nodeJSON
}

// Serialize encodes the whole graph as a JSON blob. Traversal is
// preorder from the roots so parent placement is restored before
// children on load.
func Serialize(g *Graph) ([]byte, error) {
	js := sceneJSON{Version: 1}
	for _, root := range g.Roots() {
		js.Nodes = append(js.Nodes, g.nodeToJSON(root))
	}
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func (g *Graph) nodeToJSON(id NodeID) nodeJSON {
	n := g.nodes[id]
	out := nodeJSON{
		UUID:     n.UUID,
		Name:     n.Name,
		Visible:  n.Visible,
		Position: vec3ToJSON(n.Position),
		Rotation: quatJSON{n.Rotation.X, n.Rotation.Y, n.Rotation.Z, n.Rotation.W},
		Scale:    vec3ToJSON(n.Scale),
	}
	if n.HasMesh {
		out.Bounds = &boundsJSON{
			Min: vec3ToJSON(n.MeshBounds.Min),
			Max: vec3ToJSON(n.MeshBounds.Max),
		}
	}
	for _, c := range n.Children {
		if g.Alive(c) {
			out.Children = append(out.Children, g.nodeToJSON(c))
		}
	}
	return out
}

// Deserialize decodes a blob into a fresh graph. The incoming scene is
// fully built before being returned, so a parse failure can never
// leave a caller with a half-restored scene.
func Deserialize(data []byte) (*Graph, error) {
	var js sceneJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("unmarshal scene: %w", err)
	}
	if js.Version != 1 {
		return nil, fmt.Errorf("unsupported scene version %d", js.Version)
	}

	g := NewGraph()
	for i := range js.Nodes {
		if err := g.nodeFromJSON(&js.Nodes[i], InvalidNodeID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) nodeFromJSON(js *nodeJSON, parent NodeID) error {
	id := g.Spawn(js.Name, parent)
	n := &g.nodes[id]
	if js.UUID != "" {
		n.UUID = js.UUID
	}
	n.Visible = js.Visible
	n.Position = vec3FromJSON(js.Position)
	n.Rotation = math.Quaternion{X: js.Rotation.X, Y: js.Rotation.Y, Z: js.Rotation.Z, W: js.Rotation.W}
	n.Scale = vec3FromJSON(js.Scale)
	if js.Bounds != nil {
		bounds := math.NewExtents3D(vec3FromJSON(js.Bounds.Min), vec3FromJSON(js.Bounds.Max))
		if !bounds.IsFinite() {
			return fmt.Errorf("node %q: non-finite bounds", js.Name)
		}
		n.MeshBounds = bounds
		n.HasMesh = true
	}
	for i := range js.Children {
		if err := g.nodeFromJSON(&js.Children[i], id); err != nil {
			return err
		}
	}
	return nil
}

func vec3ToJSON(v math.Vec3) vec3JSON {
	return vec3JSON{v.X, v.Y, v.Z}
}

func vec3FromJSON(v vec3JSON) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
