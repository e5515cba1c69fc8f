package editor

import (
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

// Selection is an ordered set of scene nodes. With one member the
// session drives a HandleSet, with two or more a MultiSelectPivot.
type Selection struct {
	objects []scene.NodeID
	active  scene.NodeID
}

func NewSelection() *Selection {
	return &Selection{active: scene.InvalidNodeID}
}

func (s *Selection) Objects() []scene.NodeID {
	return s.objects
}

func (s *Selection) Active() scene.NodeID {
	return s.active
}

func (s *Selection) Count() int {
	return len(s.objects)
}

func (s *Selection) Contains(id scene.NodeID) bool {
	for _, o := range s.objects {
		if o == id {
			return true
		}
	}
	return false
}

func (s *Selection) SelectSingle(id scene.NodeID) {
	s.objects = s.objects[:0]
	s.objects = append(s.objects, id)
	s.active = id
}

// Toggle adds the node to the selection, or removes it when already
// present. The active object follows the most recent addition.
func (s *Selection) Toggle(id scene.NodeID) {
	for i, o := range s.objects {
		if o == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			if s.active == id {
				s.active = scene.InvalidNodeID
				if len(s.objects) > 0 {
					s.active = s.objects[len(s.objects)-1]
				}
			}
			return
		}
	}
	s.objects = append(s.objects, id)
	s.active = id
}

func (s *Selection) Clear() {
	s.objects = s.objects[:0]
	s.active = scene.InvalidNodeID
}

// Prune drops members that are no longer alive in the graph.
func (s *Selection) Prune(g *scene.Graph) {
	kept := s.objects[:0]
	for _, o := range s.objects {
		if g.Alive(o) {
			kept = append(kept, o)
		}
	}
	s.objects = kept
	if !g.Alive(s.active) {
		s.active = scene.InvalidNodeID
		if len(s.objects) > 0 {
			s.active = s.objects[len(s.objects)-1]
		}
	}
}

// Centroid is the mean of member world positions, used to place the
// multi-select pivot.
func (s *Selection) Centroid(g *scene.Graph) math.Vec3 {
	if len(s.objects) == 0 {
		return math.NewVec3Zero()
	}
	sum := math.NewVec3Zero()
	for _, o := range s.objects {
		sum = sum.Add(g.WorldPosition(o))
	}
	return sum.MulScalar(1.0 / float32(len(s.objects)))
}
