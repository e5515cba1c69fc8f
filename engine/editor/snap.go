package editor

import (
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"

	"github.com/chewxy/math32"
)

type Axis int

const (
	AxisNone Axis = -1
	AxisX    Axis = 0
	AxisY    Axis = 1
	AxisZ    Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "none"
}

// Face identifies one axis-aligned face of a bounding box.
type Face struct {
	Axis     Axis
	Positive bool
}

// SnapCandidate is a node's world box offered to the snap search.
type SnapCandidate struct {
	ID  scene.NodeID
	Box math.Extents3D
}

// SnapResult is the corrective translation that brings the moving
// box's matched face exactly onto the candidate's. Recomputed every
// drag-move tick; a zero-value result means no eligible pair.
type SnapResult struct {
	Delta         math.Vec3
	Axis          Axis
	Candidate     scene.NodeID
	MovingFace    Face
	CandidateFace Face
}

func (r SnapResult) Active() bool {
	return r.Axis != AxisNone
}

func noSnap() SnapResult {
	return SnapResult{Axis: AxisNone, Candidate: scene.InvalidNodeID}
}

// ComputeSnapDelta finds the candidate face pair closest to the moving
// box. For each candidate and axis both pairings are considered: the
// moving box's max face against the candidate's min face and the
// reverse. A pairing is eligible when its signed gap g satisfies
// -overlapAllowance <= g <= enterDistance, so faces may be short of
// touching by up to enterDistance or interpenetrating by up to
// overlapAllowance. The smallest absolute gap wins, ties resolved by
// candidate order then axis X<Y<Z. The function is pure: it never
// touches the scene, so callers can probe tentative positions freely.
func ComputeSnapDelta(moving math.Extents3D, candidates []SnapCandidate, enterDistance, overlapAllowance float32) SnapResult {
	best := noSnap()
	bestAbs := float32(math32.Inf(1))
	if !moving.IsFinite() {
		return best
	}

	consider := func(gap float32, delta math.Vec3, axis Axis, cand scene.NodeID, movingFace, candFace Face) {
		if math32.IsNaN(gap) || math32.IsInf(gap, 0) {
			return
		}
		if gap < -overlapAllowance || gap > enterDistance {
			return
		}
		abs := math32.Abs(gap)
		if abs >= bestAbs {
			return
		}
		bestAbs = abs
		best = SnapResult{
			Delta:         delta,
			Axis:          axis,
			Candidate:     cand,
			MovingFace:    movingFace,
			CandidateFace: candFace,
		}
	}

	for _, cand := range candidates {
		if !cand.Box.IsFinite() {
			continue
		}
		for i := 0; i < 3; i++ {
			axis := Axis(i)
			// Moving max face approaching the candidate min face.
			gap := cand.Box.Min.Component(i) - moving.Max.Component(i)
			consider(gap,
				math.NewVec3Zero().SetComponent(i, gap),
				axis, cand.ID,
				Face{Axis: axis, Positive: true},
				Face{Axis: axis, Positive: false})

			// Moving min face approaching the candidate max face.
			gap = moving.Min.Component(i) - cand.Box.Max.Component(i)
			consider(gap,
				math.NewVec3Zero().SetComponent(i, -gap),
				axis, cand.ID,
				Face{Axis: axis, Positive: false},
				Face{Axis: axis, Positive: true})
		}
	}

	if best.Active() && !best.Delta.IsFinite() {
		return noSnap()
	}
	return best
}
