package editor

import (
	"bytes"
	"testing"

	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"
)

func TestHistoryIdempotence(t *testing.T) {
	g := scene.NewGraph()
	spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))

	h := NewHistoryStack(8)
	if err := h.Push(g, "one"); err != nil {
		t.Fatal(err)
	}
	if err := h.Push(g, "two"); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 1 {
		t.Errorf("pushing an unchanged scene twice should not grow the stack, got %d entries", h.Len())
	}
}

func TestHistoryUndoExactness(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))

	h := NewHistoryStack(16)
	if err := h.Push(g, "initial"); err != nil {
		t.Fatal(err)
	}
	before := append([]byte(nil), h.CurrentData()...)

	const edits = 4
	for i := 1; i <= edits; i++ {
		g.SetPosition(id, math.NewVec3(float32(i), 0, 0))
		if err := h.Push(g, "edit"); err != nil {
			t.Fatal(err)
		}
	}
	var restored *scene.Graph
	for i := 0; i < edits; i++ {
		out, err := h.Undo()
		if err != nil {
			t.Fatal(err)
		}
		if out == nil {
			t.Fatalf("undo %d exhausted the stack early", i)
		}
		restored = out
	}

	data, err := scene.Serialize(restored)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, before) {
		t.Error("N undos after N pushes must restore the pre-edit serialization exactly")
	}
	if h.CanUndo() {
		t.Error("stack should be at its oldest entry")
	}
}

func TestHistoryRedo(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))
	h := NewHistoryStack(8)
	h.Push(g, "initial")
	g.SetPosition(id, math.NewVec3(5, 0, 0))
	h.Push(g, "moved")

	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after an undo")
	}
	redone, err := h.Redo()
	if err != nil {
		t.Fatal(err)
	}
	bid, _ := redone.FindByName("box")
	if got := redone.WorldPosition(bid); !got.Compare(math.NewVec3(5, 0, 0), testEpsilon) {
		t.Errorf("redo should restore the moved state, got %v", got)
	}
}

func TestHistoryTruncatesRedoTailOnPush(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))
	h := NewHistoryStack(8)
	h.Push(g, "initial")
	g.SetPosition(id, math.NewVec3(1, 0, 0))
	h.Push(g, "a")
	g.SetPosition(id, math.NewVec3(2, 0, 0))
	h.Push(g, "b")

	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	g.SetPosition(id, math.NewVec3(9, 0, 0))
	h.Push(g, "branch")

	if h.CanRedo() {
		t.Error("a new edit after an undo must discard the redo tail")
	}
	if h.Len() != 3 {
		t.Errorf("expected initial+a+branch, got %d entries", h.Len())
	}
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	g := scene.NewGraph()
	id := spawnBox(g, "box", box(0, 0, 0, 1, 1, 1))
	h := NewHistoryStack(3)
	for i := 0; i < 6; i++ {
		g.SetPosition(id, math.NewVec3(float32(i), 0, 0))
		if err := h.Push(g, "edit"); err != nil {
			t.Fatal(err)
		}
	}
	if h.Len() != 3 {
		t.Errorf("capacity 3 stack holds %d entries", h.Len())
	}
	// Only two undo steps remain.
	for i := 0; i < 2; i++ {
		if out, err := h.Undo(); err != nil || out == nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if h.CanUndo() {
		t.Error("oldest entries should have been evicted")
	}
}

func TestHistoryPushSkippedWhileRestoring(t *testing.T) {
	g := scene.NewGraph()
	h := NewHistoryStack(8)
	h.Push(g, "initial")
	h.restoring = true
	spawnBox(g, "late", box(0, 0, 0, 1, 1, 1))
	if err := h.Push(g, "should skip"); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 1 {
		t.Error("push during restore must not record an entry")
	}
}
