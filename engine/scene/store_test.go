package scene

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spatialworks/maquette/engine/math"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	store := NewStore(path, 10*time.Millisecond)
	defer store.Close()

	g := NewGraph()
	id := g.Spawn("crate", InvalidNodeID)
	g.SetMeshBounds(id, unitBox())
	g.SetPosition(id, math.NewVec3(3, 0, -1))

	if err := store.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", loaded.Len())
	}
	cid, ok := loaded.FindByName("crate")
	if !ok {
		t.Fatal("crate missing after load")
	}
	if got := loaded.WorldPosition(cid); !got.Compare(math.NewVec3(3, 0, -1), testEpsilon) {
		t.Errorf("position after load: %v", got)
	}
}

func TestStoreLoadMissingFileYieldsEmptyScene(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), 10*time.Millisecond)
	defer store.Close()

	g, err := store.Load()
	if err != nil {
		t.Fatalf("Load of a missing file should not fail: %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("expected an empty scene, got %d nodes", g.Len())
	}
}
