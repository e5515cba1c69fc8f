package editor

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/spatialworks/maquette/engine/core"
	"github.com/spatialworks/maquette/engine/scene"
)

// HistorySnapshot is one full-scene serialization in the undo log.
type HistorySnapshot struct {
	Data      []byte
	Hash      uint64
	Timestamp time.Time
	Reason    string
}

// HistoryStack is a bounded snapshot log. The current index partitions
// entries into undo-available (before it) and redo-available (after
// it); recording a new entry after an undo discards the redo tail.
type HistoryStack struct {
	entries   []HistorySnapshot
	index     int
	capacity  int
	restoring bool
}

func NewHistoryStack(capacity int) *HistoryStack {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryStack{capacity: capacity, index: -1}
}

func (h *HistoryStack) Len() int {
	return len(h.entries)
}

func (h *HistoryStack) CanUndo() bool {
	return h.index > 0
}

func (h *HistoryStack) CanRedo() bool {
	return h.index >= 0 && h.index < len(h.entries)-1
}

// Restoring reports whether an undo/redo restore is in flight, so
// scene-changed handlers triggered by the rebuild do not push.
func (h *HistoryStack) Restoring() bool {
	return h.restoring
}

// Push records the scene's current serialization. An entry identical
// to the one at the current index is skipped, so repeated pushes of an
// unchanged scene never grow the stack. Exceeding capacity evicts the
// oldest entry.
func (h *HistoryStack) Push(g *scene.Graph, reason string) error {
	if h.restoring {
		return nil
	}
	data, err := scene.Serialize(g)
	if err != nil {
		core.LogError("history: snapshot failed: %v", err)
		return fmt.Errorf("history snapshot: %w", err)
	}
	hash := contentHash(data)
	if h.index >= 0 {
		cur := &h.entries[h.index]
		if cur.Hash == hash && bytes.Equal(cur.Data, data) {
			return nil
		}
	}
	// Any new edit after an undo discards the redo tail.
	h.entries = h.entries[:h.index+1]
	h.entries = append(h.entries, HistorySnapshot{
		Data:      data,
		Hash:      hash,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries) - 1
	core.MetricsCountHistoryPush()
	return nil
}

// Undo rebuilds the scene from the previous snapshot and returns the
// fresh graph. The restore is all-or-nothing: a parse failure leaves
// the stack index and the caller's scene untouched.
func (h *HistoryStack) Undo() (*scene.Graph, error) {
	if !h.CanUndo() {
		return nil, nil
	}
	g, err := h.restore(h.index - 1)
	if err != nil {
		return nil, err
	}
	h.index--
	return g, nil
}

// Redo is the inverse walk, available until the next Push.
func (h *HistoryStack) Redo() (*scene.Graph, error) {
	if !h.CanRedo() {
		return nil, nil
	}
	g, err := h.restore(h.index + 1)
	if err != nil {
		return nil, err
	}
	h.index++
	return g, nil
}

func (h *HistoryStack) restore(at int) (*scene.Graph, error) {
	h.restoring = true
	defer func() { h.restoring = false }()
	g, err := scene.Deserialize(h.entries[at].Data)
	if err != nil {
		core.LogError("history: restore of %q failed: %v", h.entries[at].Reason, err)
		return nil, fmt.Errorf("%w: %v", core.ErrRestoreFailed, err)
	}
	return g, nil
}

// CurrentData exposes the serialization at the current index, mostly
// for equality checks in callers and tests.
func (h *HistoryStack) CurrentData() []byte {
	if h.index < 0 {
		return nil
	}
	return h.entries[h.index].Data
}

func contentHash(data []byte) uint64 {
	f := fnv.New64a()
	f.Write(data)
	return f.Sum64()
}
