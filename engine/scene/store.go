package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spatialworks/maquette/engine/core"
)

// Store persists the scene graph to a JSON file. Saves requested
// during editing are serialized immediately (on the caller's tick) but
// written to disk debounced, so a burst of drag updates becomes one
// write. Optionally the file is watched for external edits.
type Store struct {
	path      string
	debounced func(f func())

	mu        sync.Mutex
	pending   []byte
	lastWrite time.Time

	watcher  *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewStore(path string, debounceWindow time.Duration) *Store {
	return &Store{
		path:      path,
		debounced: debounce.New(debounceWindow),
		done:      make(chan struct{}),
	}
}

func (s *Store) Path() string {
	return s.path
}

// Save serializes and writes immediately.
func (s *Store) Save(g *Graph) error {
	data, err := Serialize(g)
	if err != nil {
		return err
	}
	return s.write(data)
}

// RequestSave captures the scene now and schedules a debounced write
// of the latest capture. The live graph is never touched off-tick.
func (s *Store) RequestSave(g *Graph) {
	data, err := Serialize(g)
	if err != nil {
		core.LogError("autosave: serialize failed: %s", err)
		return
	}
	s.mu.Lock()
	s.pending = data
	s.mu.Unlock()
	s.debounced(s.flush)
}

func (s *Store) flush() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	s.mu.Unlock()
	if data == nil {
		return
	}
	if err := s.write(data); err != nil {
		core.LogError("autosave: %s", err)
		return
	}
	core.LogDebug("autosave: wrote %s (%d bytes)", s.path, len(data))
}

// write replaces the file atomically via a temp file rename.
func (s *Store) write(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".maquette-*.json")
	if err != nil {
		return fmt.Errorf("write scene %q: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write scene %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write scene %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write scene %q: %w", s.path, err)
	}
	s.mu.Lock()
	s.lastWrite = time.Now()
	s.mu.Unlock()
	return nil
}

// Load reads and deserializes the scene file. A missing file yields an
// empty graph.
func (s *Store) Load() (*Graph, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewGraph(), nil
		}
		return nil, fmt.Errorf("read scene %q: %w", s.path, err)
	}
	return Deserialize(data)
}

// Watch starts watching the scene file's directory and invokes
// onChange when the file is modified by someone other than this
// store. The callback runs on the watcher goroutine; callers should
// only post events from it.
func (s *Store) Watch(onChange func()) error {
	if s.isClosed {
		return errors.New("store already closed")
	}
	if s.watcher != nil {
		return errors.New("store already watching")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: atomic renames replace the file inode.
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	s.watcher = w

	go func() {
		for {
			select {
			case <-s.done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				s.mu.Lock()
				selfWrite := time.Since(s.lastWrite) < time.Second
				s.mu.Unlock()
				if selfWrite {
					continue
				}
				core.LogInfo("scene file changed on disk: %s", event.Name)
				onChange()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				core.LogWarn("scene watcher: %s", err)
			}
		}
	}()
	return nil
}

func (s *Store) Close() error {
	if s.isClosed {
		return nil
	}
	s.isClosed = true
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
