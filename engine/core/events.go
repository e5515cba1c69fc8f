package core

import (
	"sync"

	"github.com/spatialworks/maquette/engine/containers"
)

type EventCode uint16

// System internal event codes. Application should use codes beyond 255.
const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed or released. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED  EventCode = 0x02
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed or released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED  EventCode = 0x04
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is *MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data is *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// The selection set changed. Data is editor-defined.
	EVENT_CODE_SELECTION_CHANGED EventCode = 0x20

	// Scene content changed (a transform write, node added/removed,
	// snapshot restored). Drives outline refresh and autosave.
	EVENT_CODE_SCENE_CHANGED EventCode = 0x21

	// A drag applied a transform to one or more nodes.
	EVENT_CODE_TRANSFORM_EDITED EventCode = 0x22

	// A snap pair became active. Data is editor-defined face info.
	EVENT_CODE_SNAP_HIGHLIGHT EventCode = 0x23

	// No snap pair is active anymore; visuals should clear.
	EVENT_CODE_SNAP_CLEARED EventCode = 0x24

	// The scene file changed on disk outside the editor. Enqueued by
	// the store watcher goroutine, handled on the engine tick.
	EVENT_CODE_SCENE_FILE_CHANGED EventCode = 0x25

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FnOnEvent func(context EventContext)

const maxQueuedEvents = 1024

type eventSystemState struct {
	registered map[EventCode][]FnOnEvent

	// queueMu guards the deferred queue: EventEnqueue may be called
	// from goroutines (the store watcher), ProcessEvents runs on the
	// engine tick.
	queueMu sync.Mutex
	queue   *containers.RingQueue[EventContext]
}

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]FnOnEvent),
			queue:      containers.NewRingQueue[EventContext](maxQueuedEvents),
		}
	})
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[EventCode][]FnOnEvent)
		eventState.queueMu.Lock()
		eventState.queue = containers.NewRingQueue[EventContext](maxQueuedEvents)
		eventState.queueMu.Unlock()
	}
	return nil
}

// EventRegister adds a listener callback for the provided code.
func EventRegister(code EventCode, onEvent FnOnEvent) {
	if eventState == nil {
		return
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
}

// EventFire dispatches an event to all listeners of its code,
// synchronously, in registration order.
func EventFire(context EventContext) {
	if eventState == nil {
		return
	}
	for _, cb := range eventState.registered[context.Type] {
		cb(context)
	}
}

// EventEnqueue defers an event until the next ProcessEvents call. When
// the backlog is full the event is dropped with a warning; deferred
// events are advisory notifications, never state.
func EventEnqueue(context EventContext) {
	if eventState == nil {
		return
	}
	eventState.queueMu.Lock()
	err := eventState.queue.Enqueue(context)
	eventState.queueMu.Unlock()
	if err != nil {
		LogWarn("event backlog full, dropping event type %d", context.Type)
	}
}

// ProcessEvents drains the deferred event queue. Called once per tick
// from the engine loop.
func ProcessEvents() {
	if eventState == nil {
		return
	}
	for {
		eventState.queueMu.Lock()
		context, err := eventState.queue.Dequeue()
		eventState.queueMu.Unlock()
		if err != nil {
			return
		}
		// Fire outside the lock so handlers may enqueue follow-ups.
		EventFire(context)
	}
}
