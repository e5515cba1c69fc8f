package core

import (
	"errors"
)

var (
	// ErrDragInProgress is returned when a drag session is started while
	// another one is still active.
	ErrDragInProgress = errors.New("a drag session is already in progress")
	// ErrRestoreFailed is returned when a history snapshot could not be
	// applied; the scene is left untouched.
	ErrRestoreFailed = errors.New("snapshot restore failed")
	ErrUnknown       = errors.New("unknown")
)
