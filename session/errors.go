// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrNotRunning        = errors.New("session is not running")
	ErrClosed            = errors.New("session is closed")
	ErrUnknownCommand    = errors.New("unknown session command")
	ErrNilEndpoint       = errors.New("start requires a source and a sink")

	// ErrAborted is the reason handed to the source and sink when a
	// pipeline is stopped by Abort or Close.
	ErrAborted = errors.New("session aborted")
)

// ProcessingError reports a transform failure on a specific frame.
type ProcessingError struct {
	Frame int64
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing frame %d: %v", e.Frame, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
