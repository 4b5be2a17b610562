package env

import (
	"errors"
	"fmt"
)

// ErrNoEpisode is returned by Step/Observe-adjacent calls before the
// first Reset has bound a series split.
var ErrNoEpisode = errors.New("no active episode: call Reset first")

// ConfigurationError reports an unsupported observation-feature
// combination at construction time.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// InvalidActionError reports an action outside the discrete action space.
type InvalidActionError struct {
	Action Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %d (want 0..%d)", int(e.Action), NumActions-1)
}

// OutOfRangeError reports a Step past the usable end of the active
// split. The reference silently read out of bounds here; this port
// fails instead, before touching any state.
type OutOfRangeError struct {
	Cursor int
	Limit  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cursor %d past end of episode (limit %d)", e.Cursor, e.Limit)
}
