package daemon

import (
	"errors"
	"fmt"
)

var (
	// ErrCommandTooLong is returned for directives over MaxCommandLength.
	ErrCommandTooLong = errors.New("command too long")
	// ErrInvalidNode is returned for negative node indices.
	ErrInvalidNode = errors.New("invalid node")
	// ErrQueueFull is returned when the exec runner cannot accept more sessions.
	ErrQueueFull = errors.New("vtysh queue full")
	// ErrClosed is returned by a runner after Close.
	ErrClosed = errors.New("vtysh runner closed")
)

// CommandError reports a session the routing daemon could not take.
type CommandError struct {
	Node    int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("vtysh on node %d (%s): %v", e.Node, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
