package daemon

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultQueueSize bounds the sessions an ExecRunner holds before rejecting.
const DefaultQueueSize = 256

// ExecRunner runs vtysh sessions as child processes on a worker goroutine.
// Run only enqueues, so the event loop never waits on the routing daemon.
type ExecRunner struct {
	binary    string
	pathspace string
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	queue  chan Session
	done   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	failures int
	runs     int
}

// NewExecRunner starts a runner for the vtysh binary. When pathspace is set,
// node n is addressed with "-N <pathspace><n>".
func NewExecRunner(binary, pathspace string, queueSize int, timeout time.Duration) *ExecRunner {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &ExecRunner{
		binary:    binary,
		pathspace: pathspace,
		timeout:   timeout,
		queue:     make(chan Session, queueSize),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
	go r.loop()
	return r
}

// Run enqueues a session without waiting for it to execute.
func (r *ExecRunner) Run(node int, cmds []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	select {
	case r.queue <- Session{Node: node, Commands: append([]string(nil), cmds...)}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Args returns the vtysh argument vector for a session.
func (r *ExecRunner) Args(s Session) []string {
	args := make([]string, 0, 2*len(s.Commands)+2)
	if r.pathspace != "" {
		args = append(args, "-N", fmt.Sprintf("%s%d", r.pathspace, s.Node))
	}
	for _, c := range s.Commands {
		args = append(args, "-c", c)
	}
	return args
}

func (r *ExecRunner) loop() {
	defer close(r.done)
	for s := range r.queue {
		r.exec(s)
	}
}

func (r *ExecRunner) exec(s Session) {
	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, r.binary, r.Args(s)...).CombinedOutput()
	r.mu.Lock()
	r.runs++
	if err != nil {
		r.failures++
	}
	r.mu.Unlock()
	if err != nil {
		logrus.Errorf("vtysh on node %d failed: %v (%s)", s.Node, err, out)
	}
}

// Close stops accepting sessions, waits for the queued ones to finish and
// stops the worker.
func (r *ExecRunner) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()
	<-r.done
	r.cancel()
	return nil
}

// Stats returns how many sessions ran and how many of them failed.
func (r *ExecRunner) Stats() (runs, failures int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs, r.failures
}
