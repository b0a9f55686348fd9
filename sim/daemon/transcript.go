package daemon

import (
	"fmt"
	"io"
	"strings"
)

// Session is one vtysh invocation on a node.
type Session struct {
	Node     int
	Commands []string
}

func (s Session) String() string {
	return fmt.Sprintf("node %d: %s", s.Node, strings.Join(s.Commands, " ; "))
}

// Transcript keeps every session issued, in order.
type Transcript struct {
	Sessions []Session
}

// NewTranscript creates an empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{Sessions: make([]Session, 0)}
}

// Record appends a session. Safe on a nil Transcript.
func (t *Transcript) Record(node int, cmds []string) {
	if t == nil {
		return
	}
	t.Sessions = append(t.Sessions, Session{Node: node, Commands: append([]string(nil), cmds...)})
}

// ForNode returns the sessions issued on node.
func (t *Transcript) ForNode(node int) []Session {
	var out []Session
	for _, s := range t.Sessions {
		if s.Node == node {
			out = append(out, s)
		}
	}
	return out
}

// WriteTo writes one session per line.
func (t *Transcript) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, s := range t.Sessions {
		m, err := fmt.Fprintln(w, s.String())
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
