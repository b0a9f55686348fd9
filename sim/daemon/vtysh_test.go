package daemon

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

type recordingRunner struct {
	sessions []Session
	err      error
}

func (r *recordingRunner) Run(node int, cmds []string) error {
	r.sessions = append(r.sessions, Session{Node: node, Commands: cmds})
	return r.err
}

func TestVtysh_Unavailable_LogsSimulatedAndSucceeds(t *testing.T) {
	// GIVEN a vtysh adapter without a runner
	hook := test.NewGlobal()
	defer hook.Reset()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)
	d := NewVtysh(nil, nil, NewTranscript())

	// WHEN a link is shut down
	err := d.SetLinkState(2, 5, false)

	// THEN the call succeeds and is logged as simulated
	require.NoError(t, err)
	assert.False(t, d.Available())
	require.NotEmpty(t, hook.AllEntries())
	assert.True(t, strings.HasPrefix(hook.LastEntry().Message, "SIMULATED vtysh on node 2"))
	assert.Len(t, d.Transcript().Sessions, 1)
}

func TestVtysh_Available_DelegatesToRunner(t *testing.T) {
	r := &recordingRunner{}
	d := NewVtysh(r, nil, nil)

	require.NoError(t, d.Reconverge(3))
	require.NoError(t, d.Apply(2, route.Add(testPrefix, testNextHop, 1)))

	want := []Session{
		{Node: 3, Commands: ReconvergeCommands()},
		{Node: 2, Commands: AddRouteCommands(route.Add(testPrefix, testNextHop, 1))},
	}
	if diff := cmp.Diff(want, r.sessions); diff != "" {
		t.Errorf("sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestVtysh_RunnerFailure_ReturnsCommandError(t *testing.T) {
	// GIVEN a runner that rejects every session
	boom := errors.New("connection refused")
	d := NewVtysh(&recordingRunner{err: boom}, nil, nil)

	// WHEN a route is applied
	err := d.Apply(1, route.Delete(testPrefix, testNextHop))

	// THEN a CommandError wrapping the cause comes back
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 1, cerr.Node)
	assert.ErrorIs(t, err, boom)
}

func TestVtysh_Apply_MirrorsIntoRIBEvenWhenSimulated(t *testing.T) {
	d := NewVtysh(nil, nil, nil)
	require.NoError(t, d.Apply(2, route.Add(testPrefix, testNextHop, 10)))

	hops := d.RIB().Routes(2, testPrefix)
	require.Len(t, hops, 1)
	assert.Equal(t, NextHop{Addr: testNextHop, Metric: 10}, hops[0])
}

func TestVtysh_InvalidNode_Error(t *testing.T) {
	d := NewVtysh(nil, nil, nil)
	err := d.SetLinkState(-1, 2, true)
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestVtysh_ApplyUnknownKind_Error(t *testing.T) {
	d := NewVtysh(nil, nil, nil)
	var cerr *CommandError
	assert.ErrorAs(t, d.Apply(1, route.Update{Kind: route.Kind(9)}), &cerr)
}

func TestVtysh_Session_RejectsLongCommand(t *testing.T) {
	r := &recordingRunner{}
	d := NewVtysh(r, nil, nil)
	err := d.session(1, []string{strings.Repeat("x", MaxCommandLength+1)})
	assert.ErrorIs(t, err, ErrCommandTooLong)
	assert.Empty(t, r.sessions)
}

func TestTranscript_WriteTo(t *testing.T) {
	tr := NewTranscript()
	tr.Record(1, []string{"a", "b"})
	tr.Record(2, []string{"c"})

	var buf bytes.Buffer
	_, err := tr.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "node 1: a ; b\nnode 2: c\n", buf.String())
	assert.Len(t, tr.ForNode(2), 1)

	var nilTranscript *Transcript
	nilTranscript.Record(1, []string{"ignored"})
}

func TestDetect(t *testing.T) {
	assert.False(t, Detect(""))
	assert.False(t, Detect("/definitely/not/here/vtysh"))
	assert.False(t, Detect(t.TempDir()))
}
