package rfp

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satnet-rfp/satnet-rfp/sim/internal/testutil"
	"github.com/satnet-rfp/satnet-rfp/sim/route"
)

func testUpdates(n int) []route.Update {
	out := make([]route.Update, 0, n)
	for i := 0; i < n; i++ {
		p := netip.PrefixFrom(netip.AddrFrom4([4]byte{10, byte(i), 0, 0}), 16)
		nh := netip.AddrFrom4([4]byte{10, 0, byte(i), 1})
		if i%2 == 0 {
			out = append(out, route.Add(p, nh, 1))
		} else {
			out = append(out, route.Delete(p, nh))
		}
	}
	return out
}

func TestRouteBatcher_Flowing_AppliesImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := NewMockDaemon(ctrl)
	b := NewRouteBatcher(d, newTestTopology(t, 3))
	u := testUpdates(1)[0]

	d.EXPECT().Apply(1, u).Return(nil)

	assert.Equal(t, Applied, b.OnNewRoutingTable(1, u, 5))
	assert.Equal(t, 1, b.AppliedCount())
	assert.Equal(t, 0, b.BlockedCount())
}

func TestRouteBatcher_BatchAtomicity(t *testing.T) {
	// GIVEN an active BFU period and N updates for two nodes
	ctrl := gomock.NewController(t)
	d := NewMockDaemon(ctrl)
	b := NewRouteBatcher(d, newTestTopology(t, 3))
	b.StartBfuPeriod(17)
	updates := testUpdates(6)

	// WHEN they are submitted (no daemon expectation: any call fails the test)
	for i, u := range updates {
		assert.Equal(t, Deferred, b.OnNewRoutingTable(i%2, u, 17+float64(i)*0.1))
	}
	assert.Equal(t, len(updates), b.PendingCount())
	assert.Equal(t, len(updates), b.BlockedCount())

	// THEN the flush applies all N in FIFO order, then reconverges every node
	var calls []*gomock.Call
	for i, u := range updates {
		calls = append(calls, d.EXPECT().Apply(i%2, u).Return(nil))
	}
	for node := 0; node < 3; node++ {
		calls = append(calls, d.EXPECT().Reconverge(node).Return(nil))
	}
	gomock.InOrder(calls...)

	flushed := b.EndBfuPeriod(19.5)

	assert.Equal(t, len(updates), flushed)
	assert.Equal(t, 0, b.PendingCount())
	assert.False(t, b.IsBfuActive())
	assert.Equal(t, len(updates), b.AppliedCount())
}

func TestRouteBatcher_EndWhileFlowing_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := NewMockDaemon(ctrl)
	b := NewRouteBatcher(d, newTestTopology(t, 3))

	assert.Equal(t, 0, b.EndBfuPeriod(4))
}

func TestRouteBatcher_StartTwice_KeepsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := NewMockDaemon(ctrl)
	b := NewRouteBatcher(d, newTestTopology(t, 1))
	u := testUpdates(1)[0]

	b.StartBfuPeriod(17)
	b.OnNewRoutingTable(0, u, 17)
	b.StartBfuPeriod(18)

	assert.True(t, b.IsBfuActive())
	assert.Equal(t, []PendingRouteUpdate{{Node: 0, Update: u}}, b.Pending())
}

func TestRouteBatcher_ReconvergeIsBounded(t *testing.T) {
	d := &testutil.RecordingDaemon{}
	b := NewRouteBatcher(d, newTestTopology(t, 25))
	b.StartBfuPeriod(1)

	b.EndBfuPeriod(2)

	reconverged := d.Ops("reconverge")
	require.Len(t, reconverged, MaxReconvergeNodes)
	assert.Equal(t, MaxReconvergeNodes-1, reconverged[len(reconverged)-1].Node)
}

func TestRouteBatcher_DaemonFailure_FlushContinues(t *testing.T) {
	// GIVEN a daemon rejecting everything
	d := &testutil.RecordingDaemon{Err: errors.New("vtysh exited 1")}
	b := NewRouteBatcher(d, newTestTopology(t, 2))
	b.StartBfuPeriod(1)
	for _, u := range testUpdates(3) {
		b.OnNewRoutingTable(0, u, 1)
	}

	// WHEN flushed
	flushed := b.EndBfuPeriod(2)

	// THEN every update was still attempted
	assert.Equal(t, 3, flushed)
	assert.Len(t, d.Ops("apply"), 3)
	assert.Equal(t, 3, b.FailedCount())
	assert.Equal(t, 0, b.AppliedCount(), "rejected pushes are not applied")
	assert.Len(t, d.Ops("reconverge"), 2)
}
