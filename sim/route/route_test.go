package route

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodePrefixAndNextHop_FollowAddressingPlan(t *testing.T) {
	p, err := NodePrefix(5)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParsePrefix("10.5.0.0/16"), p)

	nh, err := NodeNextHop(2)
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.2.1"), nh)
}

func TestNodePrefix_OutsidePlan_Error(t *testing.T) {
	_, err := NodePrefix(256)
	assert.Error(t, err)
	_, err = NodeNextHop(-1)
	assert.Error(t, err)
	assert.True(t, Addressable(0))
	assert.False(t, Addressable(MaxNode+1))
}

func TestUpdate_String(t *testing.T) {
	p := netip.MustParsePrefix("10.5.0.0/16")
	nh := netip.MustParseAddr("10.0.2.1")

	assert.Equal(t, "ADD 10.5.0.0/16 10.0.2.1 1", Add(p, nh, 1).String())
	assert.Equal(t, "DEL 10.5.0.0/16 10.0.2.1", Delete(p, nh).String())
	assert.Equal(t, "UPDATE 10.5.0.0/16 10.0.2.1 5", Replace(p, nh, 5).String())
	assert.Equal(t, "sat7", InterfaceName(7))
}
