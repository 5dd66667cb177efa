package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameExtendIsCopyOnWrite(t *testing.T) {
	base := Frame{"user": "alice"}

	left := base.Extend("session", "s-1")
	right := base.Extend("session", "s-2")

	assert.Equal(t, Frame{"user": "alice"}, base)
	assert.Equal(t, "s-1", left["session"])
	assert.Equal(t, "s-2", right["session"])
}

func TestFrameCloneIndependent(t *testing.T) {
	orig := Frame{"user": "alice"}
	clone := orig.Clone()
	clone["user"] = "bob"

	v, ok := orig.Bound("user")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestFramesEmpty(t *testing.T) {
	assert.True(t, Frames{}.Empty())
	assert.True(t, Frames(nil).Empty())
	assert.False(t, Single(NewFrame()).Empty())
}
