package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/conceptmesh/core"
	"github.com/hupe1980/conceptmesh/internal/testutil"
)

func TestCausalScopeRecordAndLookup(t *testing.T) {
	scope := newCausalScope("req-1")

	c := testutil.NewCompletionBuilder("User", "login").
		In("username", "alice").
		Success("session", "s-1").
		Causal("req-1").
		Build()
	scope.record(c)

	got, ok := scope.lookup(core.NewActionRef("User", "login"))
	require.True(t, ok)
	assert.Equal(t, c.ID, got.ID)

	_, ok = scope.lookup(core.NewActionRef("User", "logout"))
	assert.False(t, ok)
}

func TestCausalScopeKeepsMostRecentPerRef(t *testing.T) {
	scope := newCausalScope("req-1")

	first := testutil.NewCompletionBuilder("Counter", "increment").
		Success("value", 1).
		Causal("req-1").
		Build()
	second := testutil.NewCompletionBuilder("Counter", "increment").
		Success("value", 2).
		Causal("req-1").
		Build()

	scope.record(first)
	scope.record(second)

	got, ok := scope.lookup(core.NewActionRef("Counter", "increment"))
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestCausalScopeRejectsForeignCausalKey(t *testing.T) {
	scope := newCausalScope("req-1")

	foreign := testutil.NewCompletionBuilder("User", "login").
		Success("session", "s-1").
		Causal("req-2").
		Build()
	scope.record(foreign)

	_, ok := scope.lookup(core.NewActionRef("User", "login"))
	assert.False(t, ok)
}
