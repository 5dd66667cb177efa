package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookManagerRunsInRegistrationOrder(t *testing.T) {
	hm := NewHookManager()

	var order []string
	hm.Register(NewFunctionHook(HookBeforeRule, func(_ context.Context, _ *HookContext) error {
		order = append(order, "first")
		return nil
	}))
	hm.Register(NewFunctionHook(HookBeforeRule, func(_ context.Context, _ *HookContext) error {
		order = append(order, "second")
		return nil
	}))
	hm.Register(NewFunctionHook(HookAfterRule, func(_ context.Context, _ *HookContext) error {
		order = append(order, "other type")
		return nil
	}))

	err := hm.run(context.Background(), HookBeforeRule, &HookContext{Rule: "r"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestHookManagerFirstErrorStopsChain(t *testing.T) {
	hm := NewHookManager()

	var ran bool
	hm.Register(NewFunctionHook(HookBeforeRule, func(_ context.Context, _ *HookContext) error {
		return fmt.Errorf("abort")
	}))
	hm.Register(NewFunctionHook(HookBeforeRule, func(_ context.Context, _ *HookContext) error {
		ran = true
		return nil
	}))

	err := hm.run(context.Background(), HookBeforeRule, &HookContext{})
	assert.Error(t, err)
	assert.False(t, ran)
}

func TestHookManagerNoHooksIsNoOp(t *testing.T) {
	hm := NewHookManager()
	assert.NoError(t, hm.run(context.Background(), HookOnError, &HookContext{}))
}
