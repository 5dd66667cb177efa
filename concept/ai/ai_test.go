package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/conceptmesh/core"
)

type failingResponder struct{}

func (failingResponder) Reply(context.Context, string) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

func TestConceptGeneratesReply(t *testing.T) {
	responder := NewCannedResponder()
	responder.AddReply("hello", "hi there")

	c := NewConcept("PenPal", responder)

	out, err := c.Invoke(context.Background(), "generate", core.Record{"prompt": "hello"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, out[core.StatusField])
	assert.Equal(t, "hi there", out["reply"])
}

func TestConceptCannedFallback(t *testing.T) {
	c := NewConcept("PenPal", NewCannedResponder())

	out, err := c.Invoke(context.Background(), "generate", core.Record{"prompt": "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Canned reply to: anything", out["reply"])
}

func TestConceptMissingPromptIsErrorShaped(t *testing.T) {
	c := NewConcept("PenPal", NewCannedResponder())

	out, err := c.Invoke(context.Background(), "generate", core.Record{})
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, out[core.StatusField])
}

func TestConceptNonStringPromptIsErrorShaped(t *testing.T) {
	c := NewConcept("PenPal", NewCannedResponder())

	out, err := c.Invoke(context.Background(), "generate", core.Record{"prompt": 42})
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, out[core.StatusField])
}

func TestConceptResponderErrorIsErrorShaped(t *testing.T) {
	c := NewConcept("PenPal", failingResponder{})

	out, err := c.Invoke(context.Background(), "generate", core.Record{"prompt": "hello"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusError, out[core.StatusField])
	assert.Contains(t, out[core.ErrorField], "model unavailable")
}
