package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope("order.created", map[string]any{"orderId": "abc"})

	assert.NotEmpty(t, env.ID)
	assert.Equal(t, "order.created", env.Event)
	assert.False(t, env.OccurredAt.IsZero())

	b, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "order.created", decoded["event"])
	assert.Equal(t, "abc", decoded["data"].(map[string]any)["orderId"])
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "order.created", nil))
}
