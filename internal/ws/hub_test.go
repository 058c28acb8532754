package ws

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublishQueuesLedgerUpdate(t *testing.T) {
	h := NewHub(quietLogger())
	h.Publish("sale", "create", "abc")

	msg := <-h.Broadcast
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, EventLedgerUpdate, got["type"])
	assert.Equal(t, "sale", got["entity"])
	assert.Equal(t, "create", got["action"])
	assert.Equal(t, "abc", got["id"])
}

func TestPublishDoesNotBlockWhenQueueIsFull(t *testing.T) {
	h := NewHub(quietLogger())
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish("purchase", "update", "x")
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
}
