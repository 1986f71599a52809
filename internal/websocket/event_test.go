package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_CombinedType(t *testing.T) {
	event := NewEvent(EventTypeCreated, EntityTypeInvoice, map[string]interface{}{"id": 1})

	assert.Equal(t, "invoice.created", event.Type)
	assert.Equal(t, EntityTypeInvoice, event.Entity)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Second)
}

func TestNewEvent_AdjustedItem(t *testing.T) {
	event := NewEvent(EventTypeAdjusted, EntityTypeItem, nil)

	assert.Equal(t, "item.adjusted", event.Type)
}

func TestEvent_ToJSON(t *testing.T) {
	event := NewEvent(EventTypeDeleted, EntityTypePayment, map[string]interface{}{"id": float64(12)})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "payment.deleted", decoded["type"])
	assert.Equal(t, "payment", decoded["entity"])

	payload, ok := decoded["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), payload["id"])
}

func TestEvent_ToJSON_UnserializablePayload(t *testing.T) {
	event := NewEvent(EventTypeCreated, EntityTypeCustomer, func() {})

	_, err := event.ToJSON()
	assert.Error(t, err)
}
