package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovitrap/aedes-study-service/internal/climate"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2015, 3, 9, 12, 0, 0, 0, time.UTC)
	sample := climate.ForcingSample{
		Day:           30,
		Temperature:   27.1,
		Precipitation: 120,
		K:             76.4,
		TempWeight:    0.99,
		RainWeight:    1.08,
		GeneratedAt:   now,
	}

	msg, err := serializeToMessage(sample)
	require.NoError(t, err)

	assert.Equal(t, []byte("30"), msg.Key)
	assert.Contains(t, string(msg.Value), `"day":30`)
	assert.Contains(t, string(msg.Value), `"temperature":27.1`)
	assert.Contains(t, string(msg.Value), `"k":76.4`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "day", msg.Headers[0].Key)
	assert.Equal(t, []byte("30"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_FractionalDayKey(t *testing.T) {
	msg, err := serializeToMessage(climate.ForcingSample{Day: 7.5})
	require.NoError(t, err)
	assert.Equal(t, []byte("7.5"), msg.Key)
}
