package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateTimeJSON(t *testing.T) {
	utc := time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)
	b, err := json.Marshal(NewLocalDateTime(utc))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-02T00:30:00"`, string(b))

	var back LocalDateTime
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(utc))

	b, err = json.Marshal(LocalDateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var empty LocalDateTime
	require.NoError(t, json.Unmarshal([]byte("null"), &empty))
	assert.True(t, empty.IsZero())
}

func TestLocalDateTimeScan(t *testing.T) {
	var ldt LocalDateTime
	require.NoError(t, ldt.Scan("2024-03-02T00:30:00"))
	assert.Equal(t, "2024-03-02T00:30:00", ldt.String())

	require.NoError(t, ldt.Scan(nil))
	assert.True(t, ldt.IsZero())

	assert.Error(t, ldt.Scan(42))

	v, err := ldt.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
