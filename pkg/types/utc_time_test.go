package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTCTime_Scan(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

	tests := []struct {
		name  string
		value interface{}
	}{
		{name: "time in UTC", value: want},
		{name: "time in other zone", value: want.In(time.FixedZone("MSK", 3*60*60))},
		{name: "rfc3339 string", value: "2025-03-14T09:26:53.589793Z"},
		{name: "go String format", value: "2025-03-14 09:26:53.589793 +0000 UTC"},
		{name: "go String with monotonic", value: "2025-03-14 09:26:53.589793 +0000 UTC m=+0.000000001"},
		{name: "sqlite format bytes", value: []byte("2025-03-14 09:26:53.589793+00:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got UTCTime
			require.NoError(t, got.Scan(tt.value))
			assert.True(t, want.Equal(got.Time()), "got %s", got.Time())
			assert.Equal(t, time.UTC, got.Time().Location())
		})
	}
}

func TestUTCTime_ScanNil(t *testing.T) {
	got := UTCTime(time.Now())
	require.NoError(t, got.Scan(nil))
	assert.True(t, got.IsZero())

	v, err := got.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUTCTime_ScanInvalid(t *testing.T) {
	var got UTCTime
	assert.ErrorIs(t, got.Scan("yesterday"), ErrInvalidTimestamp)
	assert.Error(t, got.Scan(42))
}
