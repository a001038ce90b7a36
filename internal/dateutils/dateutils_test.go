package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-01 09:15:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 9, 15, 0, 0, time.UTC), ts)

	ts, err = ParseTimestamp(" 2025-03-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), ts)

	_, err = ParseTimestamp("01/03/2025")
	assert.Error(t, err)

	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestFromEpochMillis(t *testing.T) {
	stamp := FromEpochMillis(time.Date(2025, time.March, 1, 9, 15, 0, 0, time.Local).UnixMilli())
	assert.Equal(t, "2025-03-01 09:15:00", stamp)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-03-01", DayKey(time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC)))
}
