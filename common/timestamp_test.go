package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampGoTimeRoundTrip(t *testing.T) {
	now := time.Now()
	ts := NewTimestampFromGoTime(now)
	require.Equal(t, time.UTC, ts.GoTime().Location())
	require.Equal(t, now.UnixNano(), ts.GoTime().UnixNano())
	require.Equal(t, 0, ts.CompareTo(NewTimestampFromUnixNanos(ts.UnixNanos())))
}
