package common

import (
	"time"
)

// Timestamp is stored with nanosecond precision in UTC.
type Timestamp struct {
	t time.Time
}

func NewTimestampFromGoTime(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(0)}
}

func NewTimestampFromUnixNanos(nanos int64) Timestamp {
	return Timestamp{t: time.Unix(0, nanos).UTC()}
}

func (ts Timestamp) UnixNanos() int64 {
	return ts.t.UnixNano()
}

func (ts Timestamp) GoTime() time.Time {
	return ts.t
}

func (ts Timestamp) CompareTo(other Timestamp) int {
	switch {
	case ts.t.Before(other.t):
		return -1
	case ts.t.After(other.t):
		return 1
	default:
		return 0
	}
}

func (ts Timestamp) String() string {
	return ts.t.Format(time.RFC3339Nano)
}
