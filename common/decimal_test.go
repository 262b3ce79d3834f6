package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimalAdd(t *testing.T) {
	a, err := NewDecFromString("1.25")
	require.NoError(t, err)
	b, err := NewDecFromString("2.50")
	require.NoError(t, err)
	sum := a.Add(b)
	require.Equal(t, "3.75", sum.String())
	require.Equal(t, 1, sum.CompareTo(ZeroDecimal()))
	require.Equal(t, 0, ZeroDecimal().CompareTo(NewDecFromInt64(0)))
}

func TestDecimalScaledInt64(t *testing.T) {
	d, err := NewDecFromString("12.345")
	require.NoError(t, err)

	unscaled, err := d.ScaledInt64(3)
	require.NoError(t, err)
	require.Equal(t, int64(12345), unscaled)
	require.Equal(t, 0, d.CompareTo(NewDecFromScaledInt64(unscaled, 3)))

	// Fractional digits beyond the scale cannot be stored losslessly.
	_, err = d.ScaledInt64(2)
	require.Error(t, err)
}
