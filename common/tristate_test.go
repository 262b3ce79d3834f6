package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTristateOf(t *testing.T) {
	require.Equal(t, TristateTrue, TristateOf(true))
	require.Equal(t, TristateFalse, TristateOf(false))
	require.True(t, TristateTrue.IsTrue())
	require.False(t, TristateFalse.IsTrue())
	require.False(t, TristateUnknown.IsTrue())
}

func TestTristateNot(t *testing.T) {
	require.Equal(t, TristateFalse, TristateTrue.Not())
	require.Equal(t, TristateTrue, TristateFalse.Not())
	require.Equal(t, TristateUnknown, TristateUnknown.Not())
}

func TestTristateAndOr(t *testing.T) {
	require.Equal(t, TristateFalse, TristateFalse.And(TristateUnknown))
	require.Equal(t, TristateUnknown, TristateTrue.And(TristateUnknown))
	require.Equal(t, TristateTrue, TristateTrue.And(TristateTrue))

	require.Equal(t, TristateTrue, TristateTrue.Or(TristateUnknown))
	require.Equal(t, TristateUnknown, TristateFalse.Or(TristateUnknown))
	require.Equal(t, TristateFalse, TristateFalse.Or(TristateFalse))
}
