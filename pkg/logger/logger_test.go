package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitAndLogger(t *testing.T) {
	require.NotNil(t, Logger())

	require.NoError(t, Init("debug"))
	require.NotNil(t, Logger())

	// Unknown levels fall back to info instead of failing.
	require.NoError(t, Init("nonsense"))
}

func TestWithModule(t *testing.T) {
	require.NoError(t, Init("info"))

	child := WithModule("test")
	require.NotNil(t, child)
	require.NotSame(t, Logger(), child)
}
