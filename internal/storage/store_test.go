package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	t.Run("accepts nested names", func(t *testing.T) {
		n, err := CleanName("data/team.json")
		require.NoError(t, err)
		assert.Equal(t, "data/team.json", n)
	})

	t.Run("collapses redundant separators", func(t *testing.T) {
		n, err := CleanName("resources//cs101/./notes.pdf")
		require.NoError(t, err)
		assert.Equal(t, "resources/cs101/notes.pdf", n)
	})

	t.Run("normalizes backslashes", func(t *testing.T) {
		n, err := CleanName(`resources\cs101\notes.pdf`)
		require.NoError(t, err)
		assert.Equal(t, "resources/cs101/notes.pdf", n)
	})

	for _, bad := range []string{"", "  ", "/etc/passwd", "../secret", "data/../../x", ".", "a/.."} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := CleanName(bad)
			assert.True(t, errors.Is(err, ErrInvalidName))
		})
	}
}

func TestUnavailableWrapsSentinel(t *testing.T) {
	err := Unavailable("read", "data/x.json", errors.New("connection refused"))
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "data/x.json")
}
