package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Writes prefix and level", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("MAZE", "", &buf)
		require.NoError(t, err)

		l.Info("generated")
		l.Warning("slow")
		l.Error("failed")

		out := buf.String()
		assert.Contains(t, out, "[MAZE] [INFO] generated")
		assert.Contains(t, out, "[MAZE] [WARNING] slow")
		assert.Contains(t, out, "[MAZE] [ERROR] failed")
	})

	t.Run("Colours the prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "\033[32m", &buf)
		require.NoError(t, err)

		l.Info("up")
		assert.Contains(t, buf.String(), "\033[32m[APP]\033[0m [INFO] up")
	})

	t.Run("Rejects missing arguments", func(t *testing.T) {
		_, err := New("", "", &bytes.Buffer{})
		assert.Error(t, err)

		_, err = New("APP", "", nil)
		assert.Error(t, err)
	})
}
