package csvio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	t.Run("reads header-keyed rows", func(t *testing.T) {
		rows, err := ParseRows([]byte("a,b\n1,2\n3,4\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1", rows[0]["a"])
		assert.Equal(t, "4", rows[1]["b"])
	})

	t.Run("strips a leading BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nabc\n")...)
		rows, err := ParseRows(data)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "abc", rows[0]["name"])
	})

	t.Run("short rows read missing cells as empty", func(t *testing.T) {
		rows, err := ParseRows([]byte("a,b,c\n1,2\n"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0]["c"])
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		rows, err := ParseRows(nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestRenderRows(t *testing.T) {
	out, err := RenderRows([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "exports carry a BOM")
	assert.Equal(t, "a,b\n1,2\n", string(bytes.TrimPrefix(out, []byte{0xEF, 0xBB, 0xBF})))
}

func TestRenderParseRoundTrip(t *testing.T) {
	out, err := RenderRows([]string{"x", "y"}, [][]string{{"値, カンマ入り", "true"}})
	require.NoError(t, err)
	rows, err := ParseRows(out)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "値, カンマ入り", rows[0]["x"])
	assert.Equal(t, "true", rows[0]["y"])
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("true"))
	// Only the exact literal counts; everything else is false.
	for _, s := range []string{"TRUE", "True", "1", "yes", "", "false"} {
		assert.False(t, ParseBool(s), "ParseBool(%q)", s)
	}
	assert.Equal(t, "true", FormatBool(true))
	assert.Equal(t, "false", FormatBool(false))
}
