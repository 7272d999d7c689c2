package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	cases := []struct {
		current string
		next    string
	}{
		{"", "○"},
		{"○", "△"},
		{"△", "×"},
		{"×", ""},
		{"19時から参加", ""}, // custom text clears instead of cycling
		{"late", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.next, Advance(tc.current), "advance(%q)", tc.current)
	}
}

func TestSplitValue(t *testing.T) {
	t.Run("symbols store as status with no text", func(t *testing.T) {
		for _, sym := range []string{StatusPresent, StatusPartial, StatusAbsent} {
			status, text, ok := SplitValue(sym)
			require.True(t, ok)
			assert.Equal(t, sym, status)
			assert.Nil(t, text)
		}
	})

	t.Run("free text stores under the custom tag verbatim", func(t *testing.T) {
		status, text, ok := SplitValue("18:30から")
		require.True(t, ok)
		assert.Equal(t, StatusCustom, status)
		require.NotNil(t, text)
		assert.Equal(t, "18:30から", *text)
	})

	t.Run("empty value clears the cell", func(t *testing.T) {
		_, _, ok := SplitValue("")
		assert.False(t, ok)
	})
}

func TestDisplayValue(t *testing.T) {
	txt := "見学"
	assert.Equal(t, "○", DisplayValue(StatusPresent, nil))
	assert.Equal(t, "見学", DisplayValue(StatusCustom, &txt))
	assert.Equal(t, "", DisplayValue(StatusCustom, nil))
}

func TestAdvanceCell(t *testing.T) {
	t.Run("full cycle returns to empty", func(t *testing.T) {
		var cur *Cell
		seen := []string{}
		for i := 0; i < 4; i++ {
			next, cleared := AdvanceCell(cur)
			if cleared {
				cur = nil
				seen = append(seen, "")
				continue
			}
			cur = &next
			seen = append(seen, DisplayValue(next.Status, next.Text))
		}
		assert.Equal(t, []string{"○", "△", "×", ""}, seen)
	})

	t.Run("custom cell clears on advance", func(t *testing.T) {
		txt := "リモート参加"
		_, cleared := AdvanceCell(&Cell{Status: StatusCustom, Text: &txt})
		assert.True(t, cleared)
	})
}
