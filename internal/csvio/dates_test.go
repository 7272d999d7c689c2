package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024/3/5", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{"2024-3-5", "2024-03-05"},
		{"2024/12/31", "2024-12-31"},
		{" 2024/3/5 ", "2024-03-05"},
	}
	for _, tc := range cases {
		got, err := NormalizeDate(tc.in)
		require.NoError(t, err, "NormalizeDate(%q)", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "2024", "3/5", "2024/13/1", "2024/0/1", "2024/1/32", "abcd/ef/gh"} {
		_, err := NormalizeDate(in)
		assert.Error(t, err, "NormalizeDate(%q)", in)
	}
}
