package dedup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "Beyoncé!?",
			expected: "beyonc",
		},
		{
			name:     "removes stop words",
			input:    "The Weeknd: Live in Concert Tour",
			expected: "weeknd concert",
		},
		{
			name:     "drops apostrophes without splitting the word",
			input:    "Don't Stop Believin'",
			expected: "dont stop believin",
		},
		{
			name:     "collapses whitespace",
			input:    "  John   Legend  ",
			expected: "john legend",
		},
		{
			name:     "keeps digits",
			input:    "Blink-182",
			expected: "blink 182",
		},
		{
			name:     "all stop words leaves empty",
			input:    "The Live Tour",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, normalize(tt.input))
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("reordered titles share a fingerprint", func(t *testing.T) {
		require.Equal(t, fingerprint("Live: John Legend"), fingerprint("John Legend Live"))
	})

	t.Run("sorts and caps at four significant words", func(t *testing.T) {
		require.Equal(t, "bb cc dd ee", fingerprint("zz ee dd cc bb"))
	})

	t.Run("single-letter words are ignored", func(t *testing.T) {
		require.Equal(t, "legend", fingerprint("b Legend"))
	})
}

func TestEditSimilarity(t *testing.T) {
	t.Run("identical after normalization", func(t *testing.T) {
		require.Equal(t, 1.0, editSimilarity("The Weeknd Live", "Weeknd"))
	})

	t.Run("empty side scores zero", func(t *testing.T) {
		require.Equal(t, 0.0, editSimilarity("The Live Tour", "Coldplay"))
	})

	t.Run("wildly different lengths short-circuit", func(t *testing.T) {
		// normalized lengths 2 and 10, ratio 0.2 < 0.4
		got := editSimilarity("xy", "qrstuvwxyz")
		require.InDelta(t, 0.1, got, 1e-9)
	})

	t.Run("close names score high", func(t *testing.T) {
		got := editSimilarity("Coldplay", "Coldpley")
		require.InDelta(t, 0.875, got, 1e-9)
	})

	t.Run("long strings fall back to word overlap", func(t *testing.T) {
		long1 := strings.Repeat("alpha beta gamma delta ", 8)
		long2 := strings.Repeat("alpha beta gamma delta ", 8) + "x1 y2"
		got := editSimilarity(long1, long2)
		require.Greater(t, got, 0.6)
		require.Less(t, got, 1.0)
	})
}

func TestWordSimilarity(t *testing.T) {
	t.Run("both empty are vacuously identical", func(t *testing.T) {
		require.Equal(t, 1.0, wordSimilarity("the a an", "at in on"))
	})

	t.Run("jaccard over significant words", func(t *testing.T) {
		// {taylor, swift, eras} vs {taylor, swift}: 2/3
		got := wordSimilarity("Taylor Swift Eras", "Taylor Swift")
		require.InDelta(t, 2.0/3.0, got, 1e-9)
	})

	t.Run("disjoint words score zero", func(t *testing.T) {
		require.Equal(t, 0.0, wordSimilarity("Coldplay", "Radiohead"))
	})
}

func TestContainsOther(t *testing.T) {
	require.True(t, containsOther("Hamilton", "Hamilton on Broadway"))
	require.True(t, containsOther("The Hamilton Show", "hamilton show"))
	require.False(t, containsOther("abc", "abcdef"), "sub-4-char names never count")
	require.False(t, containsOther("Hamilton", "Wicked"))
}

func TestGeoDistanceMiles(t *testing.T) {
	t.Run("zero distance", func(t *testing.T) {
		require.Equal(t, 0.0, geoDistanceMiles(40.7128, -74.0060, 40.7128, -74.0060))
	})

	t.Run("downtown to midtown manhattan", func(t *testing.T) {
		got := geoDistanceMiles(40.7128, -74.0060, 40.7589, -73.9851)
		require.InDelta(t, 3.3, got, 0.3)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := geoDistanceMiles(34.05, -118.24, 40.71, -74.00)
		d2 := geoDistanceMiles(40.71, -74.00, 34.05, -118.24)
		require.InDelta(t, d1, d2, 1e-9)
	})
}
