package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	canonerrors "github.com/canonui/canon/internal/errors"
)

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		scrollTop float64
		total     int
		item      float64
		viewport  float64
		overscan  int
		want      Range
	}{
		{"top of long list", 0, 1000, 36, 600, 5, Range{0, 27}},
		{"small list top", 0, 100, 40, 400, 2, Range{0, 14}},
		{"mid list", 3600, 1000, 36, 600, 5, Range{95, 122}},
		{"near tail", 4000, 100, 50, 500, 2, Range{78, 92}},
		{"max scroll", 4500, 100, 50, 500, 2, Range{88, 100}},
		{"past end", 10000, 100, 50, 500, 2, Range{100, 100}},
		{"empty", 500, 0, 36, 600, 5, Range{0, 0}},
		{"negative scroll", -120, 1000, 36, 600, 5, Range{0, 27}},
		{"NaN scroll", math.NaN(), 1000, 36, 600, 5, Range{0, 27}},
		{"fewer items than viewport", 0, 3, 36, 600, 5, Range{0, 3}},
		{"no overscan", 360, 1000, 36, 360, 0, Range{10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleRange(tt.scrollTop, tt.total, tt.item, tt.viewport, tt.overscan)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtentAndOffset(t *testing.T) {
	assert.Equal(t, 36000.0, TotalExtent(1000, 36))
	assert.Equal(t, 40000.0, TotalExtent(1000, 40))
	assert.Zero(t, TotalExtent(0, 36))

	r := VisibleRange(3600, 1000, 36, 600, 5)
	assert.Equal(t, float64(r.Start)*36, Offset(r, 36))
}

func TestRangeHelpers(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
}

func TestSlice(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	assert.Equal(t, []int{1, 2}, Slice(items, Range{1, 3}))
	assert.Equal(t, []int{3, 4}, Slice(items, Range{3, 27}))
	assert.Nil(t, Slice(items, Range{5, 5}))
	assert.Nil(t, Slice([]int(nil), Range{0, 10}))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []Config{
		{ItemHeight: 0, ViewportHeight: 600},
		{ItemHeight: -1, ViewportHeight: 600},
		{ItemHeight: math.NaN(), ViewportHeight: 600},
		{ItemHeight: math.Inf(1), ViewportHeight: 600},
		{ItemHeight: 36, ViewportHeight: 0},
		{ItemHeight: 36, ViewportHeight: 600, Overscan: -1},
	}
	for _, c := range bad {
		err := c.Validate()
		require.Error(t, err, "%+v", c)
		assert.ErrorIs(t, err, canonerrors.ErrInvalidConfig)
	}
}

func TestRangeInvariantProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 100000).Draw(t, "total")
		item := rapid.Float64Range(1, 200).Draw(t, "itemHeight")
		viewport := rapid.Float64Range(1, 5000).Draw(t, "viewportHeight")
		overscan := rapid.IntRange(0, 50).Draw(t, "overscan")
		top := rapid.Float64Range(-1000, 1e8).Draw(t, "scrollTop")

		r := VisibleRange(top, total, item, viewport, overscan)
		if r.Start < 0 || r.Start > r.End || r.End > total {
			t.Fatalf("invariant violated: %+v total=%d", r, total)
		}
		if Offset(r, item) != float64(r.Start)*item {
			t.Fatalf("offset mismatch")
		}
	})
}

func TestMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 100000).Draw(t, "total")
		item := rapid.Float64Range(1, 200).Draw(t, "itemHeight")
		viewport := rapid.Float64Range(1, 5000).Draw(t, "viewportHeight")
		overscan := rapid.IntRange(0, 50).Draw(t, "overscan")
		a := rapid.Float64Range(0, 1e7).Draw(t, "a")
		b := rapid.Float64Range(0, 1e7).Draw(t, "b")
		if a > b {
			a, b = b, a
		}

		ra := VisibleRange(a, total, item, viewport, overscan)
		rb := VisibleRange(b, total, item, viewport, overscan)
		if ra.Start > rb.Start || ra.End > rb.End {
			t.Fatalf("not monotonic: %v@%v vs %v@%v", ra, a, rb, b)
		}
	})
}

func TestFullCoverageProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 2000).Draw(t, "total")
		item := float64(rapid.IntRange(1, 80).Draw(t, "itemHeight"))
		viewport := float64(rapid.IntRange(1, 2000).Draw(t, "viewportHeight"))
		overscan := rapid.IntRange(0, 10).Draw(t, "overscan")

		maxScroll := math.Max(0, TotalExtent(total, item)-viewport)
		covered := 0
		for top := 0.0; ; top += item {
			if top > maxScroll {
				top = maxScroll
			}
			r := VisibleRange(top, total, item, viewport, overscan)
			if r.Start > covered {
				t.Fatalf("item %d unreachable", covered)
			}
			if r.End > covered {
				covered = r.End
			}
			if top >= maxScroll {
				break
			}
		}
		if covered != total {
			t.Fatalf("covered %d of %d items", covered, total)
		}
	})
}
