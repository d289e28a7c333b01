package analytics

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketWidth(t *testing.T) {
	cases := map[int]int{
		1: 1, 7: 1, 15: 1, 30: 1,
		31: 7, 90: 7,
		91: 14, 180: 14,
		181: 30, 365: 30, 1000: 30,
	}
	for days, want := range cases {
		assert.Equal(t, want, BucketWidth(days), "days=%d", days)
	}
}

func TestBucketer_SplitCoversWindowExactly(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))
	today := b.Today(fixedNow)

	for _, days := range []int{1, 2, 7, 10, 15, 29, 30, 31, 45, 90, 91, 100, 180, 181, 365, 400} {
		buckets, err := b.Split(fixedNow, days)
		require.NoError(t, err, "days=%d", days)

		width := BucketWidth(days)
		assert.Len(t, buckets, (days+width-1)/width, "days=%d", days)

		assert.True(t, buckets[0].Start.Equal(today.AddDate(0, 0, -(days-1))), "days=%d oldest start", days)
		assert.True(t, buckets[len(buckets)-1].End.Equal(today), "days=%d newest end", days)

		total := 0
		for i, bk := range buckets {
			assert.False(t, bk.End.Before(bk.Start), "days=%d bucket %d inverted", days, i)
			total += bk.days()
			if i > 0 {
				assert.True(t, bk.Start.Equal(buckets[i-1].Until()), "days=%d gap/overlap at %d", days, i)
			}
			if i == 0 {
				assert.Contains(t, bk.Label, " - ", "days=%d oldest label", days)
			} else {
				assert.NotContains(t, bk.Label, " - ", "days=%d label %d", days, i)
				assert.Equal(t, width, bk.days(), "days=%d interior width", days)
			}
		}
		assert.Equal(t, days, total, "days=%d coverage", days)
	}
}

func TestBucketer_TenDaysAreDaily(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))

	buckets, err := b.Split(fixedNow, 10)
	require.NoError(t, err)
	require.Len(t, buckets, 10)

	for _, bk := range buckets {
		assert.Equal(t, 1, bk.days())
	}
	assert.Equal(t, "06/06 - 06/06", buckets[0].Label)
	assert.Equal(t, "07/06", buckets[1].Label)
	assert.Equal(t, "15/06", buckets[9].Label)
}

func TestBucketer_HundredDaysWidensOldest(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))
	now := time.Date(2024, 6, 30, 18, 0, 0, 0, time.UTC)

	buckets, err := b.Split(now, 100)
	require.NoError(t, err)
	require.Len(t, buckets, 8)

	oldest := buckets[0]
	assert.Equal(t, time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC), oldest.Start)
	assert.Equal(t, time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC), oldest.End)
	assert.Equal(t, "Mar - Mar", oldest.Label)

	assert.Equal(t, "Jun", buckets[7].Label)
	assert.Equal(t, 14, buckets[7].days())
}

func TestBucketer_LongSpanUsesMonthYearLabels(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))

	buckets, err := b.Split(fixedNow, 365)
	require.NoError(t, err)
	require.Len(t, buckets, 13)
	assert.Equal(t, "Jun/24", buckets[12].Label)
	assert.True(t, strings.HasSuffix(buckets[0].Label, "/23"))
}

func TestBucketer_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	b := NewBucketer(loc, MatchLocale("pt-BR"))

	// 01:00 UTC todavía es el día anterior en -03:00
	now := time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)
	buckets, err := b.Split(now, 1)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, loc), buckets[0].Start)
	assert.Equal(t, "14/06 - 14/06", buckets[0].Label)
}

func TestBucketer_RejectsNonPositiveDays(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))

	for _, days := range []int{0, -5} {
		_, err := b.Split(fixedNow, days)
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
}

func TestBucketer_RejectsWindowAboveMax(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR"))

	for _, days := range []int{DefaultMaxDays + 1, 1 << 40, math.MaxInt} {
		buckets, err := b.Split(fixedNow, days)
		assert.ErrorIs(t, err, ErrInvalidParams, "days=%d", days)
		assert.Nil(t, buckets)
	}

	buckets, err := b.Split(fixedNow, DefaultMaxDays)
	require.NoError(t, err)
	assert.Equal(t, b.Today(fixedNow), buckets[len(buckets)-1].End)
}

func TestBucketer_WithMaxDays(t *testing.T) {
	b := NewBucketer(time.UTC, MatchLocale("pt-BR")).WithMaxDays(30)

	_, err := b.Split(fixedNow, 30)
	require.NoError(t, err)

	_, err = b.Split(fixedNow, 31)
	assert.ErrorIs(t, err, ErrInvalidParams)

	// n <= 0 conserva el tope anterior
	_, err = b.WithMaxDays(0).Split(fixedNow, 31)
	assert.ErrorIs(t, err, ErrInvalidParams)
}
