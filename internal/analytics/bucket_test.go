package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func labels(t *testing.T, g Granularity, start, end time.Time, align bool) []string {
	t.Helper()
	var out []string
	for _, b := range Buckets(g, start, end, align) {
		out = append(out, b.Label)
	}
	return out
}

func TestBuckets_DailyCoversRange(t *testing.T) {
	got := Buckets(Day, date(2025, 1, 1), date(2025, 1, 4), false)

	require.Len(t, got, 3)
	require.Equal(t, "2025-01-01", got[0].Label)
	require.Equal(t, "2025-01-03", got[2].Label)
	require.Equal(t, date(2025, 1, 4), got[2].End)
}

func TestBuckets_LastBucketPartial(t *testing.T) {
	end := date(2025, 1, 3).Add(12 * time.Hour)
	got := Buckets(Day, date(2025, 1, 1), end, false)

	require.Len(t, got, 3)
	require.Equal(t, end, got[2].End)
	require.Equal(t, 12*time.Hour, got[2].End.Sub(got[2].Start))
}

func TestBuckets_InvertedOrEmptyRange(t *testing.T) {
	got := Buckets(Day, date(2025, 2, 1), date(2025, 1, 1), false)
	require.NotNil(t, got)
	require.Empty(t, got)

	require.Empty(t, Buckets(Hour, date(2025, 2, 1), date(2025, 2, 1), true))
}

func TestBuckets_HourlyUnaligned(t *testing.T) {
	start := date(2025, 1, 1).Add(30 * time.Minute)
	got := Buckets(Hour, start, start.Add(3*time.Hour), false)

	require.Len(t, got, 3)
	require.Equal(t, "2025-01-01T00:30", got[0].Label)
	require.Equal(t, start.Add(time.Hour), got[0].End)
}

func TestBuckets_WeekAlignsToISOWeeks(t *testing.T) {
	// 2025-01-08 is a Wednesday in ISO week 2.
	got := Buckets(Week, date(2025, 1, 8), date(2025, 1, 20), true)

	require.Len(t, got, 2)
	require.Equal(t, "2025-W02", got[0].Label)
	require.Equal(t, date(2025, 1, 8), got[0].Start, "first bucket is clipped to the range")
	require.Equal(t, date(2025, 1, 13), got[0].End, "bucket ends on the next Monday")
	require.Equal(t, "2025-W03", got[1].Label)
}

func TestBuckets_MonthAndQuarterCalendarAligned(t *testing.T) {
	require.Equal(t,
		[]string{"2025-01", "2025-02", "2025-03"},
		labels(t, Month, date(2025, 1, 15), date(2025, 3, 10), true))

	quarters := Buckets(Quarter, date(2025, 2, 10), date(2025, 8, 1), true)
	require.Len(t, quarters, 3)
	require.Equal(t, "2025-Q1", quarters[0].Label)
	require.Equal(t, date(2025, 4, 1), quarters[0].End)
	require.Equal(t, "2025-Q3", quarters[2].Label)
	require.Equal(t, date(2025, 8, 1), quarters[2].End)
}

func TestBuckets_UnalignedMonthStepsFromStart(t *testing.T) {
	got := Buckets(Month, date(2025, 1, 15), date(2025, 3, 10), false)

	require.Len(t, got, 2)
	require.Equal(t, date(2025, 2, 15), got[0].End)
	require.Equal(t, date(2025, 3, 10), got[1].End)
}

func TestBuckets_UnalignedMonthClampsMonthEnd(t *testing.T) {
	got := Buckets(Month, date(2025, 1, 31), date(2025, 5, 1), false)

	require.Len(t, got, 4)
	require.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04"},
		[]string{got[0].Label, got[1].Label, got[2].Label, got[3].Label})
	require.Equal(t, date(2025, 2, 28), got[0].End)
	require.Equal(t, date(2025, 3, 31), got[1].End)
	require.Equal(t, date(2025, 4, 30), got[2].End)
	require.Equal(t, date(2025, 5, 1), got[3].End)
	for i := 1; i < len(got); i++ {
		require.Equal(t, got[i-1].End, got[i].Start)
	}
}

func TestBuckets_UnalignedQuarterClampsMonthEnd(t *testing.T) {
	got := Buckets(Quarter, date(2024, 11, 30), date(2025, 6, 1), false)

	require.Len(t, got, 3)
	require.Equal(t, date(2025, 2, 28), got[0].End)
	require.Equal(t, date(2025, 5, 30), got[1].End)
	require.Equal(t, "2025-Q1", got[1].Label)
	require.Equal(t, date(2025, 6, 1), got[2].End)
}

func TestAddMonthsClamped(t *testing.T) {
	require.Equal(t, date(2024, 2, 29), addMonthsClamped(date(2024, 1, 31), 1))
	require.Equal(t, date(2025, 2, 28), addMonthsClamped(date(2025, 1, 31), 1))
	require.Equal(t, date(2025, 3, 31), addMonthsClamped(date(2025, 1, 31), 2))
	require.Equal(t, date(2026, 1, 15), addMonthsClamped(date(2025, 11, 15), 2))
	require.Equal(t, date(2024, 11, 30), addMonthsClamped(date(2025, 2, 28), -3))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity(" Week ")
	require.NoError(t, err)
	require.Equal(t, Week, g)

	_, err = ParseGranularity("fortnight")
	require.Error(t, err)
}

func TestPartition_HalfOpenMembership(t *testing.T) {
	buckets := Buckets(Day, date(2025, 1, 1), date(2025, 1, 3), false)
	stamps := []time.Time{
		date(2024, 12, 31),                   // before range
		date(2025, 1, 1),                     // first bucket start
		date(2025, 1, 1).Add(23 * time.Hour), // first bucket
		date(2025, 1, 2),                     // boundary belongs to second bucket
		date(2025, 1, 3),                     // range end is excluded
	}

	groups := Partition(buckets, stamps, func(ts time.Time) time.Time { return ts })

	require.Len(t, groups, 2)
	require.Len(t, groups[0], 2)
	require.Equal(t, []time.Time{date(2025, 1, 2)}, groups[1])
}

func TestPartition_NoBuckets(t *testing.T) {
	groups := Partition(nil, []time.Time{date(2025, 1, 1)}, func(ts time.Time) time.Time { return ts })
	require.Empty(t, groups)
}
