// Package analytics holds the report computations: time bucketing,
// reducers, customer segmentation, cohort retention and forecasting.
// Every function is a pure transformation over an in-memory snapshot.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"marketplace-analytics/internal/model"
)

// Granularity is the width of a time bucket.
type Granularity string

const (
	Hour    Granularity = "hour"
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
)

// ParseGranularity accepts hour, day, week, month or quarter (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Hour, Day, Week, Month, Quarter:
		return g, nil
	default:
		return "", fmt.Errorf("unsupported granularity %q", s)
	}
}

// floor truncates t to the calendar boundary of the granularity.
// Weeks start on Monday, matching ISO week numbering.
func (g Granularity) floor(t time.Time) time.Time {
	y, m, d := t.Date()
	switch g {
	case Hour:
		return t.Truncate(time.Hour)
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case Quarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// boundary returns the k-th bucket edge after origin. Edges are computed from
// origin rather than from the previous edge, so month steps from the 29th to
// 31st clamp to short months without drifting.
func (g Granularity) boundary(origin time.Time, k int) time.Time {
	switch g {
	case Hour:
		return origin.Add(time.Duration(k) * time.Hour)
	case Day:
		return origin.AddDate(0, 0, k)
	case Week:
		return origin.AddDate(0, 0, 7*k)
	case Month:
		return addMonthsClamped(origin, k)
	case Quarter:
		return addMonthsClamped(origin, 3*k)
	}
	return origin
}

// addMonthsClamped adds n calendar months, clamping the day to the length of
// the target month.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Label formats the bucket start for display.
func (g Granularity) Label(t time.Time) string {
	t = t.UTC()
	switch g {
	case Hour:
		return t.Format("2006-01-02T15:04")
	case Week:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case Month:
		return t.Format("2006-01")
	case Quarter:
		return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format("2006-01-02")
	}
}

// Buckets splits [start, end) into consecutive buckets of the given granularity.
//
// Without alignment buckets step from start. With alignment bucket edges fall
// on calendar boundaries (ISO weeks, calendar months and quarters); the first
// and last buckets are clipped to the range and may therefore be partial.
// An empty or inverted range yields no buckets.
func Buckets(g Granularity, start, end time.Time, align bool) []model.Bucket {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return []model.Bucket{}
	}

	var buckets []model.Bucket
	origin := start
	if align {
		origin = g.floor(start)
	}
	for k, cursor := 0, origin; cursor.Before(end); k++ {
		next := g.boundary(origin, k+1)
		b := model.Bucket{
			Label: g.Label(cursor),
			Start: cursor,
			End:   next,
		}
		if b.Start.Before(start) {
			b.Start = start
		}
		if b.End.After(end) {
			b.End = end
		}
		buckets = append(buckets, b)
		cursor = next
	}
	return buckets
}

// Partition assigns each record to the bucket containing its timestamp.
// Records outside the buckets' overall range are dropped. The result has one
// slice per bucket, in bucket order.
func Partition[T any](buckets []model.Bucket, records []T, timestamp func(T) time.Time) [][]T {
	groups := make([][]T, len(buckets))
	if len(buckets) == 0 {
		return groups
	}
	first, last := buckets[0].Start, buckets[len(buckets)-1].End
	for _, rec := range records {
		t := timestamp(rec).UTC()
		if t.Before(first) || !t.Before(last) {
			continue
		}
		idx := sort.Search(len(buckets), func(i int) bool {
			return buckets[i].End.After(t)
		})
		if idx < len(buckets) && buckets[idx].Contains(t) {
			groups[idx] = append(groups[idx], rec)
		}
	}
	return groups
}
