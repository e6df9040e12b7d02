package analytics

import (
	"sort"
	"time"

	"marketplace-analytics/internal/model"
)

// RetentionHorizons are the month offsets reported for every cohort.
var RetentionHorizons = []int{1, 2, 3, 6, 12}

// CohortKey is the join month of a customer, formatted YYYY-MM in UTC.
func CohortKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MonthsBetween counts whole calendar months from from to to. A partial
// month does not count; a negative span is 0.
func MonthsBetween(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() || (to.Day() == from.Day() && timeOfDay(to) < timeOfDay(from)) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func timeOfDay(t time.Time) time.Duration {
	return t.Sub(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// Cohorts groups users by join month and reports, for each horizon k, the
// share of the cohort whose first order came at most k whole months after
// joining. Shares are cumulative so they never decrease as k grows. Rows are
// ordered by cohort month.
func Cohorts(users []model.User, orders []model.Order) []model.CohortRow {
	firstOrder := make(map[string]time.Time)
	for _, o := range orders {
		if t, ok := firstOrder[o.UserID]; !ok || o.CreatedAt.Before(t) {
			firstOrder[o.UserID] = o.CreatedAt
		}
	}

	type cohort struct {
		size      int
		converted int
		within    []int
	}
	cohorts := make(map[string]*cohort)
	for _, u := range UniqueUsers(users) {
		if u.CreatedAt.IsZero() {
			continue
		}
		key := CohortKey(u.CreatedAt)
		c, ok := cohorts[key]
		if !ok {
			c = &cohort{within: make([]int, len(RetentionHorizons))}
			cohorts[key] = c
		}
		c.size++

		first, ok := firstOrder[u.ID]
		if !ok {
			continue
		}
		c.converted++
		delta := MonthsBetween(u.CreatedAt, first)
		for i, k := range RetentionHorizons {
			if delta <= k {
				c.within[i]++
			}
		}
	}

	keys := make([]string, 0, len(cohorts))
	for k := range cohorts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]model.CohortRow, 0, len(keys))
	for _, k := range keys {
		c := cohorts[k]
		pct := make([]float64, len(RetentionHorizons))
		for i := range RetentionHorizons {
			pct[i] = Percent(float64(c.within[i]), float64(c.size))
		}
		rows = append(rows, model.CohortRow{
			Cohort:    k,
			Size:      c.size,
			Converted: c.converted,
			Month1:    pct[0],
			Month2:    pct[1],
			Month3:    pct[2],
			Month6:    pct[3],
			Month12:   pct[4],
		})
	}
	return rows
}
