package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

// Period keywords accepted by the reports.
const (
	PeriodToday   = "today"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodCustom  = "custom"

	defaultPeriod   = PeriodMonth
	defaultLookback = 30 * 24 * time.Hour
	dateLayout      = "2006-01-02"
)

// reportWindow is the resolved time scope of a report request.
type reportWindow struct {
	Period      string
	Range       model.DateRange
	Granularity analytics.Granularity
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// validateQuery checks keyword parameters and converts failures to a
// ValidationError naming every offending parameter.
func validateQuery(q any) error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "oneof" {
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
	}
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}

func normalizeQuery(q model.ReportQuery) model.ReportQuery {
	q.Period = strings.ToLower(strings.TrimSpace(q.Period))
	q.GroupBy = strings.ToLower(strings.TrimSpace(q.GroupBy))
	q.StartDate = strings.TrimSpace(q.StartDate)
	q.EndDate = strings.TrimSpace(q.EndDate)
	return q
}

// resolveWindow turns a query into a date range and bucket granularity
// ending at now. Explicit dates take precedence over the period keyword.
// An inverted explicit range is kept as is and yields empty results.
func resolveWindow(q model.ReportQuery, now time.Time) (reportWindow, error) {
	now = now.UTC()

	if q.StartDate != "" || q.EndDate != "" {
		end := now
		if q.EndDate != "" {
			t, err := parseDate(q.EndDate, true)
			if err != nil {
				return reportWindow{}, &ValidationError{Message: "endDate: " + err.Error()}
			}
			end = t
		}
		start := end.Add(-defaultLookback)
		if q.StartDate != "" {
			t, err := parseDate(q.StartDate, false)
			if err != nil {
				return reportWindow{}, &ValidationError{Message: "startDate: " + err.Error()}
			}
			start = t
		}
		rng := model.DateRange{Start: start, End: end}
		return reportWindow{Period: PeriodCustom, Range: rng, Granularity: granularityFor(rng.Duration())}, nil
	}

	period := q.Period
	if period == "" {
		period = defaultPeriod
	}
	w := reportWindow{Period: period, Range: model.DateRange{End: now}}
	switch period {
	case PeriodToday:
		w.Range.Start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		w.Granularity = analytics.Hour
		// At midnight the day so far is empty; keep the current hour.
		if !w.Range.Start.Before(w.Range.End) {
			w.Range.End = w.Range.Start.Add(time.Hour)
		}
	case PeriodWeek:
		w.Range.Start = now.AddDate(0, 0, -7)
		w.Granularity = analytics.Day
	case PeriodMonth:
		w.Range.Start = now.AddDate(0, 0, -30)
		w.Granularity = analytics.Day
	case PeriodQuarter:
		w.Range.Start = now.AddDate(0, 0, -90)
		w.Granularity = analytics.Week
	case PeriodYear:
		w.Range.Start = now.AddDate(0, 0, -365)
		w.Granularity = analytics.Month
	default:
		return reportWindow{}, &ValidationError{Message: fmt.Sprintf("unsupported period %q", q.Period)}
	}
	return w, nil
}

// granularityFor picks a bucket size that keeps custom ranges readable.
func granularityFor(span time.Duration) analytics.Granularity {
	switch {
	case span <= 2*24*time.Hour:
		return analytics.Hour
	case span <= 31*24*time.Hour:
		return analytics.Day
	case span <= 120*24*time.Hour:
		return analytics.Week
	default:
		return analytics.Month
	}
}

// parseDate accepts RFC3339 or a bare date. A bare end date covers the
// whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
