package model

import "time"

// Bucket is a [Start, End) time interval with its aggregate values.
type Bucket struct {
	Label  string             `json:"label"`
	Start  time.Time          `json:"start"`
	End    time.Time          `json:"end"`
	Values map[string]float64 `json:"values,omitempty"`
}

// Contains reports whether t falls inside the half-open interval.
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Segment is a named group of customers and the rule that selected them.
type Segment struct {
	Name      string   `json:"name"`
	Criterion string   `json:"criterion"`
	Count     int      `json:"count"`
	Members   []string `json:"members"`
}

// CustomerProfile is the per-customer view used by segmentation and lifetime value.
type CustomerProfile struct {
	UserID       string     `json:"userId"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	JoinedAt     time.Time  `json:"joinedAt"`
	OrderCount   int        `json:"orderCount"`
	Spend        float64    `json:"lifetimeValue"`
	FirstOrderAt *time.Time `json:"firstOrderAt,omitempty"`
	LastOrderAt  *time.Time `json:"lastOrderAt,omitempty"`
	SpendTier    string     `json:"spendTier,omitempty"`
	RecencyTag   string     `json:"recencyTag"`
}

// CohortRow holds retention percentages for customers who joined in the same month.
type CohortRow struct {
	Cohort    string  `json:"cohort"`
	Size      int     `json:"size"`
	Converted int     `json:"converted"`
	Month1    float64 `json:"month1"`
	Month2    float64 `json:"month2"`
	Month3    float64 `json:"month3"`
	Month6    float64 `json:"month6"`
	Month12   float64 `json:"month12"`
}

// ForecastSeries is a historical series with its projection and confidence bounds.
type ForecastSeries struct {
	Model      string    `json:"model"`
	Historical []float64 `json:"historical"`
	Forecast   []float64 `json:"forecast"`
	Lower      []float64 `json:"lower"`
	Upper      []float64 `json:"upper"`
}
