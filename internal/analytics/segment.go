package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-analytics/internal/model"
)

// Segment names. Spend tiers and recency tags are independent dimensions.
const (
	SegmentHighValue   = "high_value"
	SegmentMediumValue = "medium_value"
	SegmentLowValue    = "low_value"
	SegmentNew         = "new"
	SegmentAtRisk      = "at_risk"
	SegmentDormant     = "dormant"
	SegmentNone        = "no_segment"
)

const day = 24 * time.Hour

// SegmentOptions holds the recency thresholds.
type SegmentOptions struct {
	NewWithin    time.Duration
	AtRiskAfter  time.Duration
	DormantAfter time.Duration
}

// DefaultSegmentOptions: new within 30 days of joining, at risk when the last
// order is 60 to 120 days old, dormant beyond 120 days.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		NewWithin:    30 * day,
		AtRiskAfter:  60 * day,
		DormantAfter: 120 * day,
	}
}

// Segmentation is the result of classifying every customer.
type Segmentation struct {
	Segments []model.Segment
	Profiles []model.CustomerProfile
}

// UniqueUsers drops repeated user ids, keeping the first row of each.
func UniqueUsers(users []model.User) []model.User {
	seen := make(map[string]struct{}, len(users))
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}

// BuildProfiles computes lifetime spend, order count and first/last order
// dates for every distinct user. Orders of unknown users are ignored. Profiles keep
// the order of users.
func BuildProfiles(users []model.User, orders []model.Order) []model.CustomerProfile {
	users = UniqueUsers(users)
	type acc struct {
		spend decimal.Decimal
		count int
		first time.Time
		last  time.Time
	}
	byUser := make(map[string]*acc, len(users))
	for _, u := range users {
		byUser[u.ID] = &acc{spend: decimal.Zero}
	}
	for _, o := range orders {
		a, ok := byUser[o.UserID]
		if !ok {
			continue
		}
		a.spend = a.spend.Add(decimal.NewFromFloat(o.Total))
		if a.count == 0 || o.CreatedAt.Before(a.first) {
			a.first = o.CreatedAt
		}
		if a.count == 0 || o.CreatedAt.After(a.last) {
			a.last = o.CreatedAt
		}
		a.count++
	}

	profiles := make([]model.CustomerProfile, 0, len(users))
	for _, u := range users {
		a := byUser[u.ID]
		p := model.CustomerProfile{
			UserID:     u.ID,
			Name:       u.Name,
			Email:      u.Email,
			JoinedAt:   u.CreatedAt,
			OrderCount: a.count,
			Spend:      a.spend.Round(2).InexactFloat64(),
		}
		if a.count > 0 {
			first, last := a.first, a.last
			p.FirstOrderAt = &first
			p.LastOrderAt = &last
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// Segment classifies customers by spend tier and recency relative to now.
//
// Customers with at least one order are ranked by lifetime spend, highest
// first; equal spend is ordered by user id so the ranking is stable across
// runs. The top 20% (rounded up) are high value, ranks up to 80% (rounded
// up) medium value, the rest low value. Customers without orders get no
// spend tier.
//
// Each customer also gets exactly one recency tag: new when joined within
// NewWithin, otherwise at risk or dormant by age of the last order, otherwise
// no_segment. Customers without orders can only be new or no_segment.
func Segment(users []model.User, orders []model.Order, now time.Time, opts SegmentOptions) Segmentation {
	profiles := BuildProfiles(users, orders)

	ranked := make([]int, 0, len(profiles))
	for i, p := range profiles {
		if p.OrderCount > 0 {
			ranked = append(ranked, i)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		pa, pb := profiles[ranked[a]], profiles[ranked[b]]
		if pa.Spend != pb.Spend {
			return pa.Spend > pb.Spend
		}
		return pa.UserID < pb.UserID
	})

	n := len(ranked)
	highEnd := ceilPercent(n, 20)
	mediumEnd := ceilPercent(n, 80)
	for rank, idx := range ranked {
		switch {
		case rank < highEnd:
			profiles[idx].SpendTier = SegmentHighValue
		case rank < mediumEnd:
			profiles[idx].SpendTier = SegmentMediumValue
		default:
			profiles[idx].SpendTier = SegmentLowValue
		}
	}

	for i := range profiles {
		profiles[i].RecencyTag = recencyTag(profiles[i], now, opts)
	}

	segments := []model.Segment{
		newSegment(SegmentHighValue, "top 20% of customers by lifetime spend"),
		newSegment(SegmentMediumValue, "next 60% of customers by lifetime spend"),
		newSegment(SegmentLowValue, "bottom 20% of customers by lifetime spend"),
		newSegment(SegmentNew, fmt.Sprintf("joined within %d days", days(opts.NewWithin))),
		newSegment(SegmentAtRisk, fmt.Sprintf("last order %d to %d days ago", days(opts.AtRiskAfter), days(opts.DormantAfter))),
		newSegment(SegmentDormant, fmt.Sprintf("last order more than %d days ago", days(opts.DormantAfter))),
		newSegment(SegmentNone, "no recency segment applies"),
	}
	index := make(map[string]int, len(segments))
	for i, s := range segments {
		index[s.Name] = i
	}
	for _, idx := range ranked {
		s := &segments[index[profiles[idx].SpendTier]]
		s.Members = append(s.Members, profiles[idx].UserID)
	}
	for _, p := range profiles {
		s := &segments[index[p.RecencyTag]]
		s.Members = append(s.Members, p.UserID)
	}
	for i := range segments {
		segments[i].Count = len(segments[i].Members)
	}

	return Segmentation{Segments: segments, Profiles: profiles}
}

func recencyTag(p model.CustomerProfile, now time.Time, opts SegmentOptions) string {
	if !p.JoinedAt.IsZero() && now.Sub(p.JoinedAt) <= opts.NewWithin {
		return SegmentNew
	}
	if p.LastOrderAt == nil {
		return SegmentNone
	}
	age := now.Sub(*p.LastOrderAt)
	switch {
	case age > opts.DormantAfter:
		return SegmentDormant
	case age >= opts.AtRiskAfter:
		return SegmentAtRisk
	default:
		return SegmentNone
	}
}

func newSegment(name, criterion string) model.Segment {
	return model.Segment{Name: name, Criterion: criterion, Members: []string{}}
}

func days(d time.Duration) int {
	return int(d / day)
}

// ceilPercent returns ceil(n*pct/100) using integer arithmetic.
func ceilPercent(n, pct int) int {
	return (n*pct + 99) / 100
}
