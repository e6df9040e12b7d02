package analytics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"marketplace-analytics/internal/model"
)

// ReducerKind names a reduction over the records of a bucket.
type ReducerKind string

const (
	Count       ReducerKind = "count"
	Sum         ReducerKind = "sum"
	Average     ReducerKind = "average"
	UniqueCount ReducerKind = "uniqueCount"
)

// Record is anything whose attributes can be read by field name.
type Record interface {
	FieldValue(name string) (any, bool)
}

// Reducer is a declarative reduction: Kind applied to Field, stored under Name.
type Reducer struct {
	Name  string
	Kind  ReducerKind
	Field string
}

var reducerExpr = regexp.MustCompile(`^(?:(\w+)\s*=\s*)?(\w+)(?:\((\w*)\))?$`)

// ParseReducer parses "count", "sum(total)" or "revenue=sum(total)".
func ParseReducer(expr string) (Reducer, error) {
	m := reducerExpr.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return Reducer{}, fmt.Errorf("invalid reducer %q", expr)
	}
	r := Reducer{Name: m[1], Kind: ReducerKind(m[2]), Field: m[3]}
	switch r.Kind {
	case Count:
	case Sum, Average, UniqueCount:
		if r.Field == "" {
			return Reducer{}, fmt.Errorf("reducer %s requires a field", r.Kind)
		}
	default:
		return Reducer{}, fmt.Errorf("unknown reducer %q", m[2])
	}
	if r.Name == "" {
		r.Name = r.defaultName()
	}
	return r, nil
}

// MustReducers parses a fixed list of reducer expressions and panics on error.
func MustReducers(exprs ...string) []Reducer {
	out := make([]Reducer, 0, len(exprs))
	for _, e := range exprs {
		r, err := ParseReducer(e)
		if err != nil {
			panic(err)
		}
		out = append(out, r)
	}
	return out
}

func (r Reducer) defaultName() string {
	if r.Field == "" {
		return string(r.Kind)
	}
	return string(r.Kind) + "_" + r.Field
}

// Aggregate computes every reducer for every bucket. groups must be the
// output of Partition for the same buckets. The input buckets are not modified.
func Aggregate[R Record](buckets []model.Bucket, groups [][]R, reducers []Reducer) []model.Bucket {
	out := make([]model.Bucket, len(buckets))
	for i, b := range buckets {
		var records []R
		if i < len(groups) {
			records = groups[i]
		}
		values := make(map[string]float64, len(reducers))
		for _, r := range reducers {
			values[r.Name] = Reduce(records, r)
		}
		b.Values = values
		out[i] = b
	}
	return out
}

// Reduce applies a single reducer to a record set. Records lacking the field
// are ignored by sum, average and uniqueCount. The average of no values is 0.
func Reduce[R Record](records []R, r Reducer) float64 {
	switch r.Kind {
	case Count:
		return float64(len(records))
	case Sum:
		total, _ := sumField(records, r.Field)
		return total.InexactFloat64()
	case Average:
		total, n := sumField(records, r.Field)
		if n == 0 {
			return 0
		}
		return total.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
	case UniqueCount:
		seen := make(map[string]struct{})
		for _, rec := range records {
			v, ok := rec.FieldValue(r.Field)
			if !ok || v == nil {
				continue
			}
			seen[fmt.Sprint(v)] = struct{}{}
		}
		return float64(len(seen))
	}
	return 0
}

func sumField[R Record](records []R, field string) (decimal.Decimal, int) {
	total := decimal.Zero
	n := 0
	for _, rec := range records {
		v, ok := rec.FieldValue(field)
		if !ok {
			continue
		}
		d, ok := toDecimal(v)
		if !ok {
			continue
		}
		total = total.Add(d)
		n++
	}
	return total, n
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint32:
		return decimal.NewFromInt(int64(x)), true
	case decimal.Decimal:
		return x, true
	default:
		return decimal.Zero, false
	}
}
