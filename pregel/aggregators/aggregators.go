/*
	Lock-free aggregators that compute steps can update concurrently.
	Set and Delta are expected to be called between supersteps, typically
	from master compute.
*/
package aggregators

import (
	"math"
	"sync/atomic"

	"github.com/Ahmed-Sermani/go-pregel/pregel"
)

var (
	_ pregel.Aggregator = (*IntAggregator)(nil)
	_ pregel.Aggregator = (*Float64Aggregator)(nil)
	_ pregel.Aggregator = (*Float64MaxAggregator)(nil)
)

// IntAggregator sums int values.
type IntAggregator struct {
	prevSum, curSum atomic.Int64
}

func (a *IntAggregator) Type() string { return "IntAggregator" }

func (a *IntAggregator) Get() any { return int(a.curSum.Load()) }

func (a *IntAggregator) Set(v any) {
	v64 := int64(v.(int))
	a.curSum.Store(v64)
	a.prevSum.Store(v64)
}

func (a *IntAggregator) Aggregate(v any) { a.curSum.Add(int64(v.(int))) }

func (a *IntAggregator) Delta() any {
	cur := a.curSum.Load()
	return int(cur - a.prevSum.Swap(cur))
}

// Float64Aggregator sums float64 values.
type Float64Aggregator struct {
	prevSum, curSum atomic.Uint64
}

func (a *Float64Aggregator) Type() string { return "Float64Aggregator" }

func (a *Float64Aggregator) Get() any { return math.Float64frombits(a.curSum.Load()) }

func (a *Float64Aggregator) Set(v any) {
	bits := math.Float64bits(v.(float64))
	a.curSum.Store(bits)
	a.prevSum.Store(bits)
}

func (a *Float64Aggregator) Aggregate(v any) {
	for v64 := v.(float64); ; {
		old := a.curSum.Load()
		if a.curSum.CompareAndSwap(old, math.Float64bits(math.Float64frombits(old)+v64)) {
			return
		}
	}
}

func (a *Float64Aggregator) Delta() any {
	cur := a.curSum.Load()
	prev := a.prevSum.Swap(cur)
	return math.Float64frombits(cur) - math.Float64frombits(prev)
}

// Float64MaxAggregator keeps the largest float64 value it has seen. The
// zero value starts at 0.
type Float64MaxAggregator struct {
	prevMax, curMax atomic.Uint64
}

func (a *Float64MaxAggregator) Type() string { return "Float64MaxAggregator" }

func (a *Float64MaxAggregator) Get() any { return math.Float64frombits(a.curMax.Load()) }

func (a *Float64MaxAggregator) Set(v any) {
	bits := math.Float64bits(v.(float64))
	a.curMax.Store(bits)
	a.prevMax.Store(bits)
}

func (a *Float64MaxAggregator) Aggregate(v any) {
	for v64 := v.(float64); ; {
		old := a.curMax.Load()
		if math.Float64frombits(old) >= v64 || a.curMax.CompareAndSwap(old, math.Float64bits(v64)) {
			return
		}
	}
}

// Delta returns how much the maximum grew since the last call.
func (a *Float64MaxAggregator) Delta() any {
	cur := a.curMax.Load()
	prev := a.prevMax.Swap(cur)
	return math.Float64frombits(cur) - math.Float64frombits(prev)
}
