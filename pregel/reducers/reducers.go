/*
	Message reducers for use with message.ReducingMessenger.
*/
package reducers

import (
	"math"

	"github.com/Ahmed-Sermani/go-pregel/pregel/message"
	"golang.org/x/xerrors"
)

var (
	_ message.Reducer[float64] = Sum{}
	_ message.Reducer[float64] = Min{}
	_ message.Reducer[float64] = Max{}
	_ message.Reducer[float64] = Count{}
)

// Sum adds up all messages.
type Sum struct{}

func (Sum) Identity() float64 { return 0 }
func (Sum) Reduce(current, msg float64) float64 { return current + msg }

// Min keeps the smallest message.
type Min struct{}

func (Min) Identity() float64 { return math.MaxFloat64 }
func (Min) Reduce(current, msg float64) float64 { return math.Min(current, msg) }

// Max keeps the largest message.
type Max struct{}

func (Max) Identity() float64 { return -math.MaxFloat64 }
func (Max) Reduce(current, msg float64) float64 { return math.Max(current, msg) }

// Count counts the messages and ignores their values.
type Count struct{}

func (Count) Identity() float64 { return 0 }
func (Count) Reduce(current, _ float64) float64 { return current + 1 }

// Parse maps a reducer name as used in configuration files to a reducer.
func Parse(name string) (message.Reducer[float64], error) {
	switch name {
	case "sum", "SUM":
		return Sum{}, nil
	case "min", "MIN":
		return Min{}, nil
	case "max", "MAX":
		return Max{}, nil
	case "count", "COUNT":
		return Count{}, nil
	default:
		return nil, xerrors.Errorf("unknown reducer %q", name)
	}
}
