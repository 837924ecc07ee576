package pregel

import (
	"fmt"

	"github.com/Ahmed-Sermani/go-pregel/graph"
	"github.com/google/uuid"
)

// State is the lifecycle state of a Pregel run.
type State uint32

const (
	NotStarted State = iota
	Running
	// Converged means every node voted to halt and no message was in
	// flight.
	Converged
	// ExhaustedIterations means MaxIterations supersteps ran without
	// convergence.
	ExhaustedIterations
	// TerminatedByMaster means master compute requested termination.
	TerminatedByMaster
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Running:
		return "RUNNING"
	case Converged:
		return "CONVERGED"
	case ExhaustedIterations:
		return "EXHAUSTED_ITERATIONS"
	case TerminatedByMaster:
		return "TERMINATED_BY_MASTER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(s))
	}
}

// Result is the outcome of a Pregel run.
type Result struct {
	RunID uuid.UUID

	// The final node value table. The result owns it.
	NodeValues *NodeValue

	// The number of supersteps that were executed.
	RanIterations int

	// DidConverge is true unless the run stopped because it exhausted its
	// iteration budget.
	DidConverge bool

	State State
}

// Properties returns the public schema elements of the result keyed by
// property key.
func (r *Result) Properties() map[string]graph.PropertyValues {
	out := make(map[string]graph.PropertyValues)
	for _, e := range r.NodeValues.Schema().elements {
		if e.Visibility != Public {
			continue
		}
		if pv, ok := r.NodeValues.PropertyValues(e.PropertyKey); ok {
			out[e.PropertyKey] = pv
		}
	}
	return out
}
