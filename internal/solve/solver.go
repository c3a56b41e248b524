package solve

import (
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// Solver searches for an assignment satisfying a CP model within a bounded
// wall-clock budget. A Result is returned for every terminating search,
// including infeasible and timed-out ones; error is reserved for a broken
// model or a failing backend.
type Solver interface {
	Solve(model *cmpb.CpModelProto) (Result, error)
}

func NewCpSatSolver() Solver {
	return &cpSatSolver{budget: DefaultTimeBudget}
}
