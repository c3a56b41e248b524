package solve

import (
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// FakeSolver returns a canned assignment instead of searching. Scheduler
// tests use it to exercise decoding without a CP-SAT backend: Values[i] is
// the assigned value of the i-th model variable in creation order.
type FakeSolver struct {
	Status Status
	Values []int64
	Err    error

	// LastModel holds the model proto of the most recent Solve call.
	LastModel *cmpb.CpModelProto
}

func (solver *FakeSolver) Solve(model *cmpb.CpModelProto) (Result, error) {
	solver.LastModel = model
	if solver.Err != nil {
		return Result{}, solver.Err
	}

	// Pad the canned assignment so every declared variable has a value.
	values := make([]int64, len(model.GetVariables()))
	copy(values, solver.Values)

	return Result{
		Status:   solver.Status,
		response: &cmpb.CpSolverResponse{Solution: values},
	}, nil
}
