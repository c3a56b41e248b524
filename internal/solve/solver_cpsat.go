package solve

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"google.golang.org/protobuf/proto"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

// DefaultTimeBudget bounds the search wall-clock time. When it expires the
// solver returns its best status found so far instead of blocking.
const DefaultTimeBudget = 20 * time.Second

type cpSatSolver struct {
	budget time.Duration
}

func NewCpSatSolverWithBudget(budget time.Duration) Solver {
	return &cpSatSolver{budget: budget}
}

func (solver *cpSatSolver) Solve(model *cmpb.CpModelProto) (Result, error) {
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(solver.budget.Seconds()),
	}

	response, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return Result{}, fmt.Errorf("an error occurred during cp-sat execution: %w", err)
	}

	var status Status
	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		status = Optimal
	case cmpb.CpSolverStatus_FEASIBLE:
		status = Feasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		status = Infeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return Result{}, fmt.Errorf("cp-sat rejected the model: %v", response.GetSolutionInfo())
	default:
		status = Unknown
	}

	return Result{Status: status, response: response}, nil
}
