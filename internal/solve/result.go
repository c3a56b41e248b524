package solve

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

type Status int

const (
	// Unknown means the search ended without a solution nor an
	// infeasibility proof (e.g. the time budget expired first).
	Unknown Status = iota
	// Optimal means a solution was found and proven optimal.
	Optimal
	// Feasible means a solution was found but optimality is unproven.
	Feasible
	// Infeasible means no assignment can satisfy the model.
	Infeasible
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Optimal:    "optimal",
	Feasible:   "feasible",
	Infeasible: "infeasible",
}

func (status Status) String() string {
	return statusNames[status]
}

// Result carries the solver status and, when feasible, the satisfying
// assignment.
type Result struct {
	Status   Status
	response *cmpb.CpSolverResponse
}

// Feasible reports whether the result holds a usable assignment. A feasible
// result at timeout counts: an unproven schedule is still a valid schedule.
func (result Result) Feasible() bool {
	return result.Status == Optimal || result.Status == Feasible
}

// BoolValue returns the assigned value of the boolean variable. It must only
// be called on a feasible result.
func (result Result) BoolValue(variable cpmodel.BoolVar) bool {
	return cpmodel.SolutionBooleanValue(result.response, variable)
}

// ObjectiveValue returns the objective of the assignment.
func (result Result) ObjectiveValue() float64 {
	return result.response.GetObjectiveValue()
}
