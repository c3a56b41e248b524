package schedule

import "github.com/Edditols/Kitchenplanner/internal/solve"

type Scheduler interface {
	// Build turns the roster and staffing needs into a constraint model,
	// hands it to the solver and decodes the outcome. It returns nil when no
	// feasible schedule exists (or none was found within the time budget),
	// and an error only on malformed input or a solver failure.
	Build(input PlannerInput) (*Result, error)

	// Verify re-checks every labor rule and the staffing coverage on a
	// decoded schedule
	Verify(result *Result, input PlannerInput) bool
}

func NewScheduler(solver solve.Solver) Scheduler {
	return newCpScheduler(solver)
}
