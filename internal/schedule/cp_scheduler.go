package schedule

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/Edditols/Kitchenplanner/internal/solve"
)

type cpScheduler struct {
	//** Dependencies
	solver  solve.Solver
	indexer Indexer

	//** Per-solve model state; never shared nor reused across solves
	builder *cpmodel.Builder
	shifts  []cpmodel.BoolVar   // dense (worker, role, slot) grid, addressed through indexer
	off     [][]cpmodel.BoolVar // off[worker][day] is true iff the worker works zero hours that day

	workers  []Worker
	eligible [][]bool
	req      [][]int // req[role][slot]
}

func newCpScheduler(solver solve.Solver) *cpScheduler {
	return &cpScheduler{
		solver: solver,
	}
}

func (scheduler *cpScheduler) Build(input PlannerInput) (*Result, error) {
	//** Validate input before any variable exists
	report, err := ValidateInput(input)
	if err != nil {
		return nil, err
	}
	for _, missing := range report.MissingSkills {
		log.Warningf("skill not specified, treating as ineligible: %v", missing)
	}

	//** Initialize per-solve state
	scheduler.builder = cpmodel.NewCpModelBuilder()
	scheduler.indexer = NewIndexer(len(input.Workers))
	scheduler.workers = input.Workers
	scheduler.eligible = input.Eligibility()
	scheduler.req = input.RequirementMatrix()

	//** Declare decision variables and their derived indicators
	scheduler.declareShiftVariables()
	scheduler.declareOffVariables()

	//** Post constraint groups
	scheduler.singleRoleConstraints()
	scheduler.roleSwitchConstraints()
	scheduler.dailyLimitConstraints()
	scheduler.consecutiveDaysOffConstraints()
	scheduler.weeklyHourConstraints()
	scheduler.skillConstraints()
	scheduler.coverageConstraints()

	// Total assigned hours are fixed by the coverage equalities, so this
	// objective cannot change the total; it only tie-breaks among
	// otherwise-equal solutions.
	scheduler.builder.Minimize(scheduler.weekTotal())

	//** Solve
	model, err := scheduler.builder.Model()
	if err != nil {
		return nil, fmt.Errorf("cannot instantiate model: %w", err)
	}

	solution, err := scheduler.solver.Solve(model)
	if err != nil {
		return nil, err
	} else if !solution.Feasible() { // Return nil if no feasible schedule was found
		return nil, nil
	}

	//** Decode
	return scheduler.decode(solution), nil
}

func (scheduler *cpScheduler) Verify(result *Result, input PlannerInput) bool {
	return verify(result, input)
}

// declareShiftVariables creates one boolean per (worker, role, slot). These
// are the only controllable variables; they must come first so their model
// indices match the indexer's dense layout.
func (scheduler *cpScheduler) declareShiftVariables() {
	scheduler.shifts = make([]cpmodel.BoolVar, len(scheduler.workers)*len(Roles)*Slots)
	for w := range scheduler.workers {
		for r := range Roles {
			for t := range Slots {
				index := scheduler.indexer.Index(w, r, t)
				scheduler.shifts[index] = scheduler.builder.NewBoolVar().WithName(fmt.Sprintf("w%v_r%v_t%v", w, r, t))
			}
		}
	}
}

// declareOffVariables links one boolean per (worker, day) to the daily hour
// total: off <=> zero hours, and a day that is not off carries at least 3
// hours. The lower bound closes the gap between "not off" and the 3-hour
// minimum block length.
func (scheduler *cpScheduler) declareOffVariables() {
	scheduler.off = make([][]cpmodel.BoolVar, len(scheduler.workers))
	for w := range scheduler.workers {
		scheduler.off[w] = make([]cpmodel.BoolVar, Days)
		for d := range Days {
			off := scheduler.builder.NewBoolVar().WithName(fmt.Sprintf("off_w%v_d%v", w, d))
			dayTotal := scheduler.dayTotal(w, d)
			scheduler.builder.AddEquality(dayTotal, cpmodel.NewConstant(0)).OnlyEnforceIf(off)
			scheduler.builder.AddGreaterOrEqual(dayTotal, cpmodel.NewConstant(3)).OnlyEnforceIf(off.Not())
			scheduler.off[w][d] = off
		}
	}
}

// A worker can perform at most one role per hour
func (scheduler *cpScheduler) singleRoleConstraints() {
	for w := range scheduler.workers {
		for t := range Slots {
			scheduler.builder.AddAtMostOne(scheduler.roleVariables(w, t)...)
		}
	}
}

// A worker cannot change roles within the same day: for every pair of
// adjacent hours, holding role r1 forbids holding any different r2 next hour
func (scheduler *cpScheduler) roleSwitchConstraints() {
	for w := range scheduler.workers {
		for d := range Days {
			for h := range HoursPerDay - 1 {
				t := scheduler.indexer.Slot(d, h)
				t1 := scheduler.indexer.Slot(d, h+1)
				for r1 := range Roles {
					for r2 := range Roles {
						if r1 != r2 {
							scheduler.builder.AddAtMostOne(
								scheduler.shifts[scheduler.indexer.Index(w, r1, t)],
								scheduler.shifts[scheduler.indexer.Index(w, r2, t1)],
							)
						}
					}
				}
			}
		}
	}
}

// dailyLimitConstraints caps a day at 10 hours, reifies block starts and
// bounds their count by maxBreaks+1.
func (scheduler *cpScheduler) dailyLimitConstraints() {
	one := cpmodel.NewConstant(1)
	for w, worker := range scheduler.workers {
		for d := range Days {
			scheduler.builder.AddLessOrEqual(scheduler.dayTotal(w, d), cpmodel.NewConstant(10))

			starts := cpmodel.NewLinearExpr()
			for h := range HoursPerDay {
				curr := scheduler.hourTotal(w, d, h)
				start := scheduler.builder.NewBoolVar().WithName(fmt.Sprintf("start_w%v_d%v_h%v", w, d, h))

				if h == 0 {
					// A start at the first hour of the day only depends on the current work status
					scheduler.builder.AddEquality(curr, one).OnlyEnforceIf(start)
					scheduler.builder.AddNotEqual(curr, one).OnlyEnforceIf(start.Not())
				} else {
					// A start is a transition from not working (prev=0) to working (curr=1)
					prev := scheduler.hourTotal(w, d, h-1)
					diff := cpmodel.NewLinearExpr().Add(curr).AddTerm(prev, -1)
					scheduler.builder.AddEquality(diff, one).OnlyEnforceIf(start)
					scheduler.builder.AddNotEqual(diff, one).OnlyEnforceIf(start.Not())
				}

				if h <= HoursPerDay-3 {
					// A block that starts here must reach 3 contiguous hours
					window := cpmodel.NewLinearExpr()
					for hh := h; hh < h+3; hh++ {
						window.AddSum(scheduler.roleArguments(w, scheduler.indexer.Slot(d, hh))...)
					}
					scheduler.builder.AddGreaterOrEqual(window, cpmodel.NewConstant(3)).OnlyEnforceIf(start)
				} else {
					// Cannot start a block with fewer than 3 hours left in the day
					scheduler.builder.AddEquality(start, cpmodel.NewConstant(0))
				}
				starts.Add(start)
			}

			// N work blocks imply at most N-1 breaks
			scheduler.builder.AddLessOrEqual(starts, cpmodel.NewConstant(int64(worker.MaxBreaks)+1))
		}
	}
}

// Every worker gets at least one pair of consecutive full days off
func (scheduler *cpScheduler) consecutiveDaysOffConstraints() {
	for w := range scheduler.workers {
		pairs := make([]cpmodel.BoolVar, 0, Days-1)
		for d := range Days - 1 {
			pair := scheduler.builder.NewBoolVar().WithName(fmt.Sprintf("2off_w%v_d%v", w, d))
			scheduler.builder.AddBoolAnd(scheduler.off[w][d], scheduler.off[w][d+1]).OnlyEnforceIf(pair)
			scheduler.builder.AddBoolOr(scheduler.off[w][d].Not(), scheduler.off[w][d+1].Not()).OnlyEnforceIf(pair.Not())
			pairs = append(pairs, pair)
		}
		scheduler.builder.AddAtLeastOne(pairs...)
	}
}

// Weekly maximum hours per worker
func (scheduler *cpScheduler) weeklyHourConstraints() {
	for w, worker := range scheduler.workers {
		total := cpmodel.NewLinearExpr()
		for r := range Roles {
			for t := range Slots {
				total.Add(scheduler.shifts[scheduler.indexer.Index(w, r, t)])
			}
		}
		scheduler.builder.AddLessOrEqual(total, cpmodel.NewConstant(int64(worker.MaxHours)))
	}
}

// A worker is never assigned a role outside their eligible set
func (scheduler *cpScheduler) skillConstraints() {
	zero := cpmodel.NewConstant(0)
	for w := range scheduler.workers {
		for r := range Roles {
			if !scheduler.eligible[w][r] {
				for t := range Slots {
					scheduler.builder.AddEquality(scheduler.shifts[scheduler.indexer.Index(w, r, t)], zero)
				}
			}
		}
	}
}

// Assigned headcount per (role, slot) matches the requirement exactly
func (scheduler *cpScheduler) coverageConstraints() {
	for r := range Roles {
		for t := range Slots {
			assigned := cpmodel.NewLinearExpr()
			for w := range scheduler.workers {
				assigned.Add(scheduler.shifts[scheduler.indexer.Index(w, r, t)])
			}
			scheduler.builder.AddEquality(assigned, cpmodel.NewConstant(int64(scheduler.req[r][t])))
		}
	}
}

func (scheduler *cpScheduler) roleVariables(worker, slot int) []cpmodel.BoolVar {
	variables := make([]cpmodel.BoolVar, len(Roles))
	for r := range Roles {
		variables[r] = scheduler.shifts[scheduler.indexer.Index(worker, r, slot)]
	}
	return variables
}

func (scheduler *cpScheduler) roleArguments(worker, slot int) []cpmodel.LinearArgument {
	arguments := make([]cpmodel.LinearArgument, len(Roles))
	for r, variable := range scheduler.roleVariables(worker, slot) {
		arguments[r] = variable
	}
	return arguments
}

// hourTotal is the number of roles the worker holds at (day, hour); the
// single-role constraint keeps it within 0..1.
func (scheduler *cpScheduler) hourTotal(worker, day, hour int) *cpmodel.LinearExpr {
	return cpmodel.NewLinearExpr().AddSum(scheduler.roleArguments(worker, scheduler.indexer.Slot(day, hour))...)
}

func (scheduler *cpScheduler) dayTotal(worker, day int) *cpmodel.LinearExpr {
	total := cpmodel.NewLinearExpr()
	for h := range HoursPerDay {
		total.AddSum(scheduler.roleArguments(worker, scheduler.indexer.Slot(day, h))...)
	}
	return total
}

func (scheduler *cpScheduler) weekTotal() *cpmodel.LinearExpr {
	total := cpmodel.NewLinearExpr()
	for _, variable := range scheduler.shifts {
		total.Add(variable)
	}
	return total
}
