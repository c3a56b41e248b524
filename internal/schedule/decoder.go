package schedule

import (
	"math"

	"github.com/Edditols/Kitchenplanner/internal/solve"
)

// DayRow is one worker's schedule for one day: the assigned role name per
// hour, empty when idle.
type DayRow struct {
	Worker string
	Day    string
	Hours  [HoursPerDay]string
}

// WorkerSummary aggregates one worker's week.
type WorkerSummary struct {
	Worker       string
	TotalHours   int
	WorkingDays  int
	Breaks       int
	MaxOffStreak int
	AvgHours     float64
}

// Result is a decoded weekly schedule. Rows are ordered worker-major, day
// within worker, matching the roster order.
type Result struct {
	Status  solve.Status
	Rows    []DayRow
	Summary []WorkerSummary
}

// decode walks the solved boolean grid into schedule rows and per-worker
// aggregates. Decoding is a pure read of the solution: running it twice
// yields identical records.
func (scheduler *cpScheduler) decode(solution solve.Result) *Result {
	result := &Result{
		Status:  solution.Status,
		Rows:    make([]DayRow, 0, len(scheduler.workers)*Days),
		Summary: make([]WorkerSummary, 0, len(scheduler.workers)),
	}

	for w, worker := range scheduler.workers {
		var totalHours, workingDays, breaks, maxOffStreak, currentOffStreak int

		for d := range Days {
			row := DayRow{Worker: worker.Name, Day: DayNames[d]}
			workedHours := make([]int, 0, HoursPerDay)

			for h := range HoursPerDay {
				roleHere := ""
				for r, role := range Roles {
					// A correct model never assigns two roles in one hour;
					// should it happen anyway, the last role seen wins.
					if solution.BoolValue(scheduler.shifts[scheduler.indexer.Index(w, r, scheduler.indexer.Slot(d, h))]) {
						roleHere = role.String()
					}
				}
				row.Hours[h] = roleHere
				if roleHere != "" {
					workedHours = append(workedHours, h)
				}
			}
			result.Rows = append(result.Rows, row)

			if len(workedHours) > 0 {
				workingDays++
				totalHours += len(workedHours)
				// A break exists when the worked hours do not fill the span
				// between the first and last worked hour
				if len(workedHours) < workedHours[len(workedHours)-1]-workedHours[0]+1 {
					breaks++
				}
				currentOffStreak = 0
			} else {
				currentOffStreak++
				maxOffStreak = max(maxOffStreak, currentOffStreak)
			}
		}

		average := 0.0
		if workingDays > 0 {
			average = math.Round(float64(totalHours)/float64(workingDays)*100) / 100
		}
		result.Summary = append(result.Summary, WorkerSummary{
			Worker:       worker.Name,
			TotalHours:   totalHours,
			WorkingDays:  workingDays,
			Breaks:       breaks,
			MaxOffStreak: maxOffStreak,
			AvgHours:     average,
		})
	}

	return result
}
