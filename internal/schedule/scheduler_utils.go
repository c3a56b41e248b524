package schedule

import (
	"github.com/samber/lo"
)

// verify re-checks a decoded schedule against the raw input: every labor
// rule and the exact staffing coverage must hold. It trusts nothing about
// how the schedule was produced.
func verify(result *Result, input PlannerInput) bool {
	if result == nil || len(result.Rows) != len(input.Workers)*Days {
		return false
	}

	eligible := input.Eligibility()
	requirements := input.RequirementMatrix()

	//** Initialize coverage counters per (role, slot)
	coverage := make([][]int, len(Roles))
	for r := range Roles {
		coverage[r] = make([]int, Slots)
	}

	for w, worker := range input.Workers {
		weeklyHours := 0
		off := make([]bool, Days)

		for d := range Days {
			row := result.Rows[w*Days+d]
			if row.Worker != worker.Name || row.Day != DayNames[d] {
				return false
			}

			prevRole := ""
			workedHours := 0
			blocks := 0
			runLength := 0

			for h, roleName := range row.Hours {
				if roleName == "" {
					// A block that just ended must have lasted 3 hours
					if runLength > 0 && runLength < 3 {
						return false
					}
					runLength = 0
					prevRole = ""
					continue
				}
				role, known := RoleFromName(roleName)
				if !known {
					return false
				}

				// Check that:
				// - Worker is eligible for the role
				// - Role changes only happen across an idle gap, never
				//   between two consecutively worked hours
				if !eligible[w][role] || (prevRole != "" && prevRole != roleName) {
					return false
				}

				prevRole = roleName
				workedHours++
				runLength++
				if h == 0 || row.Hours[h-1] == "" {
					blocks++
				}
				coverage[role][d*HoursPerDay+h]++
			}
			if runLength > 0 && runLength < 3 {
				return false
			}

			// A working day carries between 3 and 10 hours, and its block
			// count stays within the worker's break allowance
			if workedHours > 0 && (workedHours < 3 || workedHours > 10) {
				return false
			}
			if blocks > worker.MaxBreaks+1 {
				return false
			}

			weeklyHours += workedHours
			off[d] = workedHours == 0
		}

		if weeklyHours > worker.MaxHours {
			return false
		}

		// At least one pair of consecutive full days off
		hasOffPair := lo.SomeBy(lo.Range(Days-1), func(d int) bool {
			return off[d] && off[d+1]
		})
		if !hasOffPair {
			return false
		}
	}

	// Check that assigned headcount matches the requirement exactly
	for r := range Roles {
		for t := range Slots {
			if coverage[r][t] != requirements[r][t] {
				return false
			}
		}
	}

	return true
}
