package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Edditols/Kitchenplanner/internal/solve"
)

func zeroNeeds() map[string]map[string][]int {
	needs := make(map[string]map[string][]int)
	for _, role := range Roles {
		perDay := make(map[string][]int)
		for _, dayName := range DayNames {
			perDay[dayName] = make([]int, HoursPerDay)
		}
		needs[role.String()] = perDay
	}
	return needs
}

func emptyRows(workers []Worker) []DayRow {
	rows := make([]DayRow, 0, len(workers)*Days)
	for _, worker := range workers {
		for d := range Days {
			rows = append(rows, DayRow{Worker: worker.Name, Day: DayNames[d]})
		}
	}
	return rows
}

// verifyFixture builds a consistent two-worker schedule: EmpA cooks Monday
// 10:00-12:59, EmpB cooks Thursday 10:00-12:59, matching needs exactly.
func verifyFixture() (PlannerInput, *Result) {
	input := validInput(2)
	input.Needs = zeroNeeds()
	for h := 0; h < 3; h++ {
		input.Needs[Cook.String()][DayNames[0]][h] = 1
		input.Needs[Cook.String()][DayNames[3]][h] = 1
	}

	rows := emptyRows(input.Workers)
	for h := 0; h < 3; h++ {
		rows[0].Hours[h] = Cook.String()
		rows[Days+3].Hours[h] = Cook.String()
	}
	return input, &Result{Status: solve.Optimal, Rows: rows}
}

func TestVerify(t *testing.T) {
	scheduler := NewScheduler(&solve.FakeSolver{})

	t.Run("accepts a consistent schedule", func(t *testing.T) {
		input, result := verifyFixture()

		assert.True(t, scheduler.Verify(result, input))
	})

	t.Run("rejects a nil schedule", func(t *testing.T) {
		input, _ := verifyFixture()

		assert.False(t, scheduler.Verify(nil, input))
	})

	t.Run("rejects a coverage mismatch", func(t *testing.T) {
		input, result := verifyFixture()
		input.Needs[Cook.String()][DayNames[0]][2] = 0

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects a block shorter than three hours", func(t *testing.T) {
		input, result := verifyFixture()
		input.Needs[Cook.String()][DayNames[0]][2] = 0
		result.Rows[0].Hours[2] = ""

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects a role switch between adjacent hours", func(t *testing.T) {
		input, result := verifyFixture()
		for h := 3; h < 6; h++ {
			input.Needs[PizzaMaker.String()][DayNames[0]][h] = 1
			result.Rows[0].Hours[h] = PizzaMaker.String()
		}

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("accepts a role change across an idle gap", func(t *testing.T) {
		input, result := verifyFixture()
		for h := 5; h < 8; h++ {
			input.Needs[Dishwasher.String()][DayNames[0]][h] = 1
			result.Rows[0].Hours[h] = Dishwasher.String()
		}

		assert.True(t, scheduler.Verify(result, input))
	})

	t.Run("rejects an ineligible assignment", func(t *testing.T) {
		input, result := verifyFixture()
		input.Workers[0].Skills[Cook.String()] = false

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects more blocks than the break allowance", func(t *testing.T) {
		input, result := verifyFixture()
		input.Workers[0].MaxBreaks = 0
		for h := 5; h < 8; h++ {
			input.Needs[Cook.String()][DayNames[0]][h] = 1
			result.Rows[0].Hours[h] = Cook.String()
		}

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects a weekly cap excess", func(t *testing.T) {
		input, result := verifyFixture()
		input.Workers[0].MaxHours = 2

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects a week without two consecutive days off", func(t *testing.T) {
		input, result := verifyFixture()
		for d := 1; d < Days; d++ {
			if d == 3 {
				continue // EmpB already covers Thursday
			}
			for h := 0; h < 3; h++ {
				input.Needs[Cook.String()][DayNames[d]][h] = 1
				result.Rows[d].Hours[h] = Cook.String()
			}
		}

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects misattributed rows", func(t *testing.T) {
		input, result := verifyFixture()
		result.Rows[0].Worker = "Nobody"

		assert.False(t, scheduler.Verify(result, input))
	})

	t.Run("rejects an unknown role label", func(t *testing.T) {
		input, result := verifyFixture()
		for h := 0; h < 3; h++ {
			result.Rows[0].Hours[h] = "Sommelier"
		}

		assert.False(t, scheduler.Verify(result, input))
	})
}
