package schedule

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// The planning horizon is fixed: one week of 14 working hours per day,
// starting at 10:00.
const (
	Days        = 7
	HoursPerDay = 14
	StartHour   = 10
	Slots       = Days * HoursPerDay
)

type Role int

const (
	Cook Role = iota
	PizzaMaker
	Dishwasher
)

var Roles = []Role{Cook, PizzaMaker, Dishwasher}

var roleNames = map[Role]string{
	Cook:       "Cook",
	PizzaMaker: "PizzaMaker",
	Dishwasher: "Dishwasher",
}

func (role Role) String() string {
	return roleNames[role]
}

// RoleFromName returns the Role matching the given label, reporting whether
// the label names a known role.
func RoleFromName(name string) (Role, bool) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, true
		}
	}
	return 0, false
}

var DayNames = [Days]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// HourLabel returns the clock-hour label of the given hour offset within a
// day, e.g. HourLabel(0) == "10:00" and HourLabel(13) == "23:00".
func HourLabel(hour int) string {
	return fmt.Sprintf("%v:00", (StartHour+hour)%24)
}

type Worker struct {
	Name      string          `validate:"required"`
	Skills    map[string]bool // Role name -> eligibility; an absent role counts as ineligible
	MaxHours  int             `mapstructure:"maxHours" validate:"min=0"`
	MaxBreaks int             `mapstructure:"maxBreaks" validate:"min=0"`
}

// PlannerInput carries everything the presentation layer supplies for one
// solve: the worker roster and the per-role hourly staffing needs.
type PlannerInput struct {
	Workers []Worker `validate:"required,min=1,dive"`
	// Needs maps role name -> day name -> required headcount per hour
	// (HoursPerDay entries each).
	Needs map[string]map[string][]int
}

// Eligibility returns a dense [worker][role] matrix derived from the skill
// maps. Absent skill flags decode to false.
func (input PlannerInput) Eligibility() [][]bool {
	eligible := make([][]bool, len(input.Workers))
	for w, worker := range input.Workers {
		eligible[w] = make([]bool, len(Roles))
		for r, role := range Roles {
			eligible[w][r] = worker.Skills[role.String()]
		}
	}
	return eligible
}

// RequirementMatrix returns a dense [role][slot] matrix of the staffing
// needs, flattened with slot = day*HoursPerDay + hour.
func (input PlannerInput) RequirementMatrix() [][]int {
	requirements := make([][]int, len(Roles))
	for r, role := range Roles {
		requirements[r] = make([]int, Slots)
		for d, dayName := range DayNames {
			for h, count := range input.Needs[role.String()][dayName] {
				requirements[r][d*HoursPerDay+h] = count
			}
		}
	}
	return requirements
}

func InputFromJson(file string) (PlannerInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return PlannerInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return PlannerInput{}, err
	}

	var input PlannerInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return PlannerInput{}, fmt.Errorf("cannot decode input: %w", err)
	}

	return input, nil
}

// DefaultNeeds generates the reference staffing pattern: every role needed
// during the 10:00-15:00 and 18:00-22:00 peaks, only a cook during the
// 16:00-17:00 lull, nobody otherwise.
func DefaultNeeds() map[string]map[string][]int {
	needs := make(map[string]map[string][]int, len(Roles))
	for _, role := range Roles {
		daily := make([]int, HoursPerDay)
		for h := range HoursPerDay {
			switch {
			case h <= 5 || (8 <= h && h <= 12):
				daily[h] = 1
			case 6 <= h && h <= 7:
				if role == Cook {
					daily[h] = 1
				}
			}
		}

		needs[role.String()] = make(map[string][]int, Days)
		for _, dayName := range DayNames {
			needs[role.String()][dayName] = append([]int{}, daily...)
		}
	}
	return needs
}
