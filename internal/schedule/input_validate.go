package schedule

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationReport collects input oddities that are tolerated rather than
// rejected. A worker row that never mentions a role is scheduled as
// ineligible for it, but the omission is worth surfacing to the caller.
type ValidationReport struct {
	MissingSkills []string
}

// ValidateInput rejects malformed rosters and requirement tables before any
// model variable is created. It returns a report of tolerated omissions on
// success.
func ValidateInput(input PlannerInput) (ValidationReport, error) {
	report := ValidationReport{}

	if err := validate.Struct(input); err != nil {
		return report, fmt.Errorf("invalid roster: %w", err)
	}

	for _, worker := range input.Workers {
		for skill := range worker.Skills {
			if _, known := RoleFromName(skill); !known {
				return report, fmt.Errorf("worker %v: unknown role %v in skills", worker.Name, skill)
			}
		}
		for _, role := range Roles {
			if _, specified := worker.Skills[role.String()]; !specified {
				report.MissingSkills = append(report.MissingSkills, fmt.Sprintf("%v/%v", worker.Name, role))
			}
		}
	}

	if len(input.Needs) == 0 {
		return report, fmt.Errorf("staffing needs are missing")
	}
	for roleName, perDay := range input.Needs {
		if _, known := RoleFromName(roleName); !known {
			return report, fmt.Errorf("unknown role %v in staffing needs", roleName)
		}
		for dayName, hours := range perDay {
			if !validDayName(dayName) {
				return report, fmt.Errorf("role %v: unknown day %v in staffing needs", roleName, dayName)
			}
			if len(hours) != HoursPerDay {
				return report, fmt.Errorf("role %v, %v: expected %v hourly needs, got %v", roleName, dayName, HoursPerDay, len(hours))
			}
			for h, count := range hours {
				if count < 0 {
					return report, fmt.Errorf("role %v, %v, %v: negative staffing need %v", roleName, dayName, HourLabel(h), count)
				}
			}
		}
	}
	for _, role := range Roles {
		perDay, ok := input.Needs[role.String()]
		if !ok {
			return report, fmt.Errorf("staffing needs are missing for role %v", role)
		}
		for _, dayName := range DayNames {
			if _, ok := perDay[dayName]; !ok {
				return report, fmt.Errorf("role %v: staffing needs are missing for %v", role, dayName)
			}
		}
	}

	return report, nil
}

func validDayName(name string) bool {
	for _, dayName := range DayNames {
		if dayName == name {
			return true
		}
	}
	return false
}
