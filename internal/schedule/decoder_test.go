package schedule

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Edditols/Kitchenplanner/internal/solve"
)

// cannedValues builds a fake shift assignment in the dense variable layout
// the builder declares: assign returns the role worked at (worker, day,
// hour), or ok=false when idle.
func cannedValues(workers int, assign func(worker, day, hour int) (Role, bool)) []int64 {
	indexer := NewIndexer(workers)
	values := make([]int64, workers*len(Roles)*Slots)
	for w := 0; w < workers; w++ {
		for d := 0; d < Days; d++ {
			for h := 0; h < HoursPerDay; h++ {
				if role, ok := assign(w, d, h); ok {
					values[indexer.Index(w, int(role), indexer.Slot(d, h))] = 1
				}
			}
		}
	}
	return values
}

func TestDecodeTwoBlocksCountAsOneBreak(t *testing.T) {
	g := NewWithT(t)

	// Arrange: one worker, day 0 only, working 10:00-12:59 and 15:00-17:59
	values := cannedValues(1, func(worker, day, hour int) (Role, bool) {
		if day == 0 && ((hour >= 0 && hour <= 2) || (hour >= 5 && hour <= 7)) {
			return Cook, true
		}
		return 0, false
	})
	solver := &solve.FakeSolver{Status: solve.Feasible, Values: values}
	scheduler := newCpScheduler(solver)

	// Act
	result, err := scheduler.Build(validInput(1))

	// Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).NotTo(BeNil())
	g.Expect(result.Rows).To(HaveLen(Days))

	monday := result.Rows[0]
	g.Expect(monday.Hours[0]).To(Equal("Cook"))
	g.Expect(monday.Hours[2]).To(Equal("Cook"))
	g.Expect(monday.Hours[3]).To(BeEmpty())
	g.Expect(monday.Hours[5]).To(Equal("Cook"))

	summary := result.Summary[0]
	g.Expect(summary.TotalHours).To(Equal(6))
	g.Expect(summary.WorkingDays).To(Equal(1))
	g.Expect(summary.Breaks).To(Equal(1))
	g.Expect(summary.MaxOffStreak).To(Equal(6))
	g.Expect(summary.AvgHours).To(Equal(6.0))
}

func TestDecodeIdleWorker(t *testing.T) {
	g := NewWithT(t)

	// Arrange
	solver := &solve.FakeSolver{Status: solve.Optimal, Values: cannedValues(1, func(int, int, int) (Role, bool) { return 0, false })}
	scheduler := newCpScheduler(solver)

	// Act
	result, err := scheduler.Build(validInput(1))

	// Assert
	g.Expect(err).NotTo(HaveOccurred())
	summary := result.Summary[0]
	g.Expect(summary.TotalHours).To(BeZero())
	g.Expect(summary.WorkingDays).To(BeZero())
	g.Expect(summary.AvgHours).To(BeZero()) // No division by zero working days
	g.Expect(summary.MaxOffStreak).To(Equal(Days))
}

func TestDecodeAverageRounding(t *testing.T) {
	g := NewWithT(t)

	// Arrange: 4+3+3 hours over three days -> 10/3 rounds to 3.33
	values := cannedValues(1, func(worker, day, hour int) (Role, bool) {
		switch {
		case day == 0 && hour < 4:
			return Dishwasher, true
		case day == 1 && hour < 3:
			return Dishwasher, true
		case day == 2 && hour < 3:
			return Dishwasher, true
		}
		return 0, false
	})
	scheduler := newCpScheduler(&solve.FakeSolver{Status: solve.Feasible, Values: values})

	// Act
	result, err := scheduler.Build(validInput(1))

	// Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Summary[0].TotalHours).To(Equal(10))
	g.Expect(result.Summary[0].WorkingDays).To(Equal(3))
	g.Expect(result.Summary[0].AvgHours).To(Equal(3.33))
}

func TestDecodeKeepsLastRoleOnDoubleAssignment(t *testing.T) {
	g := NewWithT(t)

	// Arrange: a (structurally impossible) solution holding two roles in the
	// same hour; the decoder keeps the last role in declaration order
	indexer := NewIndexer(1)
	values := make([]int64, len(Roles)*Slots)
	for h := 0; h < 3; h++ {
		values[indexer.Index(0, int(Cook), indexer.Slot(0, h))] = 1
		values[indexer.Index(0, int(Dishwasher), indexer.Slot(0, h))] = 1
	}
	scheduler := newCpScheduler(&solve.FakeSolver{Status: solve.Feasible, Values: values})

	// Act
	result, err := scheduler.Build(validInput(1))

	// Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Rows[0].Hours[0]).To(Equal("Dishwasher"))
	g.Expect(result.Summary[0].TotalHours).To(Equal(3))
}

func TestDecodeIsIdempotent(t *testing.T) {
	g := NewWithT(t)

	// Arrange
	values := cannedValues(2, func(worker, day, hour int) (Role, bool) {
		if day == worker && hour < 5 {
			return PizzaMaker, true
		}
		return 0, false
	})
	solver := &solve.FakeSolver{Status: solve.Feasible, Values: values}
	scheduler := newCpScheduler(solver)
	input := validInput(2)

	// Act: decoding the same solver output twice
	first, err1 := scheduler.Build(input)
	second, err2 := scheduler.Build(input)

	// Assert
	g.Expect(err1).NotTo(HaveOccurred())
	g.Expect(err2).NotTo(HaveOccurred())
	g.Expect(second).To(Equal(first))
}

func TestBuildReturnsNilWhenInfeasible(t *testing.T) {
	g := NewWithT(t)

	scheduler := newCpScheduler(&solve.FakeSolver{Status: solve.Infeasible})

	result, err := scheduler.Build(validInput(1))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(BeNil())
}

func TestBuildReturnsNilOnTimeoutWithoutSolution(t *testing.T) {
	g := NewWithT(t)

	scheduler := newCpScheduler(&solve.FakeSolver{Status: solve.Unknown})

	result, err := scheduler.Build(validInput(1))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(BeNil())
}
