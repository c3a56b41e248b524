// The cli command reads a roster and staffing needs from a JSON file, solves
// the weekly kitchen schedule and writes the decoded schedule plus per-worker
// summary as JSON. Exit codes: 10 solved, 15 verification failure, 20 no
// feasible schedule.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/golang/glog"
	"github.com/samber/lo"

	"github.com/Edditols/Kitchenplanner/internal/schedule"
	"github.com/Edditols/Kitchenplanner/internal/solve"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	budgetPtr := flag.Float64("budget", solve.DefaultTimeBudget.Seconds(), "Solver wall-clock budget in seconds")
	defaultNeedsPtr := flag.Bool("default-needs", false, "Ignore the staffing needs in the input file and use the built-in peak-hours pattern")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr
	budget := *budgetPtr

	// Validate arguments
	if filePath == "" {
		log.Exit("an input file must be specified")
	} else if budget <= 0 {
		log.Exitf("budget must be positive: %v", budget)
	}

	// Extract input
	input, err := schedule.InputFromJson(filePath)
	if err != nil {
		log.Exitf("cannot parse input file: %v", err)
	}
	if *defaultNeedsPtr {
		input.Needs = schedule.DefaultNeeds()
	}

	// Initialize engines
	solver := solve.NewCpSatSolverWithBudget(time.Duration(budget * float64(time.Second)))
	scheduler := schedule.NewScheduler(solver)

	// Build schedule
	result, err := scheduler.Build(input)
	if err != nil {
		log.Exitf("an error occurred during schedule construction: %v", err)
	} else if result == nil {
		fmt.Println("No feasible schedule found. Try adjusting worker constraints or staffing needs.")
		os.Exit(20)
	}

	// Verify schedule correctness
	if !scheduler.Verify(result, input) {
		fmt.Println("Verification failed")
		os.Exit(15)
	}

	// Build output from the decoded schedule
	output := map[string]any{
		"status":   result.Status.String(),
		"schedule": lo.Map(result.Rows, func(row schedule.DayRow, _ int) map[string]any { return rowJson(row) }),
		"summary":  result.Summary,
	}

	outputJson, err := json.Marshal(output)
	if err != nil {
		log.Exitf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else {
		if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
			log.Exitf("an error occurred while writing to the output file: %v", err)
		}
	}

	os.Exit(10)
}

// rowJson flattens a day row into one record per (worker, day) with a field
// per hour label, the shape the presentation layer consumes.
func rowJson(row schedule.DayRow) map[string]any {
	record := map[string]any{
		"worker": row.Worker,
		"day":    row.Day,
	}
	for h, roleName := range row.Hours {
		record[schedule.HourLabel(h)] = roleName
	}
	return record
}
