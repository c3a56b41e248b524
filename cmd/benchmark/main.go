// The benchmark command measures the planner binary over a family of
// generated rosters: growing team sizes on the default staffing pattern,
// plus deliberately infeasible scenarios. Results go into a CSV.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/samber/lo"

	"github.com/Edditols/Kitchenplanner/internal/schedule"
)

const (
	executablePath = "../../bin/planner"
	scenarioDir    = "benchmark_scenarios"
)

type ResultType int

const (
	solved ResultType = iota
	infeasible
	verifyFailed
)

var resultTypes = map[ResultType]string{
	solved:       "solved",
	infeasible:   "infeasible",
	verifyFailed: "verify-failed",
}

type ScenarioMetadata struct {
	Name          string
	File          string
	Workers       int
	TotalRequired int
	Feasible      bool
}

type BenchmarkResult struct {
	Scenario      ScenarioMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	scenarios := writeScenarios()
	results := make([]BenchmarkResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		fmt.Printf("Benchmarking scenario \"%v\" with %v workers\n", scenario.Name, scenario.Workers)

		duration, maxMemory, cpuPercentage, result := measure(scenario)

		results = append(results, BenchmarkResult{
			Scenario:      scenario,
			Duration:      duration,
			Memory:        maxMemory,
			CpuPercentage: cpuPercentage,
			Result:        result,
		})
	}

	toCsv(results)
}

// writeScenarios materializes the benchmark inputs as JSON files the planner
// binary can consume.
func writeScenarios() []ScenarioMetadata {
	if err := os.MkdirAll(scenarioDir, 0755); err != nil {
		log.Fatalf("cannot create scenario directory: %v", err)
	}

	scenarios := make([]ScenarioMetadata, 0)

	// Default needs with growing team sizes; small teams cannot cover the
	// pattern while honoring the off-day rules, large ones can. The default
	// pattern requires 245 hours a week, so 42-hour caps need 6 workers
	// before feasibility is even arithmetically possible.
	for _, workers := range []int{2, 3, 4, 5, 6, 8, 10, 12} {
		input := scenarioInput(workers, 42)
		scenarios = append(scenarios, writeScenario(fmt.Sprintf("default-needs-%v-workers", workers), input, workers*42 >= totalRequired(input.Needs)))
	}

	// A weekly cap too tight for the coverage forces infeasibility
	tight := scenarioInput(6, 10)
	scenarios = append(scenarios, writeScenario("tight-weekly-cap", tight, false))

	return scenarios
}

func scenarioInput(workers, maxHours int) schedule.PlannerInput {
	input := schedule.PlannerInput{
		Workers: make([]schedule.Worker, workers),
		Needs:   schedule.DefaultNeeds(),
	}
	for w := range workers {
		input.Workers[w] = schedule.Worker{
			Name: fmt.Sprintf("Emp%v", w+1),
			Skills: map[string]bool{
				schedule.Cook.String():       true,
				schedule.PizzaMaker.String(): true,
				schedule.Dishwasher.String(): true,
			},
			MaxHours:  maxHours,
			MaxBreaks: 3,
		}
	}
	return input
}

func writeScenario(name string, input schedule.PlannerInput, feasible bool) ScenarioMetadata {
	file := fmt.Sprintf("%v/%v.json", scenarioDir, name)

	inputJson, err := json.Marshal(map[string]any{
		"workers": lo.Map(input.Workers, func(worker schedule.Worker, _ int) map[string]any {
			return map[string]any{
				"name":      worker.Name,
				"skills":    worker.Skills,
				"maxHours":  worker.MaxHours,
				"maxBreaks": worker.MaxBreaks,
			}
		}),
		"needs": input.Needs,
	})
	if err != nil {
		log.Fatalf("cannot marshal scenario %v: %v", name, err)
	}
	if err := os.WriteFile(file, inputJson, 0666); err != nil {
		log.Fatalf("cannot write scenario %v: %v", name, err)
	}

	return ScenarioMetadata{
		Name:          name,
		File:          file,
		Workers:       len(input.Workers),
		TotalRequired: totalRequired(input.Needs),
		Feasible:      feasible,
	}
}

// totalRequired sums the weekly staffing needs over all roles, days and hours.
func totalRequired(needs map[string]map[string][]int) int {
	total := 0
	for _, perDay := range needs {
		for _, hours := range perDay {
			for _, count := range hours {
				total += count
			}
		}
	}
	return total
}

func measure(scenario ScenarioMetadata) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-file", scenario.File)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = solved
	case 15:
		result = verifyFailed
	case 20:
		result = infeasible
	default:
		log.Fatalf("an error occurred during the execution of \"planner\" at scenario \"%v\": %v\n", scenario.Name, stdErr.String())
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Fatalf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Scenario", "Workers", "Required-Hours", "Expected-Feasible", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Fatalf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Scenario.Name,
			fmt.Sprintf("%d", result.Scenario.Workers),
			fmt.Sprintf("%d", result.Scenario.TotalRequired),
			fmt.Sprintf("%v", result.Scenario.Feasible),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Fatalf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / 1024
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
