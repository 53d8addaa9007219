// Command roster-cli is the thin CLI wrapper around pkg/roster, in the
// teacher's own run.CLI idiom. It is ambient tooling carried from the
// example pack's convention (reading an options/input JSON document and
// writing a schema.Output), not part of the constraint-optimization core:
// spec.md §6 explicitly places CLI/export surfaces outside the core.
package main

import (
	"context"
	"log"
	"math"

	"github.com/nextmv-io/sdk"
	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/schema"
	"github.com/nextmv-io/sdk/run/statistics"

	"github.com/massimobrivio/nurse-scheduling/pkg/roster"
)

func main() {
	err := run.CLI(solve).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// cliOptions lets the time limit be overridden from the command line or
// input.json without touching the library's own Config.TimeLimitSeconds
// default.
type cliOptions struct {
	TimeLimitSeconds int `json:"time_limit_seconds,omitempty" usage:"wall-clock time limit for the solve, in seconds" default:"300"`
}

func solve(_ context.Context, input roster.Config, opts cliOptions) (schema.Output, error) {
	if opts.TimeLimitSeconds > 0 {
		input.TimeLimitSeconds = opts.TimeLimitSeconds
	}

	result, err := roster.Solve(input)

	o := schema.Output{
		Version: schema.Version{Sdk: sdk.VERSION},
	}

	stats := statistics.NewStatistics()
	run := statistics.Run{}
	res := statistics.Result{}

	wallTime := round(result.Diagnostics.WallTime.Seconds())
	run.Duration = &wallTime
	res.Duration = &wallTime

	if err != nil && !result.Success() {
		res.Custom = map[string]any{
			"status": string(result.Status),
			"reason": result.Reason,
		}
		stats.Run = &run
		stats.Result = &res
		o.Statistics = stats
		return o, nil
	}

	value := statistics.Float64(round(result.ObjectiveValue))
	res.Value = &value
	res.Custom = customResultStatistics{
		ObjectiveDescription:  result.ObjectiveDescription,
		TotalCost:             round(result.Cost.TotalCost),
		ContractorShiftSpread: result.ContractorShiftSpread,
		Conflicts:             result.Diagnostics.Conflicts,
		Branches:              result.Diagnostics.Branches,
	}

	o.Solutions = append(o.Solutions, result)
	stats.Run = &run
	stats.Result = &res
	o.Statistics = stats

	return o, nil
}

type customResultStatistics struct {
	ObjectiveDescription  string  `json:"objective_description"`
	TotalCost             float64 `json:"total_cost"`
	ContractorShiftSpread int     `json:"contractor_shift_spread"`
	Conflicts             int     `json:"conflicts"`
	Branches              int     `json:"branches"`
}

func round(value float64) float64 {
	const precision = 2
	ratio := math.Pow(10, precision)
	return math.Round(value*ratio) / ratio
}
