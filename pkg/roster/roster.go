// Package roster implements the monthly shift-roster constraint-
// optimization scheduler: it builds an integer-linear model from a
// Config, solves it with a CP/ILP backend under a wall-clock limit, and
// returns a validated Result or a typed failure.
//
// Solve is stateless across calls: Start -> Building -> Solving ->
// {Optimal, Feasible, Infeasible, Invalid, Unknown} -> Validated |
// Rejected. Every call constructs a fresh model; there is no global or
// shared mutable state, and no concurrency inside a single solve.
package roster

import (
	"github.com/google/uuid"

	"github.com/massimobrivio/nurse-scheduling/pkg/rosterlog"
)

// Solve runs the full Calendar -> Model builder -> Solver driver ->
// Result assembler -> Validator pipeline for one Config and returns either
// a validated Result (Status Optimal or Feasible) or an error describing
// why the solve could not produce one.
func Solve(cfg Config) (Result, error) {
	runID := uuid.NewString()
	log := rosterlog.NewSolveLogger(runID)

	// Building: ConfigError surfaces immediately, before any model exists.
	n, err := cfg.validate()
	if err != nil {
		log.Error("config", err)
		return Result{RunID: runID, Status: StatusInvalid, Reason: err.Error()}, err
	}

	log.StartSolve(n.horizon.NumDays(), len(n.salaried), len(n.contract))

	bm, err := buildModel(n)
	if err != nil {
		wrapped := newSolverInvalidError(err)
		log.Error("build", wrapped)
		return Result{RunID: runID, Status: StatusInvalid, Reason: wrapped.Error()}, wrapped
	}

	// Solving.
	sr, err := runSolver(bm, n.cfg.TimeLimitSeconds, log)
	if err != nil {
		log.Error("solve", err)
		return Result{RunID: runID, Status: StatusInvalid, Reason: err.Error()}, err
	}

	switch sr.status {
	case StatusInfeasible:
		rosterErr := newInfeasibleError(sr.reason)
		return Result{RunID: runID, Status: StatusInfeasible, Reason: sr.reason, Diagnostics: sr.diagnostics}, rosterErr
	case StatusUnknown:
		rosterErr := newTimeoutError(sr.reason)
		return Result{RunID: runID, Status: StatusUnknown, Reason: sr.reason, Diagnostics: sr.diagnostics}, rosterErr
	}

	// Result assembly.
	res := assembleResult(bm, sr, runID)

	// Validated | Rejected: independently re-check every hard constraint
	// before returning success.
	if violation := validateRoster(bm, &res); violation != nil {
		log.ConstraintViolation(violation.Rule, violation.String())
		res.Status = StatusInvalid
		res.Violation = violation
		res.Reason = "validator caught a hard-constraint violation: " + violation.String()
		return res, newValidationError(*violation)
	}

	return res, nil
}
