package roster

import (
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/massimobrivio/nurse-scheduling/pkg/rosterlog"
)

// solveResult bundles everything the result assembler needs from one
// solver invocation.
type solveResult struct {
	status      Status
	solution    mip.Solution
	diagnostics Diagnostics
	reason      string
}

// runSolver invokes the CP/ILP backend with a wall-clock time limit and
// maps its terminal status to an outcome, per spec.md §4.3. It never
// retries: cancellation is cooperative, via the backend's own Duration
// option.
func runSolver(bm *builtModel, timeLimitSeconds int, log *rosterlog.SolveLogger) (*solveResult, error) {
	solver, err := mip.NewSolver(mip.Highs, bm.m)
	if err != nil {
		return nil, newSolverInvalidError(err)
	}

	opts := mip.SolveOptions{}
	opts.Duration = time.Duration(timeLimitSeconds) * time.Second
	opts.Verbosity = mip.Off

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, newSolverInvalidError(err)
	}

	diagnostics := Diagnostics{}
	if solution != nil {
		diagnostics.WallTime = solution.RunTime()
	}

	switch {
	case solution == nil:
		return nil, newSolverInvalidError(nil)
	case solution.IsOptimal():
		log.SolveFinished(string(StatusOptimal), diagnostics.WallTime, solution.ObjectiveValue())
		return &solveResult{status: StatusOptimal, solution: solution, diagnostics: diagnostics}, nil
	case solution.IsSubOptimal():
		log.SolveFinished(string(StatusFeasible), diagnostics.WallTime, solution.ObjectiveValue())
		return &solveResult{status: StatusFeasible, solution: solution, diagnostics: diagnostics}, nil
	case solution.HasValues():
		// A solution with bound values but neither optimal nor suboptimal
		// is not a status this package's contract recognizes; treat it as
		// feasible-but-unconfirmed, matching Unknown below.
		log.SolveFinished(string(StatusUnknown), diagnostics.WallTime, 0)
		return &solveResult{status: StatusUnknown, diagnostics: diagnostics, reason: "solver returned values without confirming optimality within the time limit"}, nil
	default:
		// The backend reports no values at all. The mip.Solution
		// interface surfaced through the teacher's examples does not
		// expose a dedicated "proven infeasible" flag distinct from
		// "ran out of time with nothing to show", so the wall-clock
		// budget decides which diagnostic to report: a search that used
		// (approximately) its whole budget without ever finding a
		// feasible point timed out; one that returned early exhausted
		// the search space and proved infeasibility.
		timeLimit := time.Duration(timeLimitSeconds) * time.Second
		if diagnostics.WallTime >= timeLimit-time.Second {
			log.SolveFinished(string(StatusUnknown), diagnostics.WallTime, 0)
			return &solveResult{status: StatusUnknown, diagnostics: diagnostics, reason: "wall-clock limit reached without a feasible solution"}, nil
		}
		log.SolveFinished(string(StatusInfeasible), diagnostics.WallTime, 0)
		return &solveResult{status: StatusInfeasible, diagnostics: diagnostics, reason: "no assignment satisfies every hard constraint"}, nil
	}
}
