package roster

import "time"

// ShiftKind is one of the two daily 8-hour blocks.
type ShiftKind int

const (
	// Morning runs 6:00-14:00.
	Morning ShiftKind = iota
	// Afternoon runs 14:00-22:00.
	Afternoon
)

// ShiftDuration is the fixed duration of every shift.
const ShiftDuration = 8 * time.Hour

// Shifts lists both shift kinds in their canonical order.
var Shifts = []ShiftKind{Morning, Afternoon}

// String returns the single-letter label used throughout the roster and
// the external cell-label alphabet (M, P, M(S), P(S), R, F).
func (s ShiftKind) String() string {
	switch s {
	case Morning:
		return "M"
	case Afternoon:
		return "P"
	default:
		return "?"
	}
}

// EmployeeKind tags whether an employee is salaried staff or an on-call
// contractor; the hard-constraint builder branches on this tag instead of
// using separate types, matching the "tagged variant" dispatch pattern
// called for in spec.md §9.
type EmployeeKind int

const (
	Salaried EmployeeKind = iota
	Contractor
)

// Employee is one roster participant.
type Employee struct {
	ID   string
	Kind EmployeeKind
	// MaxRegularHours and MaxOvertimeShifts only apply to salaried
	// employees; zero for contractors.
	MaxRegularHours   int
	MaxOvertimeShifts int
}

// PreferenceValue is a salaried employee's stated preference for one
// (day, shift) cell.
type PreferenceValue int

const (
	AvoidPref PreferenceValue = -1
	WorksPref PreferenceValue = 1
	Holiday   PreferenceValue = 2
)

// DayShift keys a (day, shift) cell; day is 0-based inside the horizon.
type DayShift struct {
	Day   int
	Shift ShiftKind
}

// Costs holds the per-unit costs used by objective Term B. Zero values are
// replaced by the spec's defaults (1, 2, 1.5) during Config normalization.
type Costs struct {
	Regular    float64
	Overtime   float64
	Contractor float64
}

// DefaultCosts are spec.md §4.2's default unit costs.
var DefaultCosts = Costs{Regular: 1, Overtime: 2, Contractor: 1.5}

// Status is the terminal outcome of a solve, per spec.md §4.3/§4.5.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	StatusInvalid    Status = "Invalid"
	StatusUnknown    Status = "Unknown"
)

// Hours is one employee's hour breakdown.
type Hours struct {
	Regular  int
	Overtime int
	Total    int
}

// PreferenceStat is one salaried employee's preference-satisfaction tally.
type PreferenceStat struct {
	CountTotal     int
	CountSatisfied int
	Percentage     float64
}

// ContractorStat is one contractor's assignment tally.
type ContractorStat struct {
	TotalShifts     int
	MorningShifts   int
	AfternoonShifts int
	TotalHours      int
	Utilization     float64
}

// CostBreakdown is the objective's Term B expressed in the units a caller
// actually cares about (money, not normalized objective points).
type CostBreakdown struct {
	RegularCost    float64
	OvertimeCost   float64
	ContractorCost float64
	TotalCost      float64
}

// Diagnostics surfaces whatever the solver backend exposes about the
// search, per spec.md §7's propagation policy.
type Diagnostics struct {
	Conflicts int
	Branches  int
	WallTime  time.Duration
}

// RosterRow is one horizon day's assignment: employee ID -> cell label.
type RosterRow struct {
	Day   int
	Date  time.Time
	Cells map[string]string
}

// Result is the library's return value.
type Result struct {
	Status Status
	RunID  string

	Roster []RosterRow

	HoursWorked           map[string]Hours
	FreeWeekends          map[string]int
	HolidayDays           map[string]int
	PreferenceSatisfaction map[string]PreferenceStat
	ContractorStats       map[string]ContractorStat
	ContractorShiftSpread int

	Cost                 CostBreakdown
	ObjectiveValue       float64
	ObjectiveDescription string
	Diagnostics          Diagnostics

	// Reason and Violation are populated on failure (Status is not
	// Optimal/Feasible after validation).
	Reason    string
	Violation *Violation
}

// Success reports whether the result represents a validated roster.
func (r Result) Success() bool {
	return r.Status == StatusOptimal || r.Status == StatusFeasible
}
