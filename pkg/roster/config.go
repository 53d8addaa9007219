package roster

import (
	"fmt"
	"time"

	"github.com/massimobrivio/nurse-scheduling/pkg/calendar"
)

// HorizonInput is the solve's planning period, given either as a calendar
// month or as an explicit inclusive date range (spec.md §6). Exactly one
// form must be populated.
type HorizonInput struct {
	Year  int
	Month int

	DateStart string // ISO YYYY-MM-DD, inclusive
	DateEnd   string // ISO YYYY-MM-DD, inclusive
}

func (h HorizonInput) isMonthForm() bool {
	return h.Year != 0 || h.Month != 0
}

func (h HorizonInput) resolve() (calendar.Horizon, error) {
	switch {
	case h.isMonthForm() && h.DateStart != "":
		return calendar.Horizon{}, fmt.Errorf("horizon: specify either {year, month} or {date_start, date_end}, not both")
	case h.isMonthForm():
		return calendar.FromMonth(h.Year, time.Month(h.Month))
	case h.DateStart != "" && h.DateEnd != "":
		return calendar.ParseRange(h.DateStart, h.DateEnd)
	default:
		return calendar.Horizon{}, fmt.Errorf("horizon: neither {year, month} nor {date_start, date_end} was set")
	}
}

// Config is the roster solver's library-level input (spec.md §6). All
// fields are required unless noted otherwise.
type Config struct {
	Horizon HorizonInput `json:"horizon"`

	NumSalaried    int `json:"num_salaried"`
	NumContractors int `json:"num_contractors"`

	// MaxRegularHours maps a salaried employee's canonical ID ("s0".."sN-1",
	// see SalariedID) to its regular-hours cap, 0..200.
	MaxRegularHours map[string]int `json:"max_regular_hours"`
	MaxOvertime     int            `json:"max_overtime"`
	MinFreeWeekends int            `json:"min_free_weekends"`

	MaxConsecutiveDays int     `json:"max_consecutive_days"`
	WorkRestRatio      float64 `json:"work_rest_ratio"`

	// Preferences maps a salaried ID to its (day_1based, shift) ->
	// {+1,-1,+2} preference entries.
	Preferences map[string]map[DayShift1Based]int `json:"preferences"`
	// Availability maps a contractor ID to its (day_1based, shift) -> 1
	// availability entries; absent or 0 means unavailable.
	Availability map[string]map[DayShift1Based]int `json:"availability"`

	Costs Costs `json:"costs,omitempty"`

	TimeLimitSeconds int `json:"time_limit_seconds,omitempty"`
}

// DayShift1Based is the external, 1-based day-numbering form of DayShift
// used in Config's preference/availability maps, matching spec.md §6's
// "(day_1based, 'M'|'P')" wire shape.
type DayShift1Based struct {
	Day   int // 1-based
	Shift ShiftKind
}

// DefaultTimeLimitSeconds is spec.md §4.3's default wall-clock budget.
const DefaultTimeLimitSeconds = 300

// SalariedID returns the canonical ID of the i-th salaried employee
// (0-based index).
func SalariedID(i int) string { return fmt.Sprintf("s%d", i) }

// ContractorID returns the canonical ID of the i-th contractor (0-based
// index).
func ContractorID(i int) string { return fmt.Sprintf("c%d", i) }

// normalized is a Config with defaults applied and the horizon resolved,
// ready for model building.
type normalized struct {
	cfg      Config
	horizon  calendar.Horizon
	salaried []Employee
	contract []Employee

	// preferences and availability are re-keyed to 0-based DayShift so the
	// model builder never has to translate indices.
	preferences  map[string]map[DayShift]PreferenceValue
	availability map[string]map[DayShift]bool
}

// validate checks Config for the ConfigError conditions spec.md §7 calls
// out, failing fast before any model is built.
func (c Config) validate() (*normalized, error) {
	if c.NumSalaried < 1 {
		return nil, newConfigError("num_salaried must be >= 1, got %d", c.NumSalaried)
	}
	if c.NumContractors < 0 {
		return nil, newConfigError("num_contractors must be >= 0, got %d", c.NumContractors)
	}
	if c.MaxConsecutiveDays < 1 || c.MaxConsecutiveDays > 6 {
		return nil, newConfigError("max_consecutive_days must be in 1..6, got %d", c.MaxConsecutiveDays)
	}
	if c.MinFreeWeekends < 0 {
		return nil, newConfigError("min_free_weekends must be >= 0, got %d", c.MinFreeWeekends)
	}
	if c.MaxOvertime < 0 {
		return nil, newConfigError("max_overtime must be >= 0, got %d", c.MaxOvertime)
	}

	ratio := c.WorkRestRatio
	if ratio == 0 {
		ratio = 3.0
	}
	if ratio < 1.0 || ratio > 5.0 {
		return nil, newConfigError("work_rest_ratio must be in 1.0..5.0, got %v", ratio)
	}

	horizon, err := c.Horizon.resolve()
	if err != nil {
		return nil, newConfigError("%s", err.Error())
	}

	costs := c.Costs
	if costs.Regular == 0 {
		costs.Regular = DefaultCosts.Regular
	}
	if costs.Overtime == 0 {
		costs.Overtime = DefaultCosts.Overtime
	}
	if costs.Contractor == 0 {
		costs.Contractor = DefaultCosts.Contractor
	}

	timeLimit := c.TimeLimitSeconds
	if timeLimit == 0 {
		timeLimit = DefaultTimeLimitSeconds
	}

	salaried := make([]Employee, c.NumSalaried)
	for i := 0; i < c.NumSalaried; i++ {
		id := SalariedID(i)
		maxHours, ok := c.MaxRegularHours[id]
		if !ok {
			return nil, newConfigError("max_regular_hours missing entry for salaried employee %q", id)
		}
		if maxHours < 0 || maxHours > 200 {
			return nil, newConfigError("max_regular_hours[%s] must be in 0..200, got %d", id, maxHours)
		}
		salaried[i] = Employee{
			ID:                id,
			Kind:              Salaried,
			MaxRegularHours:   maxHours,
			MaxOvertimeShifts: c.MaxOvertime,
		}
	}

	preferences := make(map[string]map[DayShift]PreferenceValue, len(c.Preferences))
	for salariedID, prefs := range c.Preferences {
		converted := make(map[DayShift]PreferenceValue, len(prefs))
		for ds, v := range prefs {
			switch PreferenceValue(v) {
			case WorksPref, AvoidPref, Holiday:
			default:
				return nil, newConfigError("preferences[%s] has unknown value %d at day %d shift %s", salariedID, v, ds.Day, ds.Shift)
			}
			if ds.Day < 1 || ds.Day > horizon.NumDays() {
				return nil, newConfigError("preferences[%s] day %d out of horizon range 1..%d", salariedID, ds.Day, horizon.NumDays())
			}
			converted[DayShift{Day: ds.Day - 1, Shift: ds.Shift}] = PreferenceValue(v)
		}
		preferences[salariedID] = converted
	}

	contractors := make([]Employee, c.NumContractors)
	for i := 0; i < c.NumContractors; i++ {
		contractors[i] = Employee{ID: ContractorID(i), Kind: Contractor}
	}

	availability := make(map[string]map[DayShift]bool, len(c.Availability))
	for contractorID, avail := range c.Availability {
		converted := make(map[DayShift]bool, len(avail))
		for ds, v := range avail {
			if ds.Day < 1 || ds.Day > horizon.NumDays() {
				return nil, newConfigError("availability[%s] day %d out of horizon range 1..%d", contractorID, ds.Day, horizon.NumDays())
			}
			converted[DayShift{Day: ds.Day - 1, Shift: ds.Shift}] = v != 0
		}
		availability[contractorID] = converted
	}

	normalizedCfg := c
	normalizedCfg.Costs = costs
	normalizedCfg.WorkRestRatio = ratio
	normalizedCfg.TimeLimitSeconds = timeLimit

	return &normalized{
		cfg:          normalizedCfg,
		horizon:      horizon,
		salaried:     salaried,
		contract:     contractors,
		preferences:  preferences,
		availability: availability,
	}, nil
}

// employees returns the salaried roster followed by contractors, the fixed
// iteration order the model builder and assembler both rely on.
func (n *normalized) employees() []Employee {
	all := make([]Employee, 0, len(n.salaried)+len(n.contract))
	all = append(all, n.salaried...)
	all = append(all, n.contract...)
	return all
}
