package roster

// validateRoster independently re-checks every hard constraint (1)-(10)
// against the extracted roster, per spec.md §4.5. It is the safety net
// against model-building bugs: it never trusts the auxiliary variables,
// only the roster's work/rest cell labels.
func validateRoster(bm *builtModel, res *Result) *Violation {
	n := bm.n
	employees := n.employees()
	numDays := n.horizon.NumDays()

	worksCell := func(employeeID string, day int, s ShiftKind) bool {
		label := res.Roster[day].Cells[employeeID]
		switch s {
		case Morning:
			return label == "M" || label == "M(S)"
		case Afternoon:
			return label == "P" || label == "P(S)"
		}
		return false
	}

	// 1. Coverage.
	for d := 0; d < numDays; d++ {
		for _, s := range Shifts {
			count := 0
			for _, e := range employees {
				if worksCell(e.ID, d, s) {
					count++
				}
			}
			if count != 1 {
				return &Violation{Day: d, Shift: s.String(), Rule: "coverage"}
			}
		}
	}

	// 2. One shift per day.
	for _, e := range employees {
		for d := 0; d < numDays; d++ {
			count := 0
			for _, s := range Shifts {
				if worksCell(e.ID, d, s) {
					count++
				}
			}
			if count > 1 {
				return &Violation{EmployeeID: e.ID, Day: d, Rule: "one_shift_per_day"}
			}
		}
	}

	// 3. Contractor availability.
	for _, e := range n.contract {
		avail := n.availability[e.ID]
		for d := 0; d < numDays; d++ {
			for _, s := range Shifts {
				if worksCell(e.ID, d, s) && !avail[DayShift{Day: d, Shift: s}] {
					return &Violation{EmployeeID: e.ID, Day: d, Shift: s.String(), Rule: "contractor_availability"}
				}
			}
		}
	}

	// 4. Holiday respect.
	for _, e := range n.salaried {
		prefs := n.preferences[e.ID]
		for d := 0; d < numDays; d++ {
			for _, s := range Shifts {
				if worksCell(e.ID, d, s) && prefs[DayShift{Day: d, Shift: s}] == Holiday {
					return &Violation{EmployeeID: e.ID, Day: d, Shift: s.String(), Rule: "holiday"}
				}
			}
		}
	}

	// 5. Hour bounds, counted from the cells: M/P are regular shifts,
	// M(S)/P(S) are overtime shifts.
	for _, e := range n.salaried {
		regularHours, overtimeHours := 0, 0
		for d := 0; d < numDays; d++ {
			switch res.Roster[d].Cells[e.ID] {
			case "M", "P":
				regularHours += 8
			case "M(S)", "P(S)":
				overtimeHours += 8
			}
		}
		if regularHours > e.MaxRegularHours {
			return &Violation{EmployeeID: e.ID, Rule: "max_regular_hours"}
		}
		if overtimeHours > e.MaxOvertimeShifts*8 {
			return &Violation{EmployeeID: e.ID, Rule: "max_overtime"}
		}
	}

	// 6. Consecutive-day cap.
	maxConsecutive := n.cfg.MaxConsecutiveDays
	for _, e := range employees {
		for d0 := 0; d0 <= numDays-maxConsecutive-1; d0++ {
			worked := 0
			for d := d0; d <= d0+maxConsecutive; d++ {
				for _, s := range Shifts {
					if worksCell(e.ID, d, s) {
						worked++
					}
				}
			}
			if worked > maxConsecutive {
				return &Violation{EmployeeID: e.ID, Day: d0, Rule: "consecutive_days"}
			}
		}
	}

	// 7. 14-day work/rest ratio.
	if numDays >= 14 {
		maxWork := maxWorkDaysInWindow(n.cfg.WorkRestRatio)
		for _, e := range employees {
			for d0 := 0; d0 <= numDays-14; d0++ {
				worked := 0
				for d := d0; d < d0+14; d++ {
					for _, s := range Shifts {
						if worksCell(e.ID, d, s) {
							worked++
						}
					}
				}
				if worked > maxWork {
					return &Violation{EmployeeID: e.ID, Day: d0, Rule: "work_rest_ratio"}
				}
			}
		}
	}

	// 8. P->M rule.
	for _, e := range employees {
		for d := 0; d < numDays-1; d++ {
			if worksCell(e.ID, d, Afternoon) && worksCell(e.ID, d+1, Morning) {
				return &Violation{EmployeeID: e.ID, Day: d, Rule: "no_p_to_m"}
			}
		}
	}

	// 9 & 10. Weekend guarantee, counted from the cells.
	if len(n.horizon.Weekends) > 0 {
		for _, e := range n.salaried {
			free := 0
			for _, w := range n.horizon.Weekends {
				if !worksCell(e.ID, w.SatDay, Morning) && !worksCell(e.ID, w.SatDay, Afternoon) &&
					!worksCell(e.ID, w.SunDay, Morning) && !worksCell(e.ID, w.SunDay, Afternoon) {
					free++
				}
			}
			if free < n.cfg.MinFreeWeekends {
				return &Violation{EmployeeID: e.ID, Rule: "min_free_weekends"}
			}
		}
	}

	return nil
}
