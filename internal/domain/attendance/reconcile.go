package attendance

import (
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Reconciliation matches the records of one date to employees.
// Only the first record per employee counts.
type Reconciliation struct {
	byEmployee map[int64]Status
}

func Reconcile(records []Record) Reconciliation {
	byEmployee := make(map[int64]Status, len(records))
	for _, r := range records {
		if _, seen := byEmployee[r.EmployeeDBID]; seen {
			continue
		}
		byEmployee[r.EmployeeDBID] = r.Status
	}
	return Reconciliation{byEmployee: byEmployee}
}

// StatusOf returns the recorded status of e; ok is false while e is pending.
func (r Reconciliation) StatusOf(e employee.Employee) (status Status, ok bool) {
	status, ok = r.byEmployee[e.ID]
	return status, ok
}

// Label is the display status of e.
func (r Reconciliation) Label(e employee.Employee) string {
	if status, ok := r.StatusOf(e); ok {
		return string(status)
	}
	return PendingLabel
}

// NextStatus applies the toggle transition: unmarked and Absent go to Present,
// Present goes to Absent.
func NextStatus(current Status, marked bool) Status {
	if marked && current == StatusPresent {
		return StatusAbsent
	}
	return StatusPresent
}

// Toggle builds the mark request that moves e to its next status on date.
func (r Reconciliation) Toggle(e employee.Employee, date Date) MarkRequest {
	current, marked := r.StatusOf(e)
	return MarkRequest{
		EmployeeID: e.EmployeeID,
		Date:       date,
		Status:     NextStatus(current, marked),
	}
}

// Rows lists every employee with its status, in input order.
func (r Reconciliation) Rows(employees []employee.Employee) []Row {
	rows := make([]Row, 0, len(employees))
	for _, e := range employees {
		row := Row{Employee: e, Label: PendingLabel}
		if status, ok := r.StatusOf(e); ok {
			row.Status = &status
			row.Label = string(status)
		}
		rows = append(rows, row)
	}
	return rows
}

// Summarize counts the employees per status. Records of employees outside
// the list are ignored, so Present+Absent+Pending always equals Total.
func (r Reconciliation) Summarize(employees []employee.Employee) Summary {
	var s Summary
	for _, e := range employees {
		status, ok := r.StatusOf(e)
		switch {
		case !ok:
			s.Pending++
		case status == StatusPresent:
			s.Present++
		case status == StatusAbsent:
			s.Absent++
		default:
			s.Pending++
		}
	}
	s.Total = len(employees)
	s.Rate = Rate(s.Present, s.Total)
	return s
}

// Aggregate reconciles records and counts the statuses of employees.
func Aggregate(employees []employee.Employee, records []Record) Summary {
	return Reconcile(records).Summarize(employees)
}

// BuildSheet reconciles the visible employees against the records of date.
func BuildSheet(date Date, filter employee.Filter, employees []employee.Employee, records []Record) Sheet {
	visible := filter.Apply(employees)
	return Sheet{
		Date:            date,
		DepartmentLabel: filter.Label(),
		Search:          filter.Search,
		Rows:            Reconcile(records).Rows(visible),
		Summary:         Aggregate(visible, records),
	}
}

// Rate is part/total as a percentage rounded to one decimal, 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

// History derives the per-employee totals of the detail view.
func History(e employee.Employee, records []Record) EmployeeHistory {
	h := EmployeeHistory{Employee: e, Records: records, TotalDays: len(records)}
	if h.Records == nil {
		h.Records = []Record{}
	}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			h.PresentDays++
		case StatusAbsent:
			h.AbsentDays++
		}
	}
	h.Rate = Rate(h.PresentDays, h.TotalDays)
	return h
}
