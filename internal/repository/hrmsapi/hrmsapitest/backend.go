// Package hrmsapitest runs an in-memory HRMS backend speaking the REST
// contract the console consumes, for tests.
package hrmsapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/go-chi/chi/v5"
)

type failure struct {
	status int
	detail string
}

// Backend is a fake HRMS backend mounted under /api.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	employees []employee.Employee
	records   []attendance.Record
	lastEmpID int64
	lastRecID int64
	today     attendance.Date
	failures  map[string]failure
	requests  []string
}

func NewBackend() *Backend {
	b := &Backend{
		today:    attendance.DateOf(time.Now()),
		failures: make(map[string]failure),
	}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", b.listEmployees)
			r.Post("/", b.createEmployee)
			r.Get("/next-id", b.nextID)
			r.Get("/{employeeID}", b.getEmployee)
			r.Delete("/{employeeID}", b.deleteEmployee)
			r.Get("/{employeeID}/attendance", b.employeeAttendance)
		})
		r.Get("/attendance", b.listAttendance)
		r.Post("/attendance", b.markAttendance)
		r.Get("/dashboard", b.dashboard)
	})

	b.Server = httptest.NewServer(r)
	return b
}

// URL is the API base URL, ending in /api.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

func (b *Backend) Close() {
	b.Server.Close()
}

// SetToday fixes the day the dashboard counts as today.
func (b *Backend) SetToday(d attendance.Date) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.today = d
}

// Fail makes every request matching "METHOD /path" answer status with detail.
func (b *Backend) Fail(method, path string, status int, detail string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, detail: detail}
}

// Recover removes a failure installed by Fail.
func (b *Backend) Recover(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, method+" "+path)
}

// Requests lists "METHOD /path?query" of every request served so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// CountRequests counts served requests starting with prefix.
func (b *Backend) CountRequests(prefix string) int {
	n := 0
	for _, r := range b.Requests() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

// AddEmployee stores e directly and returns it with its database id.
func (b *Backend) AddEmployee(e employee.Employee) employee.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastEmpID++
	e.ID = b.lastEmpID
	b.employees = append(b.employees, e)
	return e
}

// AddRecord stores a record directly, upserting like POST /attendance.
func (b *Backend) AddRecord(employeeDBID int64, date attendance.Date, status attendance.Status) attendance.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upsert(employeeDBID, date, status)
}

// Records returns a copy of every stored record.
func (b *Backend) Records() []attendance.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]attendance.Record(nil), b.records...)
}

// Employees returns a copy of every stored employee without counters.
func (b *Backend) Employees() []employee.Employee {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]employee.Employee(nil), b.employees...)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		entry := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			entry += "?" + r.URL.RawQuery
		}
		b.requests = append(b.requests, entry)
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if failing {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (b *Backend) withCounters(e employee.Employee) employee.Employee {
	e.TotalPresent, e.TotalAbsent = 0, 0
	for _, r := range b.records {
		if r.EmployeeDBID != e.ID {
			continue
		}
		switch r.Status {
		case attendance.StatusPresent:
			e.TotalPresent++
		case attendance.StatusAbsent:
			e.TotalAbsent++
		}
	}
	return e
}

func (b *Backend) find(employeeID string) (employee.Employee, bool) {
	for _, e := range b.employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (b *Backend) upsert(employeeDBID int64, date attendance.Date, status attendance.Status) attendance.Record {
	for i, r := range b.records {
		if r.EmployeeDBID == employeeDBID && r.Date.Equal(date) {
			b.records[i].Status = status
			return b.records[i]
		}
	}
	b.lastRecID++
	rec := attendance.Record{ID: b.lastRecID, EmployeeDBID: employeeDBID, Date: date, Status: status}
	b.records = append(b.records, rec)
	return rec
}

func (b *Backend) listEmployees(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]employee.Employee, 0, len(b.employees))
	for _, e := range b.employees {
		out = append(out, b.withCounters(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) nextID(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	highest := 0
	for _, e := range b.employees {
		if !strings.HasPrefix(e.EmployeeID, "EMP-") {
			continue
		}
		if n, err := strconv.Atoi(e.EmployeeID[4:]); err == nil && n > highest {
			highest = n
		}
	}
	writeJSON(w, http.StatusOK, employee.NextIDResponse{NextID: fmt.Sprintf("EMP-%04d", highest+1)})
}

func employeeIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "employeeID")
	if r.URL.RawPath == "" {
		return raw
	}
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func (b *Backend) getEmployee(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := employeeIDParam(r)
	e, ok := b.find(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, b.withCounters(e))
}

func (b *Backend) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmployeeID == "" || req.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "field required"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.employees {
		if e.EmployeeID == req.EmployeeID {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Employee ID '%s' already exists", req.EmployeeID))
			return
		}
		if e.Email == req.Email {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Email '%s' already exists", req.Email))
			return
		}
	}
	b.lastEmpID++
	e := employee.Employee{
		ID:         b.lastEmpID,
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}
	b.employees = append(b.employees, e)
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := employeeIDParam(r)
	for i, e := range b.employees {
		if e.EmployeeID != id {
			continue
		}
		b.employees = append(b.employees[:i], b.employees[i+1:]...)
		kept := b.records[:0]
		for _, rec := range b.records {
			if rec.EmployeeDBID != e.ID {
				kept = append(kept, rec)
			}
		}
		b.records = kept
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
}

func inRange(d, start, end attendance.Date) bool {
	if !start.IsZero() && d.Time().Before(start.Time()) {
		return false
	}
	if !end.IsZero() && d.Time().After(end.Time()) {
		return false
	}
	return true
}

func newestFirst(records []attendance.Record) []attendance.Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Time().After(records[j].Date.Time())
	})
	return records
}

func (b *Backend) listAttendance(w http.ResponseWriter, r *http.Request) {
	var start, end attendance.Date
	var err error
	if s := r.URL.Query().Get("start_date"); s != "" {
		if start, err = attendance.ParseDate(s); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		if end, err = attendance.ParseDate(s); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]attendance.Record, 0)
	for _, rec := range b.records {
		if inRange(rec.Date, start, end) {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, newestFirst(out))
}

func (b *Backend) employeeAttendance(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := employeeIDParam(r)
	e, ok := b.find(id)
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", id))
		return
	}
	out := make([]attendance.Record, 0)
	for _, rec := range b.records {
		if rec.EmployeeDBID == e.ID {
			out = append(out, rec)
		}
	}
	writeJSON(w, http.StatusOK, newestFirst(out))
}

func (b *Backend) markAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Status.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "invalid attendance"}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.find(req.EmployeeID)
	if !ok {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Employee with ID '%s' not found", req.EmployeeID))
		return
	}
	writeJSON(w, http.StatusCreated, b.upsert(e.ID, req.Date, req.Status))
}

func (b *Backend) dashboard(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := dashboard.Stats{TotalEmployees: len(b.employees)}
	for _, rec := range b.records {
		if !rec.Date.Equal(b.today) {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			stats.TotalPresentToday++
		case attendance.StatusAbsent:
			stats.TotalAbsentToday++
		}
	}
	if stats.TotalEmployees > 0 {
		rate := float64(stats.TotalPresentToday) / float64(stats.TotalEmployees) * 100
		stats.AttendanceRate = float64(int(rate*100+0.5)) / 100
	}
	writeJSON(w, http.StatusOK, stats)
}
