package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/go-chi/chi/v5"
)

const (
	viewGrid = "grid"
	viewList = "list"
)

// departmentsParam reads the repeated department parameter. Blank values are
// dropped; unknown names are kept and simply match nothing.
func departmentsParam(values url.Values) []employee.Department {
	var departments []employee.Department
	for _, v := range values["department"] {
		if v = strings.TrimSpace(v); v != "" {
			departments = append(departments, employee.Department(v))
		}
	}
	return departments
}

// employeeIDParam is the decoded {employee_id} segment. chi matches on the
// escaped path when there is one, so the raw segment may still hold escapes.
func employeeIDParam(r *http.Request) string {
	raw := chi.URLParam(r, "employee_id")
	if r.URL.RawPath == "" {
		return raw
	}
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func viewModeParam(r *http.Request) string {
	if r.URL.Query().Get("view") == viewList {
		return viewList
	}
	return viewGrid
}

// filterValues encodes a filter back into query parameters.
func filterValues(f employee.Filter) url.Values {
	values := url.Values{}
	for _, d := range f.Departments {
		values.Add("department", string(d))
	}
	if f.Search != "" {
		values.Set("q", f.Search)
	}
	return values
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

type departmentOption struct {
	Name     employee.Department
	Selected bool
}

// filterForm is the department checklist and search box shared by the
// directory and attendance screens.
type filterForm struct {
	DepartmentLabel string
	Departments     []departmentOption
	Selected        []employee.Department
	Search          string
}

func newFilterForm(f employee.Filter) filterForm {
	options := make([]departmentOption, 0, len(employee.Departments))
	for _, d := range employee.Departments {
		options = append(options, departmentOption{Name: d, Selected: f.IsSelected(d)})
	}
	return filterForm{
		DepartmentLabel: f.Label(),
		Departments:     options,
		Selected:        f.Departments,
		Search:          f.Search,
	}
}
