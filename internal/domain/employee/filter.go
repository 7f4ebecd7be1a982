package employee

import "strings"

const AllDepartmentsLabel = "All Departments"

// Filter selects the visible part of the directory. An empty department
// selection and a selection of every department both mean "no restriction".
type Filter struct {
	Departments []Department
	Search      string
}

func NewFilter(departments []Department, search string) Filter {
	return Filter{Departments: departments, Search: search}
}

func (f Filter) selected() map[Department]struct{} {
	set := make(map[Department]struct{}, len(f.Departments))
	for _, d := range f.Departments {
		set[d] = struct{}{}
	}
	return set
}

func coversAll(set map[Department]struct{}) bool {
	for _, d := range Departments {
		if _, ok := set[d]; !ok {
			return false
		}
	}
	return true
}

// AllDepartments reports whether the department predicate is bypassed.
func (f Filter) AllDepartments() bool {
	set := f.selected()
	return len(set) == 0 || coversAll(set)
}

// Label is the summary shown for the department selection.
func (f Filter) Label() string {
	set := f.selected()
	if len(set) == 0 || coversAll(set) {
		return AllDepartmentsLabel
	}

	names := make([]string, 0, len(set))
	for _, d := range Departments {
		if _, ok := set[d]; ok {
			names = append(names, string(d))
			delete(set, d)
		}
	}
	// unknown names keep the order they were given in
	for _, d := range f.Departments {
		if _, ok := set[d]; ok {
			names = append(names, string(d))
			delete(set, d)
		}
	}
	return strings.Join(names, ", ")
}

// IsSelected reports whether d is explicitly part of the selection.
func (f Filter) IsSelected(d Department) bool {
	_, ok := f.selected()[d]
	return ok
}

// Apply returns the employees passing both predicates, in input order.
func (f Filter) Apply(employees []Employee) []Employee {
	set := f.selected()
	restrict := len(set) > 0 && !coversAll(set)
	query := strings.ToLower(f.Search)

	result := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if restrict {
			if _, ok := set[e.Department]; !ok {
				continue
			}
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.FullName), query) &&
			!strings.Contains(strings.ToLower(e.EmployeeID), query) {
			continue
		}
		result = append(result, e)
	}
	return result
}
