package employee

import "strings"

type Employee struct {
	ID           int64      `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Department   Department `json:"department"`
	TotalPresent int        `json:"total_present"`
	TotalAbsent  int        `json:"total_absent"`
}

type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
	DepartmentDesign      Department = "Design"
	DepartmentProduct     Department = "Product"
	DepartmentIT          Department = "IT"
)

// Departments lists the fixed department set in display order.
var Departments = []Department{
	DepartmentEngineering,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentHR,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentDesign,
	DepartmentProduct,
	DepartmentIT,
}

func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Initials returns up to two upper-case initials of the employee's name for avatars.
func (e Employee) Initials() string {
	var initials []rune
	inWord := false
	for _, r := range e.FullName {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			initials = append(initials, r)
			inWord = true
			if len(initials) == 2 {
				break
			}
		}
	}
	return strings.ToUpper(string(initials))
}
