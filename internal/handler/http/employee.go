package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite-console/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

const (
	msgEmployeeCreated   = "Employee added successfully!"
	msgEmployeeDeleted   = "Employee deleted successfully!"
	msgCreateFailed      = "Failed to add employee"
	msgDeleteFailed      = "Failed to delete employee"
	msgEmployeesFailed   = "Failed to load employees"
	msgEmployeeFailed    = "Failed to load employee"
	msgNextIDUnavailable = "Could not suggest the next employee ID"
)

type EmployeeHandler interface {
	// HTML screens
	Directory(w http.ResponseWriter, r *http.Request)
	NewForm(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	ConfirmDelete(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// JSON API
	ListEmployees(w http.ResponseWriter, r *http.Request)
	NextID(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService   employee.EmployeeService
	attendanceService attendance.AttendanceService
	notices           notice.Service
	renderer          *Renderer
}

func NewEmployeeHandler(
	employeeService employee.EmployeeService,
	attendanceService attendance.AttendanceService,
	notices notice.Service,
	renderer *Renderer,
) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService:   employeeService,
		attendanceService: attendanceService,
		notices:           notices,
		renderer:          renderer,
	}
}

type directoryPage struct {
	State    view.State[employee.DirectoryResponse]
	Filters  filterForm
	ViewMode string
	SelfURL  string
	GridURL  string
	ListURL  string
}

func directoryQuery(r *http.Request) employee.DirectoryQuery {
	return employee.DirectoryQuery{
		Departments: departmentsParam(r.URL.Query()),
		Search:      r.URL.Query().Get("q"),
	}
}

// Directory handles GET /employees
func (h *employeeHandlerImpl) Directory(w http.ResponseWriter, r *http.Request) {
	query := directoryQuery(r)
	filter := employee.NewFilter(query.Departments, query.Search)
	mode := viewModeParam(r)

	values := filterValues(filter)
	page := directoryPage{
		Filters:  newFilterForm(filter),
		ViewMode: mode,
		SelfURL:  r.URL.RequestURI(),
	}
	values.Set("view", viewGrid)
	page.GridURL = withQuery("/employees", values)
	values.Set("view", viewList)
	page.ListURL = withQuery("/employees", values)

	status := http.StatusOK
	result, err := h.employeeService.Directory(r.Context(), query)
	if err != nil {
		slog.Error("failed to load employees", "error", err)
		page.State = view.Failed[employee.DirectoryResponse](msgEmployeesFailed)
		status = http.StatusBadGateway
	} else {
		page.State = view.Loaded(result)
	}

	h.renderer.Render(w, r, status, Page{
		Name:  "employees",
		Title: "Employees",
		Nav:   "employees",
		Data:  page,
	})
}

type employeeFormPage struct {
	Form        employee.CreateEmployeeRequest
	Errors      map[string]string
	Departments []employee.Department
}

func (h *employeeHandlerImpl) renderForm(w http.ResponseWriter, r *http.Request, status int, form employee.CreateEmployeeRequest, errs map[string]string, n *notice.Notice) {
	h.renderer.Render(w, r, status, Page{
		Name:   "employee_form",
		Title:  "Add Employee",
		Nav:    "employees",
		Notice: n,
		Data: employeeFormPage{
			Form:        form,
			Errors:      errs,
			Departments: employee.Departments,
		},
	})
}

// NewForm handles GET /employees/new
func (h *employeeHandlerImpl) NewForm(w http.ResponseWriter, r *http.Request) {
	var form employee.CreateEmployeeRequest

	nextID, err := h.employeeService.SuggestNextID(r.Context())
	if err != nil {
		slog.Warn("next employee id unavailable", "error", err)
		n := notice.Error(msgNextIDUnavailable)
		h.renderForm(w, r, http.StatusOK, form, nil, &n)
		return
	}

	form.EmployeeID = nextID
	h.renderForm(w, r, http.StatusOK, form, nil, nil)
}

// Create handles POST /employees
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	req := employee.CreateEmployeeRequest{
		EmployeeID: r.PostFormValue("employee_id"),
		FullName:   r.PostFormValue("full_name"),
		Email:      r.PostFormValue("email"),
		Department: employee.Department(r.PostFormValue("department")),
	}

	_, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, req, validationErrs.ToMap(), nil)
			return
		}

		slog.Error("failed to create employee", "employee_id", req.EmployeeID, "error", err)
		n := notice.Error(backend.Detail(err, msgCreateFailed))
		h.renderForm(w, r, failureStatus(err), req, nil, &n)
		return
	}

	h.redirectWithNotice(w, r, "/employees", notice.Success(msgEmployeeCreated))
}

type employeeDetailPage struct {
	State view.State[attendance.EmployeeHistory]
}

// Detail handles GET /employees/{employee_id}
func (h *employeeHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDParam(r)

	history, err := h.attendanceService.EmployeeHistory(r.Context(), employeeID)
	if err != nil {
		status, message := http.StatusBadGateway, msgEmployeeFailed
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			status, message = http.StatusNotFound, backend.Detail(err, "Employee not found")
		} else {
			slog.Error("failed to load employee", "employee_id", employeeID, "error", err)
		}
		h.renderer.Render(w, r, status, Page{
			Name:  "employee_detail",
			Title: "Employee",
			Nav:   "employees",
			Data:  employeeDetailPage{State: view.Failed[attendance.EmployeeHistory](message)},
		})
		return
	}

	h.renderer.Render(w, r, http.StatusOK, Page{
		Name:  "employee_detail",
		Title: history.Employee.FullName,
		Nav:   "employees",
		Data:  employeeDetailPage{State: view.Loaded(history)},
	})
}

type employeeDeletePage struct {
	Employee employee.Employee
}

// ConfirmDelete handles GET /employees/{employee_id}/delete
func (h *employeeHandlerImpl) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDParam(r)

	emp, err := h.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, backend.Detail(err, "Employee not found"))
			return
		}
		slog.Error("failed to load employee", "employee_id", employeeID, "error", err)
		h.renderer.RenderError(w, r, http.StatusBadGateway, msgEmployeeFailed)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, Page{
		Name:  "employee_delete",
		Title: "Delete Employee",
		Nav:   "employees",
		Data:  employeeDeletePage{Employee: emp},
	})
}

// Delete handles POST /employees/{employee_id}/delete
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDParam(r)

	err := h.employeeService.DeleteEmployee(r.Context(), employee.DeleteEmployeeRequest{
		EmployeeID: employeeID,
		Confirmed:  r.PostFormValue("confirm") == "yes",
	})
	switch {
	case errors.Is(err, employee.ErrDeleteNotConfirmed):
		http.Redirect(w, r, "/employees/"+url.PathEscape(employeeID)+"/delete", http.StatusSeeOther)
	case err != nil:
		slog.Error("failed to delete employee", "employee_id", employeeID, "error", err)
		h.redirectWithNotice(w, r, "/employees", notice.Error(backend.Detail(err, msgDeleteFailed)))
	default:
		h.redirectWithNotice(w, r, "/employees", notice.Success(msgEmployeeDeleted))
	}
}

func (h *employeeHandlerImpl) redirectWithNotice(w http.ResponseWriter, r *http.Request, target string, n notice.Notice) {
	redirectWithNotice(h.notices, w, r, target, n)
}

// ListEmployees handles GET /api/v1/employees
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Directory(r.Context(), directoryQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Employees, &response.Meta{
		TotalItems: result.Total,
		Filter:     result.DepartmentLabel,
	})
}

// NextID handles GET /api/v1/employees/next-id
func (h *employeeHandlerImpl) NextID(w http.ResponseWriter, r *http.Request) {
	nextID, err := h.employeeService.SuggestNextID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.NextIDResponse{NextID: nextID})
}

// CreateEmployee handles POST /api/v1/employees
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, msgEmployeeCreated, created)
}

// GetEmployee handles GET /api/v1/employees/{employee_id}
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDParam(r)
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	history, err := h.attendanceService.EmployeeHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// DeleteEmployee handles DELETE /api/v1/employees/{employee_id}?confirm=true
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	err := h.employeeService.DeleteEmployee(r.Context(), employee.DeleteEmployeeRequest{
		EmployeeID: employeeIDParam(r),
		Confirmed:  confirmed,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, msgEmployeeDeleted, nil)
}
