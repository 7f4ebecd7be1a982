package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
	"github.com/cmlabs-hris/hrms-lite-console/internal/repository/hrmsapi"
	"github.com/cmlabs-hris/hrms-lite-console/internal/repository/hrmsapi/hrmsapitest"
	attendanceService "github.com/cmlabs-hris/hrms-lite-console/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-console/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-console/internal/service/employee"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const handlerTestSecret = "test-secret-key-for-notices"

type console struct {
	backend *hrmsapitest.Backend
	router  *chi.Mux
	notices notice.Service
}

func handlerTestInit(t *testing.T) *console {
	t.Helper()
	b := hrmsapitest.NewBackend()
	t.Cleanup(b.Close)

	client, err := backend.NewClient(b.URL(), 5*time.Second)
	require.NoError(t, err)

	employeeRepo := hrmsapi.NewEmployeeRepository(client)
	attendanceRepo := hrmsapi.NewAttendanceRepository(client)
	dashboardRepo := hrmsapi.NewDashboardRepository(client)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	renderer, err := NewRenderer("HRMS Lite")
	require.NoError(t, err)
	notices := notice.NewNoticeService(handlerTestSecret, time.Minute, false)

	router := NewRouter(
		RouterOptions{AppName: "HRMS Lite", Env: "test", LogOutput: io.Discard},
		notices,
		NewDashboardHandler(dashboardSvc, renderer),
		NewEmployeeHandler(employeeSvc, attendanceSvc, notices, renderer),
		NewAttendanceHandler(attendanceSvc, notices, renderer),
	)

	return &console{backend: b, router: router, notices: notices}
}

func (c *console) seed() (ann, bob employee.Employee) {
	ann = c.backend.AddEmployee(employee.Employee{EmployeeID: "EMP-0001", FullName: "Ann Lee", Email: "ann@example.com", Department: employee.DepartmentEngineering})
	bob = c.backend.AddEmployee(employee.Employee{EmployeeID: "EMP-0002", FullName: "Bob Stone", Email: "bob@example.com", Department: employee.DepartmentSales})
	return ann, bob
}

func (c *console) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *console) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return c.do(req)
}

func (c *console) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *console) sendJSON(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

// follow reads the notice carried by a redirect response.
func (c *console) follow(t *testing.T, w *httptest.ResponseRecorder) (string, notice.Notice) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code)

	var found *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == notice.CookieName {
			found = cookie
		}
	}
	require.NotNil(t, found, "redirect carries no notice")

	n, err := c.notices.Decode(found.Value)
	require.NoError(t, err)
	return w.Header().Get("Location"), n
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int    `json:"total_items"`
		Filter     string `json:"filter"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// ===== DASHBOARD =====

func TestDashboard_Page(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-stat="total_employees">2<`)
	assert.Contains(t, w.Body.String(), `data-stat="pending_today">2<`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestDashboard_PageFailureOffersRetry(t *testing.T) {
	c := handlerTestInit(t)
	c.backend.Fail(http.MethodGet, "/api/dashboard", http.StatusInternalServerError, "boom")

	w := c.get("/")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load dashboard stats")
	assert.Contains(t, w.Body.String(), "Try Again")
	// no automatic retry
	assert.Equal(t, 1, c.backend.CountRequests("GET /api/dashboard"))
}

func TestDashboard_JSON(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/api/v1/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"total_employees":2,"total_present_today":0,"total_absent_today":0,"pending_today":2,"attendance_rate":0}`, string(env.Data))
}

func TestHealthz(t *testing.T) {
	c := handlerTestInit(t)
	w := c.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, c.backend.Requests())
}

// ===== EMPLOYEES =====

func TestDirectory_EmptyState(t *testing.T) {
	c := handlerTestInit(t)

	w := c.get("/employees")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No employees yet")
}

func TestDirectory_Filters(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/employees?department=Engineering&view=list")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ann Lee")
	assert.NotContains(t, body, "Bob Stone")
	assert.Contains(t, body, "Showing 1 of 2 employees")
	assert.Contains(t, body, "<table>")

	w = c.get("/employees?q=zzz")
	assert.Contains(t, w.Body.String(), "No employees match the current filters")
}

func TestDirectory_Failure(t *testing.T) {
	c := handlerTestInit(t)
	c.backend.Fail(http.MethodGet, "/api/employees", http.StatusInternalServerError, "boom")

	w := c.get("/employees")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load employees")
}

func TestNewForm_PrefillsNextID(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/employees/new")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="employee_id" value="EMP-0003"`)
}

func TestCreate_Success(t *testing.T) {
	c := handlerTestInit(t)

	w := c.postForm("/employees", url.Values{
		"employee_id": {"EMP-0001"},
		"full_name":   {"Ann Lee"},
		"email":       {"ann@example.com"},
		"department":  {"Engineering"},
	})
	location, n := c.follow(t, w)
	assert.Equal(t, "/employees", location)
	assert.Equal(t, "Employee added successfully!", n.Message)
	assert.Equal(t, notice.SeveritySuccess, n.Severity)
	assert.Len(t, c.backend.Employees(), 1)

	// the directory shows it once, then the cookie is cleared
	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		cookie = ck
	}
	page := c.get(location, cookie)
	assert.Contains(t, page.Body.String(), "Employee added successfully!")
	assert.Contains(t, page.Body.String(), `class="notice success"`)
	assert.Contains(t, page.Body.String(), `role="status"`)
	assert.Contains(t, page.Body.String(), "Ann Lee")
}

func TestCreate_ValidationNeverReachesBackend(t *testing.T) {
	c := handlerTestInit(t)

	w := c.postForm("/employees", url.Values{
		"employee_id": {"EMP-0001"},
		"full_name":   {""},
		"email":       {"ann@"},
		"department":  {"Engineering"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Full name is required")
	assert.Contains(t, body, "Invalid email format")
	assert.Contains(t, body, `value="EMP-0001"`)
	assert.Empty(t, c.backend.Requests())
}

func TestCreate_ServerRejectionIsVerbatim(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.postForm("/employees", url.Values{
		"employee_id": {"EMP-0001"},
		"full_name":   {"Someone Else"},
		"email":       {"someone@example.com"},
		"department":  {"HR"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Employee ID &#39;EMP-0001&#39; already exists")
	assert.Equal(t, 1, c.backend.CountRequests("POST /api/employees"))
}

func TestDetail(t *testing.T) {
	c := handlerTestInit(t)
	ann, _ := c.seed()
	d, _ := attendance.ParseDate("2024-03-01")
	c.backend.AddRecord(ann.ID, d, attendance.StatusPresent)

	w := c.get("/employees/EMP-0001")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-stat="present_days">1<`)
	assert.Contains(t, body, `data-stat="attendance_rate">100%<`)
	assert.Contains(t, body, "2024-03-01")

	w = c.get("/employees/EMP-0404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Employee with ID &#39;EMP-0404&#39; not found")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/employees/EMP-0001/delete")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be undone")

	w = c.postForm("/employees/EMP-0001/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employees/EMP-0001/delete", w.Header().Get("Location"))
	assert.Equal(t, 0, c.backend.CountRequests("DELETE"))

	w = c.postForm("/employees/EMP-0001/delete", url.Values{"confirm": {"yes"}})
	location, n := c.follow(t, w)
	assert.Equal(t, "/employees", location)
	assert.Equal(t, "Employee deleted successfully!", n.Message)
	assert.Len(t, c.backend.Employees(), 1)
}

func TestDelete_FailureKeepsDirectory(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()
	c.backend.Fail(http.MethodDelete, "/api/employees/EMP-0001", http.StatusInternalServerError, "")

	w := c.postForm("/employees/EMP-0001/delete", url.Values{"confirm": {"yes"}})
	location, n := c.follow(t, w)
	assert.True(t, n.IsError())
	assert.Equal(t, "Internal Server Error", n.Message)
	assert.Len(t, c.backend.Employees(), 2)

	page := c.get(location, w.Result().Cookies()...)
	assert.Contains(t, page.Body.String(), `class="notice error"`)
	assert.Contains(t, page.Body.String(), `role="alert"`)
}

func TestEmployeesJSON(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/api/v1/employees?department=Sales")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.TotalItems)
	assert.Equal(t, "Sales", env.Meta.Filter)
	var list []employee.Employee
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "EMP-0002", list[0].EmployeeID)

	w = c.get("/api/v1/employees/next-id")
	assert.JSONEq(t, `{"next_id":"EMP-0003"}`, string(decodeEnvelope(t, w).Data))

	w = c.sendJSON(http.MethodPost, "/api/v1/employees", employee.CreateEmployeeRequest{
		EmployeeID: "EMP-0003", FullName: "Cara Ng", Email: "bad", Department: employee.DepartmentHR,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env = decodeEnvelope(t, w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Invalid email format", env.Error.Details["email"])

	w = c.sendJSON(http.MethodPost, "/api/v1/employees", employee.CreateEmployeeRequest{
		EmployeeID: "EMP-0003", FullName: "Cara Ng", Email: "ann@example.com", Department: employee.DepartmentHR,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email 'ann@example.com' already exists", decodeEnvelope(t, w).Error.Message)

	w = c.sendJSON(http.MethodPost, "/api/v1/employees", employee.CreateEmployeeRequest{
		EmployeeID: "EMP-0003", FullName: "Cara Ng", Email: "cara@example.com", Department: employee.DepartmentHR,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = c.get("/api/v1/employees/EMP-0404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestDeleteEmployeeJSON(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.sendJSON(http.MethodDelete, "/api/v1/employees/EMP-0001", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, c.backend.CountRequests("DELETE"))

	w = c.sendJSON(http.MethodDelete, "/api/v1/employees/EMP-0001?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Employee deleted successfully!", decodeEnvelope(t, w).Message)
}

func TestEmployeeIDPathEscapes(t *testing.T) {
	for _, id := range []string{"EMP/07", "EMP%07"} {
		t.Run(id, func(t *testing.T) {
			c := handlerTestInit(t)
			c.backend.AddEmployee(employee.Employee{EmployeeID: id, FullName: "Dan Roe", Email: "dan@example.com", Department: employee.DepartmentHR})
			escaped := "/employees/" + url.PathEscape(id)

			w := c.get("/api/v1/employees/" + url.PathEscape(id))
			require.Equal(t, http.StatusOK, w.Code)
			var history attendance.EmployeeHistory
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &history))
			assert.Equal(t, id, history.Employee.EmployeeID)

			w = c.get(escaped)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "Dan Roe")

			w = c.postForm(escaped+"/delete", url.Values{})
			assert.Equal(t, escaped+"/delete", w.Header().Get("Location"))

			w = c.sendJSON(http.MethodDelete, "/api/v1"+escaped+"?confirm=true", nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, c.backend.Employees())
		})
	}
}

func TestBackendUnreachable(t *testing.T) {
	c := handlerTestInit(t)
	c.backend.Close()

	w := c.get("/api/v1/employees")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "BAD_GATEWAY", decodeEnvelope(t, w).Error.Code)
}

// ===== ATTENDANCE =====

func TestAttendance_IdleWithoutDate(t *testing.T) {
	c := handlerTestInit(t)

	w := c.get("/attendance")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Select a Date")
	// the picker starts on today without loading anything
	today := attendance.DateOf(time.Now()).String()
	assert.Contains(t, body, `name="date" value="`+today+`"`)
	assert.Empty(t, c.backend.Requests())
}

func TestAttendance_InvalidDate(t *testing.T) {
	c := handlerTestInit(t)

	w := c.get("/attendance?date=2024-02-30")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, c.backend.Requests())
}

func TestAttendance_Sheet(t *testing.T) {
	c := handlerTestInit(t)
	ann, _ := c.seed()
	d, _ := attendance.ParseDate("2024-03-01")
	c.backend.AddRecord(ann.ID, d, attendance.StatusPresent)

	w := c.get("/attendance?date=2024-03-01")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-stat="present">1<`)
	assert.Contains(t, body, `data-stat="pending">1<`)
	assert.Contains(t, body, `data-stat="rate">50%<`)
	assert.Contains(t, body, "Mark Absent")
	assert.Contains(t, body, "Mark Present")
	assert.Contains(t, body, `action="/attendance/mark"`)
	assert.Contains(t, body, `name="status" value="Present"`)
	assert.Contains(t, body, `name="status" value="Absent"`)
	assert.Contains(t, body, `<a href="/employees/EMP-0002">Bob Stone</a>`)
	assert.Contains(t, body, "/attendance/export?date=2024-03-01")
}

func TestAttendance_SheetFailure(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()
	c.backend.Fail(http.MethodGet, "/api/attendance", http.StatusInternalServerError, "boom")

	w := c.get("/attendance?date=2024-03-01")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load attendance data")
}

func TestAttendance_ToggleCycle(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	var messages []string
	for i := 0; i < 3; i++ {
		w := c.postForm("/attendance/toggle", url.Values{
			"employee_id": {"EMP-0001"},
			"date":        {"2024-03-01"},
			"department":  {"Engineering"},
		})
		location, n := c.follow(t, w)
		assert.Equal(t, "/attendance?date=2024-03-01&department=Engineering", location)
		messages = append(messages, n.Message)
	}

	assert.Equal(t, []string{"Marked as Present", "Marked as Absent", "Marked as Present"}, messages)
	assert.Len(t, c.backend.Records(), 1)
}

func TestAttendance_ToggleIgnoresStaleScreen(t *testing.T) {
	c := handlerTestInit(t)
	ann, _ := c.seed()
	d, _ := attendance.ParseDate("2024-03-01")
	c.backend.AddRecord(ann.ID, d, attendance.StatusAbsent)

	// a page rendered before the record existed still toggles from Absent
	w := c.postForm("/attendance/toggle", url.Values{
		"employee_id":    {"EMP-0001"},
		"date":           {"2024-03-01"},
		"current_status": {"Present"},
	})
	_, n := c.follow(t, w)
	assert.Equal(t, "Marked as Present", n.Message)
	require.Len(t, c.backend.Records(), 1)
	assert.Equal(t, attendance.StatusPresent, c.backend.Records()[0].Status)
}

func TestAttendance_Mark(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	// Absent straight from Pending
	w := c.postForm("/attendance/mark", url.Values{
		"employee_id": {"EMP-0002"},
		"date":        {"2024-03-01"},
		"status":      {"Absent"},
		"q":           {"bob"},
	})
	location, n := c.follow(t, w)
	assert.Equal(t, "/attendance?date=2024-03-01&q=bob", location)
	assert.False(t, n.IsError())
	assert.Equal(t, "Marked as Absent", n.Message)
	require.Len(t, c.backend.Records(), 1)
	assert.Equal(t, attendance.StatusAbsent, c.backend.Records()[0].Status)

	w = c.get("/attendance?date=2024-03-01")
	assert.Contains(t, w.Body.String(), `data-stat="absent">1<`)
}

func TestAttendance_MarkRejectsBadInput(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"unknown status", url.Values{"employee_id": {"EMP-0001"}, "date": {"2024-03-01"}, "status": {"Pending"}}, "status: status must be Present or Absent"},
		{"bad date", url.Values{"employee_id": {"EMP-0001"}, "date": {"2024-02-30"}, "status": {"Present"}}, "date must be in YYYY-MM-DD format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, n := c.follow(t, c.postForm("/attendance/mark", tc.form))
			assert.True(t, n.IsError())
			assert.Equal(t, tc.want, n.Message)
		})
	}
	assert.Empty(t, c.backend.Requests())
}

func TestAttendance_ToggleFailureLeavesRecords(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()
	c.backend.Fail(http.MethodPost, "/api/attendance", http.StatusServiceUnavailable, "")

	w := c.postForm("/attendance/toggle", url.Values{"employee_id": {"EMP-0001"}, "date": {"2024-03-01"}})
	_, n := c.follow(t, w)
	assert.True(t, n.IsError())
	assert.Equal(t, "Service Unavailable", n.Message)
	assert.Empty(t, c.backend.Records())
}

func TestAttendance_Export(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/attendance/export?date=2024-03-01&department=Sales")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance-2024-03-01.xlsx")

	wb, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob Stone", rows[1][1])
	assert.Equal(t, "Pending", rows[1][3])
}

func TestAttendance_ExportWithoutDate(t *testing.T) {
	c := handlerTestInit(t)

	w := c.get("/attendance/export")
	_, n := c.follow(t, w)
	assert.True(t, n.IsError())
	assert.Empty(t, c.backend.Requests())
}

func TestAttendanceJSON(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.get("/api/v1/attendance/sheet")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle"}`, string(decodeEnvelope(t, w).Data))

	w = c.sendJSON(http.MethodPost, "/api/v1/attendance/toggle", attendance.ToggleRequest{EmployeeID: "EMP-0002", Date: "2024-03-01"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Marked as Present", decodeEnvelope(t, w).Message)

	w = c.get("/api/v1/attendance/sheet?date=2024-03-01")
	require.Equal(t, http.StatusOK, w.Code)
	var snap struct {
		State string           `json:"state"`
		Data  attendance.Sheet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &snap))
	assert.Equal(t, "loaded", snap.State)
	assert.Equal(t, attendance.Summary{Present: 1, Absent: 0, Pending: 1, Total: 2, Rate: 50}, snap.Data.Summary)

	w = c.sendJSON(http.MethodPost, "/api/v1/attendance/toggle", attendance.ToggleRequest{EmployeeID: "EMP-0002", Date: "bad"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAttendanceJSON_ToggleReadsBackend(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	var messages []string
	for i := 0; i < 2; i++ {
		w := c.sendJSON(http.MethodPost, "/api/v1/attendance/toggle", map[string]string{"employee_id": "EMP-0001", "date": "2024-03-01"})
		require.Equal(t, http.StatusOK, w.Code)
		messages = append(messages, decodeEnvelope(t, w).Message)
	}

	assert.Equal(t, []string{"Marked as Present", "Marked as Absent"}, messages)
}

func TestAttendanceJSON_Mark(t *testing.T) {
	c := handlerTestInit(t)
	c.seed()

	w := c.sendJSON(http.MethodPost, "/api/v1/attendance/mark", map[string]string{"employee_id": "EMP-0001", "date": "2024-03-01", "status": "Absent"})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Marked as Absent", env.Message)
	var rec attendance.Record
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	assert.Equal(t, "2024-03-01", rec.Date.String())

	w = c.sendJSON(http.MethodPost, "/api/v1/attendance/mark", map[string]string{"employee_id": "EMP-0001", "date": "2024-03-01", "status": "Late"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "status must be Present or Absent", decodeEnvelope(t, w).Error.Details["status"])

	w = c.sendJSON(http.MethodPost, "/api/v1/attendance/mark", map[string]string{"employee_id": "EMP-0001", "date": "2024-02-30", "status": "Present"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.sendJSON(http.MethodPost, "/api/v1/attendance/mark", map[string]string{"employee_id": "EMP-0404", "date": "2024-03-01", "status": "Present"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, c.backend.Records(), 1)
}
