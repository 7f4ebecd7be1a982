package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/view"
	"github.com/cmlabs-hris/hrms-lite-console/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

const (
	msgAttendanceFailed = "Failed to load attendance data"
	msgMarkFailed       = "Failed to mark attendance"
	msgExportFailed     = "Failed to export attendance"
	msgMarkedAs         = "Marked as %s"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AttendanceHandler interface {
	// HTML screens
	Page(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	// JSON API
	GetSheet(w http.ResponseWriter, r *http.Request)
	ToggleAttendance(w http.ResponseWriter, r *http.Request)
	MarkAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	notices           notice.Service
	renderer          *Renderer
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, notices notice.Service, renderer *Renderer) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		notices:           notices,
		renderer:          renderer,
	}
}

func sheetQuery(date string, r *http.Request) attendance.SheetQuery {
	return attendance.SheetQuery{
		Date:        date,
		Departments: departmentsParam(r.Form),
		Search:      r.Form.Get("q"),
	}
}

// sheetURL is the attendance screen for query; path selects screen or export.
func sheetURL(path string, query attendance.SheetQuery) string {
	values := filterValues(query.Filter())
	if query.Date != "" {
		values.Set("date", query.Date)
	}
	return withQuery(path, values)
}

type attendancePage struct {
	State     view.State[attendance.Sheet]
	Date      string
	Filters   filterForm
	SelfURL   string
	ExportURL string
	Statuses  []attendance.Status
}

// Page handles GET /attendance
func (h *attendanceHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	query := sheetQuery(r.Form.Get("date"), r)

	page := attendancePage{
		Date:      query.Date,
		Filters:   newFilterForm(query.Filter()),
		SelfURL:   sheetURL("/attendance", query),
		ExportURL: sheetURL("/attendance/export", query),
		Statuses:  []attendance.Status{attendance.StatusPresent, attendance.StatusAbsent},
	}
	if page.Date == "" {
		// the picker starts on today; nothing loads until it is submitted
		page.Date = attendance.DateOf(time.Now()).String()
	}

	status := http.StatusOK
	switch sheet, err := h.loadSheet(r, query); {
	case query.Date == "":
		page.State = view.Idle[attendance.Sheet]()
	case err != nil:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			page.State = view.Failed[attendance.Sheet](validationErrs.Error())
			status = http.StatusBadRequest
		} else {
			page.State = view.Failed[attendance.Sheet](msgAttendanceFailed)
			status = http.StatusBadGateway
		}
	default:
		page.State = view.Loaded(sheet)
	}

	h.renderer.Render(w, r, status, Page{
		Name:  "attendance",
		Title: "Attendance",
		Nav:   "attendance",
		Data:  page,
	})
}

// loadSheet fetches nothing while no date is selected.
func (h *attendanceHandlerImpl) loadSheet(r *http.Request, query attendance.SheetQuery) (attendance.Sheet, error) {
	if query.Date == "" {
		return attendance.Sheet{}, nil
	}
	sheet, err := h.attendanceService.Sheet(r.Context(), query)
	if err != nil {
		slog.Error("failed to load attendance sheet", "date", query.Date, "error", err)
	}
	return sheet, err
}

// Toggle handles POST /attendance/toggle
func (h *attendanceHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	req := attendance.ToggleRequest{
		EmployeeID: r.PostForm.Get("employee_id"),
		Date:       r.PostForm.Get("date"),
	}

	record, err := h.attendanceService.Toggle(r.Context(), req)
	h.markedRedirect(w, r, sheetURL("/attendance", sheetQuery(req.Date, r)), record, err)
}

// Mark handles POST /attendance/mark
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	dateParam := r.PostForm.Get("date")
	back := sheetURL("/attendance", sheetQuery(dateParam, r))

	date, err := attendance.ParseDate(dateParam)
	if err != nil {
		redirectWithNotice(h.notices, w, r, back, notice.Error(attendance.ErrInvalidDate.Error()))
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), attendance.MarkRequest{
		EmployeeID: r.PostForm.Get("employee_id"),
		Date:       date,
		Status:     attendance.Status(r.PostForm.Get("status")),
	})
	h.markedRedirect(w, r, back, record, err)
}

// markedRedirect answers a toggle or mark with a notice and a redirect back to the sheet.
func (h *attendanceHandlerImpl) markedRedirect(w http.ResponseWriter, r *http.Request, back string, record attendance.Record, err error) {
	if err != nil {
		message := backend.Detail(err, msgMarkFailed)
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			message = validationErrs.Error()
		}
		redirectWithNotice(h.notices, w, r, back, notice.Error(message))
		return
	}

	redirectWithNotice(h.notices, w, r, back, notice.Success(fmt.Sprintf(msgMarkedAs, record.Status)))
}

// Export handles GET /attendance/export
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	query := sheetQuery(r.Form.Get("date"), r)

	var buf bytes.Buffer
	if err := h.attendanceService.ExportSheet(r.Context(), query, &buf); err != nil {
		slog.Error("failed to export attendance", "date", query.Date, "error", err)
		message := msgExportFailed
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			message = validationErrs.Error()
		}
		redirectWithNotice(h.notices, w, r, sheetURL("/attendance", query), notice.Error(message))
		return
	}

	date, _ := attendance.ParseDate(query.Date)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, spreadsheet.FileName(date)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetSheet handles GET /api/v1/attendance/sheet
func (h *attendanceHandlerImpl) GetSheet(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	query := sheetQuery(r.Form.Get("date"), r)

	if query.Date == "" {
		response.Success(w, view.Idle[attendance.Sheet]().Snapshot())
		return
	}

	sheet, err := h.attendanceService.Sheet(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view.Loaded(sheet).Snapshot())
}

// ToggleAttendance handles POST /api/v1/attendance/toggle
func (h *attendanceHandlerImpl) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.Toggle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf(msgMarkedAs, record.Status), record)
}

// MarkAttendance handles POST /api/v1/attendance/mark
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, attendance.ErrInvalidDate) {
			response.HandleError(w, err)
			return
		}
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf(msgMarkedAs, record.Status), record)
}
