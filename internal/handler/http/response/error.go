package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/validator"
)

// HandleError maps domain and backend errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, backend.Detail(err, "Employee not found"))
		return
	case errors.Is(err, employee.ErrDeleteNotConfirmed):
		BadRequest(w, "Deletion must be confirmed", nil)
		return

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDate), errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
		return

	case errors.Is(err, backend.ErrUnreachable):
		slog.Error("hrms backend unreachable", "error", err)
		BadGateway(w, "HRMS backend is unreachable")
		return
	}

	// Backend rejections keep their message
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			NotFound(w, apiErr.Detail)
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			Upstream(w, apiErr.StatusCode, apiErr.Detail)
		default:
			slog.Error("hrms backend failed", "status", apiErr.StatusCode, "error", err)
			BadGateway(w, apiErr.Detail)
		}
		return
	}

	// Default
	slog.Error("unexpected error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
