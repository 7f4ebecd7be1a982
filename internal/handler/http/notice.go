package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
)

// redirectWithNotice finishes a mutation with Post/Redirect/Get; the notice
// rides along in its cookie and is shown by the target page.
func redirectWithNotice(notices notice.Service, w http.ResponseWriter, r *http.Request, target string, n notice.Notice) {
	if err := notices.Set(w, n); err != nil {
		slog.Error("failed to set notice", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failureStatus is the status of a page re-rendered after a failed call.
func failureStatus(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}
