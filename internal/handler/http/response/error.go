package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/domain/auth"
	"github.com/attendlab/attendance-backend-go/internal/domain/employee"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/branch"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/attendlab/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")

	// Employee/admin domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is deactivated")
	case errors.Is(err, admin.ErrAdminNotFound):
		NotFound(w, "Admin not found")
	case errors.Is(err, admin.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Submission input errors
	case errors.Is(err, attendance.ErrPhotoRequired),
		errors.Is(err, attendance.ErrUnsupportedPhoto),
		errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, err.Error(), nil)

	// Identity errors
	case errors.Is(err, attendance.ErrFaceMismatch),
		errors.Is(err, attendance.ErrNoFaceDetected),
		errors.Is(err, attendance.ErrMultipleFaces),
		errors.Is(err, attendance.ErrReferencePhotoMissing):
		BadRequest(w, err.Error(), nil)

	// Evidence and freshness errors carry their sub-cause in the message.
	case errors.Is(err, attendance.ErrNoGPSData),
		errors.Is(err, attendance.ErrNoTimeOverlay),
		errors.Is(err, attendance.ErrEvidenceDateMismatch),
		errors.Is(err, attendance.ErrPhotoTooOld),
		errors.Is(err, attendance.ErrNoSitesConfigured):
		BadRequest(w, err.Error(), nil)

	// Record lookup errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrApprovalNotFound):
		NotFound(w, "Approval request not found")
	case errors.Is(err, attendance.ErrApprovalAlreadyDecided):
		Conflict(w, "Approval request has already been decided")

	// Master data errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
