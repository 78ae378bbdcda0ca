package attendance

import "errors"

// Attendance domain errors
var (
	// Submission errors
	ErrPhotoRequired    = errors.New("attendance photo is required")
	ErrUnsupportedPhoto = errors.New("unsupported photo format")
	ErrNotCheckedIn     = errors.New("no check-in found for today")

	// Identity errors
	ErrFaceMismatch          = errors.New("face does not match the registered reference photo")
	ErrNoFaceDetected        = errors.New("no face detected in the uploaded photo")
	ErrMultipleFaces         = errors.New("multiple faces detected in the uploaded photo")
	ErrReferencePhotoMissing = errors.New("reference photo is missing or unreadable")

	// Evidence errors
	ErrNoGPSData            = errors.New("no GPS data found in the photo")
	ErrNoTimeOverlay        = errors.New("no readable time found in the photo")
	ErrEvidenceDateMismatch = errors.New("photo was not taken today")
	ErrPhotoTooOld          = errors.New("photo timestamp is too far from the current time")

	// General errors
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrApprovalNotFound       = errors.New("approval request not found")
	ErrApprovalAlreadyDecided = errors.New("approval request has already been decided")
	ErrNoSitesConfigured      = errors.New("no sites configured for the employee's branch")
)
