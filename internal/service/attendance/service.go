package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/domain/employee"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/branch"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/attendlab/attendance-backend-go/internal/pkg/database"
	"github.com/attendlab/attendance-backend-go/internal/pkg/email"
	"github.com/attendlab/attendance-backend-go/internal/pkg/evidence"
	"github.com/attendlab/attendance-backend-go/internal/pkg/facematch"
	"github.com/attendlab/attendance-backend-go/internal/pkg/geocode"
	"github.com/attendlab/attendance-backend-go/internal/pkg/storage"
	"github.com/attendlab/attendance-backend-go/internal/repository/postgresql"
)

// maxPhotoSkew bounds the distance between the photo's evidence timestamp and
// the server clock. Exactly at the bound is still accepted.
const maxPhotoSkew = 10 * time.Minute

// EvidenceResolver is the evidence resolution boundary consumed by the
// reconciler.
type EvidenceResolver interface {
	Resolve(data []byte) (*evidence.Result, error)
}

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	attendance.ApprovalRepository
	employee.EmployeeRepository
	admin.AdminRepository
	branch.BranchRepository
	site.SiteRepository

	verifier    facematch.Verifier
	resolver    EvidenceResolver
	geocoder    geocode.Client
	fileStorage storage.FileStorage
	email       email.EmailService
	baseURL     string

	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
	now   func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	approvalRepo attendance.ApprovalRepository,
	employeeRepo employee.EmployeeRepository,
	adminRepo admin.AdminRepository,
	branchRepo branch.BranchRepository,
	siteRepo site.SiteRepository,
	verifier facematch.Verifier,
	resolver EvidenceResolver,
	geocoder geocode.Client,
	fileStorage storage.FileStorage,
	emailService email.EmailService,
	baseURL string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		ApprovalRepository:   approvalRepo,
		EmployeeRepository:   employeeRepo,
		AdminRepository:      adminRepo,
		BranchRepository:     branchRepo,
		SiteRepository:       siteRepo,
		verifier:             verifier,
		resolver:             resolver,
		geocoder:             geocoder,
		fileStorage:          fileStorage,
		email:                emailService,
		baseURL:              strings.TrimRight(baseURL, "/"),
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		now: time.Now,
	}
}

// Submit implements attendance.AttendanceService. The sequence short-circuits
// on the first failure and commits nothing before the proximity decision.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitResult{}, err
	}

	photo, err := io.ReadAll(req.File)
	if err != nil {
		return attendance.SubmitResult{}, fmt.Errorf("failed to read attendance photo: %w", err)
	}
	if len(photo) == 0 {
		return attendance.SubmitResult{}, attendance.ErrPhotoRequired
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SubmitResult{}, err
	}
	if !emp.IsActive {
		return attendance.SubmitResult{}, employee.ErrEmployeeInactive
	}

	if err := s.verifyIdentity(ctx, emp, photo); err != nil {
		return attendance.SubmitResult{}, err
	}

	resolved, err := s.resolveEvidence(photo)
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	now := s.now()
	skew := now.Sub(*resolved.Timestamp)
	if skew < 0 {
		skew = -skew
	}
	if skew > maxPhotoSkew {
		return attendance.SubmitResult{}, fmt.Errorf("%w: measured skew %s", attendance.ErrPhotoTooOld, skew.Round(time.Second))
	}

	// Scoped consistency repair so today's write starts from a clean slate.
	// Repair failures are logged, never surfaced to the employee.
	if err := s.Sweep(ctx, &req.EmployeeID, now); err != nil {
		slog.Error("scoped reconciliation sweep failed", "employee_id", req.EmployeeID, "error", err)
	}

	today := dateOf(now)
	att, err := s.AttendanceRepository.GetOrCreate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	if req.Type == attendance.TypeOut && att.InTime == nil {
		return attendance.SubmitResult{}, attendance.ErrNotCheckedIn
	}

	sites, err := s.SiteRepository.GetByBranchID(ctx, emp.BranchID)
	if err != nil {
		return attendance.SubmitResult{}, err
	}
	if len(sites) == 0 {
		return attendance.SubmitResult{}, attendance.ErrNoSitesConfigured
	}

	address := resolved.Address
	if address == "" {
		address = s.geocoder.ReverseGeocode(ctx, resolved.Latitude, resolved.Longitude)
	}

	prox := ResolveProximity(resolved.Latitude, resolved.Longitude, sites, DefaultRadiusKm)
	if prox.WithinRange {
		return s.commitSlot(ctx, req, att, photo, resolved, address, prox)
	}
	return s.routeToApproval(ctx, req, emp, att, resolved, address, prox)
}

func (s *AttendanceServiceImpl) verifyIdentity(ctx context.Context, emp employee.Employee, photo []byte) error {
	if emp.ReferencePhotoPath == nil || *emp.ReferencePhotoPath == "" {
		return attendance.ErrReferencePhotoMissing
	}

	reference, err := s.readStoredFile(ctx, *emp.ReferencePhotoPath)
	if err != nil {
		slog.Error("failed to load reference photo", "employee_id", emp.ID, "error", err)
		return attendance.ErrReferencePhotoMissing
	}

	match, err := s.verifier.Verify(ctx, photo, reference)
	if err != nil {
		switch {
		case errors.Is(err, facematch.ErrNoFace):
			return attendance.ErrNoFaceDetected
		case errors.Is(err, facematch.ErrMultipleFaces):
			return attendance.ErrMultipleFaces
		case errors.Is(err, facematch.ErrReferenceUnavailable):
			return attendance.ErrReferencePhotoMissing
		}
		return fmt.Errorf("face verification failed: %w", err)
	}

	if !match.Matched {
		// Logged with identity for audit, per the rejection policy.
		slog.Warn("face verification rejected",
			"employee_id", emp.ID,
			"confidence", match.Confidence,
			"reason", match.Reason,
		)
		if match.Reason != "" {
			return fmt.Errorf("%w: %s", attendance.ErrFaceMismatch, match.Reason)
		}
		return attendance.ErrFaceMismatch
	}

	return nil
}

func (s *AttendanceServiceImpl) resolveEvidence(photo []byte) (*evidence.Result, error) {
	resolved, err := s.resolver.Resolve(photo)
	if err != nil {
		switch {
		case errors.Is(err, evidence.ErrNoEvidence):
			return nil, attendance.ErrNoGPSData
		case errors.Is(err, evidence.ErrTimeUnreadable):
			return nil, attendance.ErrNoTimeOverlay
		case errors.Is(err, evidence.ErrDateMismatch):
			return nil, fmt.Errorf("%w: %v", attendance.ErrEvidenceDateMismatch, err)
		}
		return nil, fmt.Errorf("evidence resolution failed: %w", err)
	}

	// A metadata fix may carry coordinates without a capture time. Freshness
	// cannot be checked without one, so the submission is rejected.
	if resolved.Timestamp == nil {
		return nil, attendance.ErrNoTimeOverlay
	}

	return resolved, nil
}

func (s *AttendanceServiceImpl) commitSlot(
	ctx context.Context,
	req attendance.SubmitRequest,
	att attendance.Attendance,
	photo []byte,
	resolved *evidence.Result,
	address string,
	prox ProximityResult,
) (attendance.SubmitResult, error) {
	// Prefer the metadata-injected rewrite so a later read of the stored
	// image is a fast metadata hit.
	stored := resolved.Rewritten
	if stored == nil {
		stored = photo
	}

	photoPath, err := s.storePhoto(ctx, req, att.EmployeeID, att.Date, stored)
	if err != nil {
		return attendance.SubmitResult{}, fmt.Errorf("failed to store attendance photo: %w", err)
	}

	ts := *resolved.Timestamp
	lat, lon := resolved.Latitude, resolved.Longitude

	switch req.Type {
	case attendance.TypeIn:
		att.InTime = &ts
		att.InLatitude = &lat
		att.InLongitude = &lon
		att.InAddress = &address
		att.InPhotoPath = &photoPath
		att.SiteID = &prox.Site.ID
	case attendance.TypeOut:
		att.OutTime = &ts
		att.OutLatitude = &lat
		att.OutLongitude = &lon
		att.OutAddress = &address
		att.OutPhotoPath = &photoPath
	}

	att.Recompute()

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.SubmitResult{}, err
	}

	slog.Info("attendance committed",
		"employee_id", att.EmployeeID,
		"type", req.Type,
		"site", prox.Site.Name,
		"distance_km", prox.DistanceKm,
		"method", resolved.Method,
	)

	return attendance.SubmitResult{
		Accepted:   true,
		Message:    fmt.Sprintf("Attendance %s recorded at %s, %.2f km from %s. Photo taken at %s.", req.Type, address, prox.DistanceKm, prox.Site.Name, ts.Format("15:04:05")),
		Address:    address,
		SiteName:   prox.Site.Name,
		DistanceKm: prox.DistanceKm,
		PhotoTime:  &ts,
	}, nil
}

func (s *AttendanceServiceImpl) routeToApproval(
	ctx context.Context,
	req attendance.SubmitRequest,
	emp employee.Employee,
	att attendance.Attendance,
	resolved *evidence.Result,
	address string,
	prox ProximityResult,
) (attendance.SubmitResult, error) {
	ts := *resolved.Timestamp

	var created attendance.ApprovalRequest
	err := s.runTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.ApprovalRepository.Create(txCtx, attendance.ApprovalRequest{
			EmployeeID:   emp.ID,
			AttendanceID: &att.ID,
			Date:         att.Date,
			Type:         req.Type,
			Latitude:     resolved.Latitude,
			Longitude:    resolved.Longitude,
			Address:      address,
			Time:         ts,
			Status:       attendance.ApprovalPending,
		})
		if txErr != nil {
			return txErr
		}

		att.SetPending(req.Type, resolved.Latitude, resolved.Longitude, address, ts)
		return s.AttendanceRepository.Update(txCtx, att)
	})
	if err != nil {
		return attendance.SubmitResult{}, err
	}

	notified := s.notifyAdmins(ctx, emp, created, prox)

	message := fmt.Sprintf("You are %.2f km from %s, outside the %.1f km radius. Your %s has been sent to an admin for approval.", prox.DistanceKm, prox.Site.Name, DefaultRadiusKm, req.Type)
	if !notified {
		message = fmt.Sprintf("You are %.2f km from %s, outside the %.1f km radius. Your %s was recorded for approval, but the admin notification could not be delivered.", prox.DistanceKm, prox.Site.Name, DefaultRadiusKm, req.Type)
	}

	return attendance.SubmitResult{
		Accepted:        true,
		PendingApproval: true,
		Message:         message,
		Address:         address,
		SiteName:        prox.Site.Name,
		DistanceKm:      prox.DistanceKm,
		PhotoTime:       &ts,
	}, nil
}

// notifyAdmins mails every active admin with one-click decision links.
// Delivery failure never rolls back the pending state.
func (s *AttendanceServiceImpl) notifyAdmins(ctx context.Context, emp employee.Employee, ap attendance.ApprovalRequest, prox ProximityResult) bool {
	admins, err := s.AdminRepository.GetActive(ctx)
	if err != nil {
		slog.Error("failed to list active admins for approval notification", "error", err)
		return false
	}
	if len(admins) == 0 {
		slog.Warn("no active admins to notify for approval request", "approval_id", ap.ID)
		return false
	}

	// The branch name gives the admin context on which geofence was missed.
	// Lookup failure degrades to an unnamed branch.
	branchName := ""
	if b, err := s.BranchRepository.GetByID(ctx, emp.BranchID); err == nil {
		branchName = b.Name
	}

	notified := false
	for _, adm := range admins {
		data := email.ApprovalRequestData{
			AdminName:      adm.Name,
			EmployeeName:   emp.Name,
			BranchName:     branchName,
			AttendanceType: ap.Type,
			Date:           ap.Date.Format("2006-01-02"),
			Time:           ap.Time.Format("15:04:05"),
			Address:        ap.Address,
			Latitude:       ap.Latitude,
			Longitude:      ap.Longitude,
			ApproveLink:    fmt.Sprintf("%s/api/v1/approvals/%s/approve", s.baseURL, ap.ID),
			RejectLink:     fmt.Sprintf("%s/api/v1/approvals/%s/reject", s.baseURL, ap.ID),
			DistanceKm:     fmt.Sprintf("%.2f", prox.DistanceKm),
		}

		if err := s.email.SendApprovalRequest(adm.Email, data); err != nil {
			slog.Error("failed to send approval notification", "admin_email", adm.Email, "approval_id", ap.ID, "error", err)
			continue
		}
		notified = true
	}

	return notified
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(s.now()))
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListRequest) ([]attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)

	var employeeID *string
	if req.EmployeeID != "" {
		employeeID = &req.EmployeeID
	}

	return s.AttendanceRepository.ListByDateRange(ctx, start, end, employeeID)
}

// Approve implements attendance.AttendanceService. The snapshot is copied
// into the matching slot and the pending side channel cleared atomically.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.DecisionRequest) (attendance.ApprovalRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.ApprovalRequest{}, err
	}

	var out attendance.ApprovalRequest
	err := s.runTx(ctx, func(txCtx context.Context) error {
		ap, err := s.ApprovalRepository.GetByID(txCtx, req.ApprovalID)
		if err != nil {
			return err
		}
		if ap.IsDecided() {
			return attendance.ErrApprovalAlreadyDecided
		}

		now := s.now()
		ap.Status = attendance.ApprovalApproved
		ap.DecidedBy = &req.AdminID
		ap.DecidedAt = &now
		ap.Remarks = req.Remarks

		att, err := s.AttendanceRepository.GetOrCreate(txCtx, ap.EmployeeID, ap.Date)
		if err != nil {
			return err
		}

		ts := ap.Time
		lat, lon, addr := ap.Latitude, ap.Longitude, ap.Address
		switch ap.Type {
		case attendance.TypeIn:
			att.InTime = &ts
			att.InLatitude = &lat
			att.InLongitude = &lon
			att.InAddress = &addr
		case attendance.TypeOut:
			att.OutTime = &ts
			att.OutLatitude = &lat
			att.OutLongitude = &lon
			att.OutAddress = &addr
		}

		att.ClearPending()
		att.Recompute()

		if err := s.AttendanceRepository.Update(txCtx, att); err != nil {
			return err
		}

		ap.AttendanceID = &att.ID
		if err := s.ApprovalRepository.Update(txCtx, ap); err != nil {
			return err
		}

		out = ap
		return nil
	})
	if err != nil {
		return attendance.ApprovalRequest{}, err
	}

	slog.Info("approval request approved", "approval_id", out.ID, "admin_id", req.AdminID)
	return out, nil
}

// Reject implements attendance.AttendanceService. The underlying slot is
// never written; only the pending side channel is cleared.
func (s *AttendanceServiceImpl) Reject(ctx context.Context, req attendance.DecisionRequest) (attendance.ApprovalRequest, error) {
	if err := req.Validate(); err != nil {
		return attendance.ApprovalRequest{}, err
	}

	var out attendance.ApprovalRequest
	err := s.runTx(ctx, func(txCtx context.Context) error {
		ap, err := s.ApprovalRepository.GetByID(txCtx, req.ApprovalID)
		if err != nil {
			return err
		}
		if ap.IsDecided() {
			return attendance.ErrApprovalAlreadyDecided
		}

		now := s.now()
		ap.Status = attendance.ApprovalRejected
		ap.DecidedBy = &req.AdminID
		ap.DecidedAt = &now
		ap.Remarks = req.Remarks

		att, err := s.AttendanceRepository.GetByEmployeeAndDate(txCtx, ap.EmployeeID, ap.Date)
		if err == nil {
			att.ClearPending()
			att.Recompute()
			if err := s.AttendanceRepository.Update(txCtx, att); err != nil {
				return err
			}
		} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}

		if err := s.ApprovalRepository.Update(txCtx, ap); err != nil {
			return err
		}

		out = ap
		return nil
	})
	if err != nil {
		return attendance.ApprovalRequest{}, err
	}

	slog.Info("approval request rejected", "approval_id", out.ID, "admin_id", req.AdminID)
	return out, nil
}

// ListPendingApprovals implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPendingApprovals(ctx context.Context) ([]attendance.ApprovalRequest, error) {
	return s.ApprovalRepository.ListPending(ctx)
}

func (s *AttendanceServiceImpl) readStoredFile(ctx context.Context, path string) ([]byte, error) {
	rc, err := s.fileStorage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *AttendanceServiceImpl) storePhoto(ctx context.Context, req attendance.SubmitRequest, employeeID string, date time.Time, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(req.FileHeader.Filename))
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	path := fmt.Sprintf("attendance/%s/%s_%s%s", employeeID, date.Format("2006-01-02"), req.Type, ext)
	return s.fileStorage.Upload(ctx, bytes.NewReader(data), path, contentType)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
