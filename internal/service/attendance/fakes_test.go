package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/attendlab/attendance-backend-go/internal/domain/admin"
	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/domain/employee"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/branch"
	"github.com/attendlab/attendance-backend-go/internal/domain/master/site"
	"github.com/attendlab/attendance-backend-go/internal/pkg/email"
	"github.com/attendlab/attendance-backend-go/internal/pkg/evidence"
	"github.com/attendlab/attendance-backend-go/internal/pkg/facematch"
	"github.com/google/uuid"
)

type fakeAttendanceRepo struct {
	byID    map[string]*attendance.Attendance
	nextID  int
	updates int
	deletes int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byID: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) find(employeeID string, date time.Time) *attendance.Attendance {
	for _, a := range f.byID {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a
		}
	}
	return nil
}

func (f *fakeAttendanceRepo) seed(a attendance.Attendance) *attendance.Attendance {
	if a.ID == "" {
		f.nextID++
		a.ID = fmt.Sprintf("att-%d", f.nextID)
	}
	f.byID[a.ID] = &a
	return &a
}

func (f *fakeAttendanceRepo) GetOrCreate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	if a := f.find(employeeID, date); a != nil {
		return *a, nil
	}
	created := f.seed(attendance.Attendance{
		EmployeeID:   employeeID,
		Date:         date,
		Status:       attendance.StatusAbsent,
		WorkingHours: "0:00",
	})
	return *created, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	if a := f.find(employeeID, date); a != nil {
		return *a, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	if _, ok := f.byID[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	stored := a
	f.byID[a.ID] = &stored
	f.updates++
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.byID, id)
	f.deletes++
	return nil
}

func (f *fakeAttendanceRepo) matches(a *attendance.Attendance, employeeID *string) bool {
	return employeeID == nil || a.EmployeeID == *employeeID
}

func (f *fakeAttendanceRepo) ListByDateRange(_ context.Context, start, end time.Time, employeeID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.byID {
		if !a.Date.Before(start) && !a.Date.After(end) && f.matches(a, employeeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetIncompleteBefore(_ context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.byID {
		if a.Date.Before(date) && (a.InTime == nil || a.OutTime == nil) && f.matches(a, employeeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetEmptyOnDate(_ context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.byID {
		if a.Date.Equal(date) && a.InTime == nil && a.OutTime == nil && !a.PendingApproval && f.matches(a, employeeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetOpenOnDate(_ context.Context, date time.Time, employeeID *string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.byID {
		if a.Date.Equal(date) && a.InTime != nil && f.matches(a, employeeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeApprovalRepo struct {
	byID map[string]*attendance.ApprovalRequest
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{byID: make(map[string]*attendance.ApprovalRequest)}
}

func (f *fakeApprovalRepo) Create(_ context.Context, req attendance.ApprovalRequest) (attendance.ApprovalRequest, error) {
	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	stored := req
	f.byID[req.ID] = &stored
	return req, nil
}

func (f *fakeApprovalRepo) GetByID(_ context.Context, id string) (attendance.ApprovalRequest, error) {
	if ap, ok := f.byID[id]; ok {
		return *ap, nil
	}
	return attendance.ApprovalRequest{}, attendance.ErrApprovalNotFound
}

func (f *fakeApprovalRepo) Update(_ context.Context, req attendance.ApprovalRequest) error {
	if _, ok := f.byID[req.ID]; !ok {
		return attendance.ErrApprovalNotFound
	}
	stored := req
	f.byID[req.ID] = &stored
	return nil
}

func (f *fakeApprovalRepo) ListPending(_ context.Context) ([]attendance.ApprovalRequest, error) {
	var out []attendance.ApprovalRequest
	for _, ap := range f.byID {
		if ap.Status == attendance.ApprovalPending {
			out = append(out, *ap)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, mail string) (employee.Employee, error) {
	for _, e := range f.byID {
		if e.Email == mail {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.byID {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAdminRepo struct {
	admins []admin.Admin
	err    error
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (admin.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, mail string) (admin.Admin, error) {
	for _, a := range f.admins {
		if a.Email == mail {
			return a, nil
		}
	}
	return admin.Admin{}, admin.ErrAdminNotFound
}

func (f *fakeAdminRepo) GetActive(_ context.Context) ([]admin.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.admins, nil
}

type fakeBranchRepo struct {
	branches []branch.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	for _, b := range f.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return branch.Branch{}, branch.ErrBranchNotFound
}

func (f *fakeBranchRepo) List(_ context.Context) ([]branch.Branch, error) {
	return f.branches, nil
}

type fakeSiteRepo struct {
	sites []site.Site
}

func (f *fakeSiteRepo) GetByID(_ context.Context, id string) (site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return site.Site{}, site.ErrSiteNotFound
}

func (f *fakeSiteRepo) GetByBranchID(_ context.Context, branchID string) ([]site.Site, error) {
	var out []site.Site
	for _, s := range f.sites {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeVerifier struct {
	match facematch.Match
	err   error
}

func (f *fakeVerifier) Name() string { return "fake" }

func (f *fakeVerifier) Verify(_ context.Context, _, _ []byte) (facematch.Match, error) {
	return f.match, f.err
}

type fakeResolver struct {
	result *evidence.Result
	err    error
}

func (f *fakeResolver) Resolve(_ []byte) (*evidence.Result, error) {
	return f.result, f.err
}

type fakeGeocoder struct {
	address string
}

func (f *fakeGeocoder) ReverseGeocode(_ context.Context, lat, lon float64) string {
	if f.address != "" {
		return f.address
	}
	return fmt.Sprintf("Location: %.6f, %.6f", lat, lon)
}

type fakeStorage struct {
	files   map[string][]byte
	uploads []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, file io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.files[path] = data
	f.uploads = append(f.uploads, path)
	return path, nil
}

func (f *fakeStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) GetURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "http://localhost/uploads/" + path, nil
}

func (f *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

type fakeEmailService struct {
	sent []string
	err  error
}

func (f *fakeEmailService) SendApprovalRequest(to string, _ email.ApprovalRequestData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}
