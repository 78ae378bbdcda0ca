package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/attendlab/attendance-backend-go/internal/domain/attendance"
	"github.com/attendlab/attendance-backend-go/internal/handler/http/response"
	"github.com/attendlab/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ApprovalHandler interface {
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewApprovalHandler(attendanceService attendance.AttendanceService) ApprovalHandler {
	return &approvalHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ListPending implements ApprovalHandler.
func (h *approvalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.attendanceService.ListPendingApprovals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewApprovalResponses(pending))
}

// Approve implements ApprovalHandler.
func (h *approvalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := h.decisionRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved", attendance.NewApprovalResponse(result))
}

// Reject implements ApprovalHandler.
func (h *approvalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := h.decisionRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rejected", attendance.NewApprovalResponse(result))
}

// decisionRequest builds a DecisionRequest from the URL, claims, and an
// optional JSON body carrying remarks. An empty body is valid so the email
// deep links work without a payload.
func (h *approvalHandlerImpl) decisionRequest(r *http.Request) (attendance.DecisionRequest, error) {
	adminID, err := subjectFromContext(r)
	if err != nil {
		return attendance.DecisionRequest{}, err
	}

	req := attendance.DecisionRequest{
		ApprovalID: chi.URLParam(r, "id"),
		AdminID:    adminID,
	}

	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return attendance.DecisionRequest{}, validator.ValidationErrors{
			{Field: "body", Message: "invalid request format"},
		}
	}

	return req, nil
}
