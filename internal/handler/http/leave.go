package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// List implements LeaveHandler. Filters by ?month=YYYY-MM or ?year=YYYY; the
// balance is attached on year listings.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var filter leave.ListLeaveFilter
	if month := r.URL.Query().Get("month"); month != "" {
		if _, ok := validator.IsValidMonth(month); !ok {
			response.BadRequest(w, "month must be in YYYY-MM format", nil)
			return
		}
		filter.Month = &month
	} else if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1000 || year > 9999 {
			response.BadRequest(w, "year must be a 4-digit year", nil)
			return
		}
		filter.Year = &year
	}

	result, err := h.leaveService.ListLeaveRequests(r.Context(), identity.UserID, identity.OrgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.CreateLeaveRequest(r.Context(), identity.UserID, identity.OrgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", result)
}

// Delete implements LeaveHandler. Accepts ?id= or ?date=YYYY-MM-DD.
func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var filter leave.DeleteLeaveFilter
	if id := r.URL.Query().Get("id"); id != "" {
		filter.ID = &id
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	if err := h.leaveService.DeleteLeaveRequest(r.Context(), identity.UserID, filter); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}
