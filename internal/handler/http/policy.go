package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	SetOverride(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService leave.PolicyService
}

func NewPolicyHandler(policyService leave.PolicyService) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// Get implements PolicyHandler.
func (h *PolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	policy, err := h.policyService.GetPolicy(r.Context(), identity.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

// Upsert implements PolicyHandler.
func (h *PolicyHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.UpsertPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertPolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	policy, err := h.policyService.UpsertPolicy(r.Context(), identity.OrgID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy saved successfully", policy)
}

// SetOverride implements PolicyHandler.
func (h *PolicyHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if _, err := h.policyService.SetAllowanceOverride(r.Context(), identity.OrgID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allowance override saved successfully", nil)
}
