package http

import (
	"net/http"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hq/onsite-backend-go/internal/handler/http/response"
)

type CompTimeHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type CompTimeHandlerImpl struct {
	ledger comptime.Ledger
}

func NewCompTimeHandler(ledger comptime.Ledger) CompTimeHandler {
	return &CompTimeHandlerImpl{ledger: ledger}
}

type compTimeEntryResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	SourceDate       string  `json:"source_date"`
	MinutesEarned    int     `json:"minutes_earned"`
	MinutesUsed      int     `json:"minutes_used"`
	MinutesAvailable int     `json:"minutes_available"`
	Status           string  `json:"status"`
	ExpiresAt        string  `json:"expires_at"`
	Description      *string `json:"description,omitempty"`
}

type compTimeBalanceResponse struct {
	TotalMinutes int                     `json:"total_minutes"`
	Entries      []compTimeEntryResponse `json:"entries"`
}

// GetBalance implements CompTimeHandler. Entries are ordered soonest-expiring
// first, matching consumption order. ?all=true includes spent and expired
// entries; total_minutes always counts only what is still consumable.
func (h *CompTimeHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balance, err := h.ledger.Balance(r.Context(), identity.UserID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries := balance.Entries
	if r.URL.Query().Get("all") == "true" {
		entries, err = h.ledger.History(r.Context(), identity.UserID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
	}

	resp := compTimeBalanceResponse{
		TotalMinutes: balance.TotalMinutes,
		Entries:      make([]compTimeEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, compTimeEntryResponse{
			ID:               e.ID,
			Type:             e.Type,
			SourceDate:       e.SourceDate.Format("2006-01-02"),
			MinutesEarned:    e.MinutesEarned,
			MinutesUsed:      e.MinutesUsed,
			MinutesAvailable: e.Available(),
			Status:           string(e.Status),
			ExpiresAt:        e.ExpiresAt.Format(time.RFC3339),
			Description:      e.Description,
		})
	}

	response.Success(w, resp)
}
