package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// MatchSuggestionResponse is one candidate pairing returned by the resolver.
type MatchSuggestionResponse struct {
	LostItem       ItemResponse `json:"lost_item"`
	FoundItem      ItemResponse `json:"found_item"`
	Confidence     string       `json:"confidence"`
	SharedKeywords []string     `json:"shared_keywords"`
}

// GetItemMatchesHandler handles GET /items/{id}/matches requests.
type GetItemMatchesHandler struct {
	svc *appsvcs.Services
}

func NewGetItemMatchesHandler(svc *appsvcs.Services) *GetItemMatchesHandler {
	return &GetItemMatchesHandler{svc: svc}
}

// Execute returns probable counterpart reports for the item, best first.
func (h *GetItemMatchesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	suggestions, err := h.svc.Matches.Suggest(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]MatchSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, MatchSuggestionResponse{
			LostItem:       newItemResponse(s.LostItem),
			FoundItem:      newItemResponse(s.FoundItem),
			Confidence:     string(s.Confidence),
			SharedKeywords: s.SharedKeywords,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"matches": out})
}
