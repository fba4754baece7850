package handler

import (
	"net/http"
	"time"

	"algolearn/internal/app/service"
	"algolearn/internal/common"

	"github.com/go-chi/chi/v5"
)

type DailyChallengeHandler struct {
	dailyService *service.DailyService
}

func NewDailyChallengeHandler(ds *service.DailyService) *DailyChallengeHandler {
	return &DailyChallengeHandler{dailyService: ds}
}

func (h *DailyChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/daily-challenge", h.getDailyChallenge)
}

func (h *DailyChallengeHandler) getDailyChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.dailyService.GetOrCreate(r.Context(), time.Now())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}
