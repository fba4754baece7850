package handler

import (
	"net/http"

	"algolearn/internal/app/service"
	"algolearn/internal/common"

	"github.com/go-chi/chi/v5"
)

type ModuleHandler struct {
	moduleService *service.ModuleService
}

func NewModuleHandler(ms *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: ms}
}

func (h *ModuleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listModules)
}

func (h *ModuleHandler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.moduleService.ListModules(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, modules)
}
