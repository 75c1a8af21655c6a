package settings

import (
	"net/http"

	"github.com/am3lue/ProjectManagementSystem/internal/transport"
	"github.com/am3lue/ProjectManagementSystem/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.Get(r.Context()))
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var prefs Preferences
	if !h.DecodeJSON(w, r, &prefs) {
		return
	}

	if err := h.Service.Save(r.Context(), prefs); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
