package analytics

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

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.Summarize(r.Context()))
}
