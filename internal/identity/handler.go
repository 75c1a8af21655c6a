package identity

import (
	"net/http"

	"github.com/am3lue/ProjectManagementSystem/internal/transport"
	"github.com/am3lue/ProjectManagementSystem/pkg/logger"
)

// WelcomePage is where a fresh session lands; auth pages bounce here when
// a session already exists.
const WelcomePage = "/welcome.html"

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

type authResponse struct {
	Success  bool        `json:"success"`
	User     interface{} `json:"user,omitempty"`
	Message  string      `json:"message,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	rec, err := h.Service.SignUp(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, authResponse{
		Success:  true,
		User:     rec,
		Message:  "Registration successful! Redirecting to welcome page...",
		Redirect: WelcomePage,
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	rec, err := h.Service.SignIn(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("sign-in rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, authResponse{
		Success:  true,
		User:     rec,
		Message:  "Login successful!",
		Redirect: WelcomePage,
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetRequestDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	if err := h.Service.RequestPasswordReset(r.Context(), dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	// The reset link is not actually sent anywhere; the message mirrors
	// the original flow's stub behavior.
	h.WriteJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Password reset link has been sent to your email address",
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context()); err != nil {
		h.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the current session, if any. Read-only; used by the
// view layers to render the logged-in user.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	slot, err := h.Service.CurrentSession(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if slot == nil {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"scope":         slot.Scope.String(),
		"user":          slot.Record,
	})
}
