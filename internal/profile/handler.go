package profile

import (
	"io"
	"net/http"

	"github.com/am3lue/ProjectManagementSystem/internal/transport"
	"github.com/am3lue/ProjectManagementSystem/pkg/logger"
)

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

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var dto UpdateProfileDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	rec, err := h.Service.UpdateProfile(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    rec,
		"message": "Profile updated successfully",
	})
}

// ChangeAvatar accepts a multipart upload under the "avatar" field. The
// read is capped slightly above the validation limit so oversized files
// still reach the size check and produce its message.
func (h *Handler) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxAvatarBytes + 1); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxAvatarBytes+1))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	rec, err := h.Service.ChangeAvatar(r.Context(), data, contentType)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    rec,
		"message": "Profile picture updated successfully",
	})
}
