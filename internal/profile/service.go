package profile

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
)

// MaxAvatarBytes caps avatar uploads at 2 MiB, matching the original
// client-side check.
const MaxAvatarBytes = 2 * 1024 * 1024

type Service struct {
	dir      DirectoryAPI
	sessions SessionAPI
	logger   *slog.Logger
}

func NewService(dir DirectoryAPI, sessions SessionAPI, logger *slog.Logger) *Service {
	return &Service{dir: dir, sessions: sessions, logger: logger}
}

// UpdateProfile patches the current user in the directory and then in the
// session. A session whose user id is gone from the directory surfaces
// here as UserNotFound; the two can desynchronize and that is detected
// only on the next mutating action, by contract.
func (s *Service) UpdateProfile(ctx context.Context, dto UpdateProfileDTO) (*session.Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	slot, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to read session", err)
	}
	if slot == nil {
		return nil, internal.ErrNotAuthenticated
	}

	if _, exists := s.dir.FindByID(ctx, slot.Record.ID); !exists {
		return nil, internal.ErrUserNotFound
	}

	return s.applyPatch(ctx, slot.Record.ID, dto.patch())
}

// ChangeAvatar validates the uploaded image and stores it as a data URI
// through the same dual-write path as the form fields.
func (s *Service) ChangeAvatar(ctx context.Context, data []byte, contentType string) (*session.Record, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, internal.NewValidationError("Please select an image file")
	}
	if len(data) > MaxAvatarBytes {
		return nil, internal.NewValidationError("Image size should be less than 2MB")
	}

	slot, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to read session", err)
	}
	if slot == nil {
		return nil, internal.ErrNotAuthenticated
	}

	if _, exists := s.dir.FindByID(ctx, slot.Record.ID); !exists {
		return nil, internal.ErrUserNotFound
	}

	uri := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	return s.applyPatch(ctx, slot.Record.ID, directory.Patch{Avatar: &uri})
}

func (s *Service) applyPatch(ctx context.Context, userID int64, patch directory.Patch) (*session.Record, error) {
	if err := s.dir.Update(ctx, userID, patch); err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateCurrent(ctx, patch); err != nil {
		return nil, internal.NewInternalError("failed to update session", err)
	}

	slot, err := s.sessions.Current(ctx)
	if err != nil || slot == nil {
		return nil, internal.NewInternalError("session lost after update", err)
	}
	s.logger.Info("profile updated", "user_id", userID)
	return &slot.Record, nil
}
