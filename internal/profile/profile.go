// Package profile mutates the current user's record: form fields and
// avatar. Every change is a dual write, directory first, then the live
// session copy.
package profile

import (
	"context"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
)

type DirectoryAPI interface {
	FindByID(ctx context.Context, id int64) (*directory.UserRecord, bool)
	Update(ctx context.Context, id int64, patch directory.Patch) error
}

type SessionAPI interface {
	Current(ctx context.Context) (*session.Slot, error)
	UpdateCurrent(ctx context.Context, patch directory.Patch) error
}

type ServiceAPI interface {
	UpdateProfile(ctx context.Context, dto UpdateProfileDTO) (*session.Record, error)
	ChangeAvatar(ctx context.Context, data []byte, contentType string) (*session.Record, error)
}

// UpdateProfileDTO carries the editable profile form fields.
type UpdateProfileDTO struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
	Bio        string `json:"bio"`
	Skills     string `json:"skills"`
}

func (d UpdateProfileDTO) Validate() error {
	if d.FirstName == "" || d.LastName == "" || d.Email == "" {
		return internal.NewValidationError("Please fill in all required fields")
	}
	return nil
}

func (d UpdateProfileDTO) patch() directory.Patch {
	return directory.Patch{
		FirstName:  &d.FirstName,
		LastName:   &d.LastName,
		Email:      &d.Email,
		Phone:      &d.Phone,
		JobTitle:   &d.JobTitle,
		Department: &d.Department,
		Bio:        &d.Bio,
		Skills:     &d.Skills,
	}
}
