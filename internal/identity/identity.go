// Package identity implements the auth flows: sign-up, sign-in,
// password-reset request and logout. It is the only owner of the write
// path to the user directory and the session manager.
package identity

import (
	"context"

	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
)

// DirectoryAPI is the slice of the user directory the auth flows need.
type DirectoryAPI interface {
	All(ctx context.Context) []directory.UserRecord
	FindByEmail(ctx context.Context, email string) (*directory.UserRecord, bool)
	FindByID(ctx context.Context, id int64) (*directory.UserRecord, bool)
	Insert(ctx context.Context, rec directory.UserRecord) error
	Update(ctx context.Context, id int64, patch directory.Patch) error
}

// SessionAPI is the session manager surface the auth flows drive.
type SessionAPI interface {
	Login(ctx context.Context, user directory.UserRecord, remember bool) error
	Current(ctx context.Context) (*session.Slot, error)
	IsAuthenticated(ctx context.Context) bool
	UpdateCurrent(ctx context.Context, patch directory.Patch) error
	Logout(ctx context.Context) error
}

// ServiceAPI is what the HTTP handler depends on.
type ServiceAPI interface {
	SignUp(ctx context.Context, dto SignUpDTO) (*session.Record, error)
	SignIn(ctx context.Context, dto SignInDTO) (*session.Record, error)
	RequestPasswordReset(ctx context.Context, dto ResetRequestDTO) error
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*session.Slot, error)
}
