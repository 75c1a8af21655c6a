package identity

import (
	"context"
	"log/slog"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/core/events"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
)

type Service struct {
	dir      DirectoryAPI
	sessions SessionAPI
	bus      *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(dir DirectoryAPI, sessions SessionAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		dir:      dir,
		sessions: sessions,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

// SignUp validates the form, enforces the unique-email invariant, creates
// the record and logs the new user straight in with a remembered session.
// Any failure leaves directory and session untouched.
func (s *Service) SignUp(ctx context.Context, dto SignUpDTO) (*session.Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, exists := s.dir.FindByEmail(ctx, dto.Email); exists {
		return nil, internal.ErrDuplicateEmail
	}

	now := s.now()
	rec := directory.UserRecord{
		// Millisecond timestamps double as ids, like the original records.
		ID:         now.UnixMilli(),
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Password:   dto.Password,
		Role:       "user",
		CreatedAt:  now,
		Components: []directory.EmbeddedComponent{},
		Projects:   []directory.EmbeddedProject{},
	}

	if err := s.dir.Insert(ctx, rec); err != nil {
		return nil, internal.NewInternalError("failed to save user", err)
	}

	// Auto login after signup, always remembered.
	if err := s.sessions.Login(ctx, rec, true); err != nil {
		return nil, internal.NewInternalError("failed to open session", err)
	}

	s.logger.Info("user registered", "user_id", rec.ID)
	s.bus.Publish(ctx, events.NewUserRegistered(rec.ID, rec.Email))

	out := session.FromUser(rec)
	return &out, nil
}

// SignIn checks the credentials against the directory with an exact
// string comparison, then places the session in the scope the remember
// choice selects.
func (s *Service) SignIn(ctx context.Context, dto SignInDTO) (*session.Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, exists := s.dir.FindByEmail(ctx, dto.Email)
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	if user.Password != dto.Password {
		return nil, internal.ErrInvalidCredentials
	}

	if err := s.sessions.Login(ctx, *user, dto.RememberMe); err != nil {
		return nil, internal.NewInternalError("failed to open session", err)
	}

	s.bus.Publish(ctx, events.NewUserSignedIn(user.ID, user.Email, dto.RememberMe))

	out := session.FromUser(*user)
	return &out, nil
}

// RequestPasswordReset confirms the account exists and nothing more. No
// reset link is generated or transmitted; the flow is a stub by contract.
func (s *Service) RequestPasswordReset(ctx context.Context, dto ResetRequestDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, exists := s.dir.FindByEmail(ctx, dto.Email); !exists {
		return internal.ErrUserNotFound
	}

	s.logger.Info("password reset requested, no delivery performed")
	return nil
}

// Logout clears the session from both scopes. Always succeeds.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Logout(ctx); err != nil {
		return internal.NewInternalError("failed to clear session", err)
	}
	s.bus.Publish(ctx, events.NewUserSignedOut())
	return nil
}

func (s *Service) CurrentSession(ctx context.Context) (*session.Slot, error) {
	return s.sessions.Current(ctx)
}
