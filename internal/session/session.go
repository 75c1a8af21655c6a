// Package session tracks who is logged in right now. Exactly one session
// is active at a time; it lives in the durable scope when the user asked
// to be remembered and in the ephemeral scope otherwise.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
)

// Record is the logged-in user's public profile: a copy of the directory
// record with the password stripped. It is never persisted as its own
// entity, only under the currentUser key.
type Record struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	Phone      string `json:"phone,omitempty"`
	JobTitle   string `json:"jobTitle,omitempty"`
	Department string `json:"department,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Avatar     string `json:"avatar,omitempty"`

	Components []directory.EmbeddedComponent `json:"components"`
	Projects   []directory.EmbeddedProject   `json:"projects"`
}

// FromUser builds the session copy of a directory record, dropping the
// password.
func FromUser(u directory.UserRecord) Record {
	return Record{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		Phone:      u.Phone,
		JobTitle:   u.JobTitle,
		Department: u.Department,
		Bio:        u.Bio,
		Skills:     u.Skills,
		Avatar:     u.Avatar,
		Components: u.Components,
		Projects:   u.Projects,
	}
}

func (r *Record) apply(p directory.Patch) {
	if p.FirstName != nil {
		r.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		r.LastName = *p.LastName
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.JobTitle != nil {
		r.JobTitle = *p.JobTitle
	}
	if p.Department != nil {
		r.Department = *p.Department
	}
	if p.Bio != nil {
		r.Bio = *p.Bio
	}
	if p.Skills != nil {
		r.Skills = *p.Skills
	}
	if p.Avatar != nil {
		r.Avatar = *p.Avatar
	}
}

// Slot names which scope holds the active session. The durable scope wins
// when both are somehow populated; the lookup order is the contract, not
// an accident of code order.
type Slot struct {
	Scope  storage.Scope
	Record Record
}

// Manager owns the currentUser/isLoggedIn pair in both scopes.
type Manager struct {
	stores *storage.Scoped
	logger *slog.Logger
}

func NewManager(stores *storage.Scoped, logger *slog.Logger) *Manager {
	return &Manager{stores: stores, logger: logger}
}

// Login writes the password-stripped session record and the logged-in
// flag to the scope the remember choice selects.
func (m *Manager) Login(ctx context.Context, user directory.UserRecord, remember bool) error {
	scope := storage.Ephemeral
	if remember {
		scope = storage.Durable
	}

	rec := FromUser(user)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}

	store := m.stores.In(scope)
	if err := store.Set(ctx, storage.KeyCurrentUser, string(data)); err != nil {
		return err
	}
	if err := store.Set(ctx, storage.KeyLoggedIn, "true"); err != nil {
		return err
	}

	m.logger.Info("session opened", "user_id", user.ID, "scope", scope.String())
	return nil
}

// Current returns the active session slot, durable scope first. A nil
// slot means no session.
func (m *Manager) Current(ctx context.Context) (*Slot, error) {
	for _, scope := range []storage.Scope{storage.Durable, storage.Ephemeral} {
		raw, ok, err := m.stores.In(scope).Get(ctx, storage.KeyCurrentUser)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			m.logger.Warn("malformed session record, ignoring", "scope", scope.String(), "error", err)
			continue
		}
		return &Slot{Scope: scope, Record: rec}, nil
	}
	return nil, nil
}

// IsAuthenticated reports whether either scope's logged-in flag is set.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	for _, scope := range []storage.Scope{storage.Durable, storage.Ephemeral} {
		flag, ok, err := m.stores.In(scope).Get(ctx, storage.KeyLoggedIn)
		if err != nil {
			m.logger.Error("failed to read login flag", "scope", scope.String(), "error", err)
			continue
		}
		if ok && flag == "true" {
			return true
		}
	}
	return false
}

// UpdateCurrent merges the patch into whichever scope holds the active
// session and rewrites it there.
func (m *Manager) UpdateCurrent(ctx context.Context, patch directory.Patch) error {
	slot, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if slot == nil {
		return nil
	}

	slot.Record.apply(patch)
	data, err := json.Marshal(slot.Record)
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}
	return m.stores.In(slot.Scope).Set(ctx, storage.KeyCurrentUser, string(data))
}

// Logout clears the session record and flag from both scopes. Idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	for _, scope := range []storage.Scope{storage.Durable, storage.Ephemeral} {
		store := m.stores.In(scope)
		if err := store.Delete(ctx, storage.KeyCurrentUser); err != nil {
			return err
		}
		if err := store.Delete(ctx, storage.KeyLoggedIn); err != nil {
			return err
		}
	}
	m.logger.Info("session cleared")
	return nil
}
