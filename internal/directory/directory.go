// Package directory holds the registered user records. The collection is
// persisted as a single JSON document under the durable "users" key; every
// mutation is a read-modify-persist over the whole list.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
)

// UserRecord is the authoritative account record. Passwords are stored in
// plaintext: the application preserves the original prototype's contract
// and is explicitly not a security design.
type UserRecord struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	Phone      string `json:"phone,omitempty"`
	JobTitle   string `json:"jobTitle,omitempty"`
	Department string `json:"department,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Avatar     string `json:"avatar,omitempty"`

	// Demo fallback data embedded at sign-up; not authoritative, the
	// component and project collections are.
	Components []EmbeddedComponent `json:"components"`
	Projects   []EmbeddedProject   `json:"projects"`
}

type EmbeddedComponent struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Specs  string `json:"specs"`
}

type EmbeddedProject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	DueDate     string `json:"dueDate"`
}

// Patch is a shallow field merge applied by Update. Nil fields are left
// untouched.
type Patch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	JobTitle   *string
	Department *string
	Bio        *string
	Skills     *string
	Avatar     *string
}

func (p Patch) Apply(rec *UserRecord) {
	if p.FirstName != nil {
		rec.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		rec.LastName = *p.LastName
	}
	if p.Email != nil {
		rec.Email = *p.Email
	}
	if p.Phone != nil {
		rec.Phone = *p.Phone
	}
	if p.JobTitle != nil {
		rec.JobTitle = *p.JobTitle
	}
	if p.Department != nil {
		rec.Department = *p.Department
	}
	if p.Bio != nil {
		rec.Bio = *p.Bio
	}
	if p.Skills != nil {
		rec.Skills = *p.Skills
	}
	if p.Avatar != nil {
		rec.Avatar = *p.Avatar
	}
}

// Directory is the read/write surface over the users collection. The
// identity core owns the write path; everything else only reads.
type Directory struct {
	store  storage.Store
	logger *slog.Logger
}

func New(durable storage.Store, logger *slog.Logger) *Directory {
	return &Directory{store: durable, logger: logger}
}

// All returns every registered user. A missing or malformed collection is
// treated as empty, never as an error.
func (d *Directory) All(ctx context.Context) []UserRecord {
	raw, ok, err := d.store.Get(ctx, storage.KeyUsers)
	if err != nil {
		d.logger.Error("failed to read users collection", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return decodeUsers(raw, d.logger)
}

// FindByEmail does a linear scan with case-sensitive exact equality and
// returns the first match.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*UserRecord, bool) {
	for _, u := range d.All(ctx) {
		if u.Email == email {
			return &u, true
		}
	}
	return nil, false
}

func (d *Directory) FindByID(ctx context.Context, id int64) (*UserRecord, bool) {
	for _, u := range d.All(ctx) {
		if u.ID == id {
			return &u, true
		}
	}
	return nil, false
}

// Insert appends the record. The unique-email invariant is the caller's
// responsibility: the store itself does not enforce it.
func (d *Directory) Insert(ctx context.Context, rec UserRecord) error {
	users := d.All(ctx)
	users = append(users, rec)
	return d.persist(ctx, users)
}

// Update shallow-merges the patch into the record with the given id.
// Returns ErrRecordNotFound when no record matches.
func (d *Directory) Update(ctx context.Context, id int64, patch Patch) error {
	users := d.All(ctx)
	for i := range users {
		if users[i].ID == id {
			patch.Apply(&users[i])
			return d.persist(ctx, users)
		}
	}
	return internal.ErrRecordNotFound
}

// persist is the only write primitive: the full collection is serialized
// and written back in one shot.
func (d *Directory) persist(ctx context.Context, users []UserRecord) error {
	if users == nil {
		users = []UserRecord{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("serialize users collection: %w", err)
	}
	return d.store.Set(ctx, storage.KeyUsers, string(data))
}

// decodeUsers strictly decodes the stored collection. Records of unknown
// shape (unexpected fields, missing identity fields) poison the whole
// document, which then falls back to empty per the silent-recovery policy.
func decodeUsers(raw string, logger *slog.Logger) []UserRecord {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var users []UserRecord
	if err := dec.Decode(&users); err != nil {
		logger.Warn("malformed users collection, treating as empty", "error", err)
		return nil
	}
	for _, u := range users {
		if u.ID == 0 || u.Email == "" {
			logger.Warn("users collection contains unknown-shape record, treating as empty")
			return nil
		}
	}
	return users
}
