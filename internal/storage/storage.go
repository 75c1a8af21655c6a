// Package storage provides the record store: a flat key/value text store
// with two lifetimes. Durable records survive process restarts; ephemeral
// records are dropped when the process (the "browsing session") ends.
//
// There are no transactional guarantees. Two writers racing on the same
// key resolve to last-write-wins; that is the documented contract of the
// store, not a defect.
package storage

import "context"

// Scope selects which lifetime a record is written to.
type Scope int

const (
	Durable Scope = iota
	Ephemeral
)

func (s Scope) String() string {
	if s == Ephemeral {
		return "ephemeral"
	}
	return "durable"
}

// Well-known record keys. The whole persisted state of the application is
// a handful of serialized collections and preference strings under these.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyLoggedIn    = "isLoggedIn"
	KeyComponents  = "components"
	KeyProjects    = "projects"
	KeyTheme       = "theme"
	KeySystemName  = "systemName"
	KeyDateFormat  = "dateFormat"
)

// Store is a read/modify/write interface over a key/value text store.
// Get reports absence through its second return rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Scoped bundles the two lifetimes so components take one dependency and
// pick a scope per operation.
type Scoped struct {
	durable   Store
	ephemeral Store
}

func NewScoped(durable, ephemeral Store) *Scoped {
	return &Scoped{durable: durable, ephemeral: ephemeral}
}

func (s *Scoped) In(scope Scope) Store {
	if scope == Ephemeral {
		return s.ephemeral
	}
	return s.durable
}

func (s *Scoped) Durable() Store   { return s.durable }
func (s *Scoped) Ephemeral() Store { return s.ephemeral }
