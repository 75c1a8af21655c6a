// Package component implements the hardware component catalog: flat
// records persisted as one JSON collection under the durable scope,
// matching the directory's read-modify-persist pattern.
package component

import (
	"context"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal/core/validation"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
)

// Known component types and statuses, as the catalog forms offer them.
var (
	Types    = []string{"magnetic-sensor", "microcontroller", "display", "power", "other"}
	Statuses = []string{"available", "in-use", "testing", "deprecated"}
)

type Component struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Specs     string    `json:"specs"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type ComponentDTO struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Specs  string `json:"specs"`
	Status string `json:"status"`
}

func (d ComponentDTO) Validate() error {
	return validation.New().
		Required("name", d.Name).
		OneOf("type", d.Type, Types...).
		OneOf("status", d.Status, Statuses...).
		Err()
}

type SessionAPI interface {
	Current(ctx context.Context) (*session.Slot, error)
}

type ServiceAPI interface {
	List(ctx context.Context) []Component
	Get(ctx context.Context, id int64) (*Component, error)
	Create(ctx context.Context, dto ComponentDTO) (*Component, error)
	Update(ctx context.Context, id int64, dto ComponentDTO) (*Component, error)
	Delete(ctx context.Context, id int64) error
}
