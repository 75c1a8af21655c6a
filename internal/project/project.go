// Package project implements the project tracker behind /api/projects.
package project

import (
	"context"

	"github.com/am3lue/ProjectManagementSystem/internal/core/validation"
)

var Statuses = []string{"planning", "in-progress", "on-hold", "completed"}

// Project is the record behind the project list and detail views. Team
// and component membership are id references into the user directory and
// the component catalog.
type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Progress    int     `json:"progress"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Team        []int64 `json:"team"`
	Components  []int64 `json:"components"`
}

type ProjectDTO struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Progress    int     `json:"progress"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Team        []int64 `json:"team"`
	Components  []int64 `json:"components"`
}

func (d ProjectDTO) Validate() error {
	return validation.New().
		Required("name", d.Name).
		OneOf("status", d.Status, Statuses...).
		Range("progress", d.Progress, 0, 100).
		Err()
}

type ServiceAPI interface {
	List(ctx context.Context) []Project
	Get(ctx context.Context, id int64) (*Project, error)
	Create(ctx context.Context, dto ProjectDTO) (*Project, error)
	Update(ctx context.Context, id int64, dto ProjectDTO) (*Project, error)
	Delete(ctx context.Context, id int64) error
}
