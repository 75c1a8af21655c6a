// Package analytics aggregates the project and component collections for
// the dashboard charts. Read-only; rendering stays client-side.
package analytics

import (
	"context"

	"github.com/am3lue/ProjectManagementSystem/internal/component"
	"github.com/am3lue/ProjectManagementSystem/internal/project"
)

type ProjectSource interface {
	List(ctx context.Context) []project.Project
}

type ComponentSource interface {
	List(ctx context.Context) []component.Component
}

type Summary struct {
	TotalProjects      int            `json:"total_projects"`
	ProjectsByStatus   map[string]int `json:"projects_by_status"`
	AverageProgress    float64        `json:"average_progress"`
	TotalComponents    int            `json:"total_components"`
	ComponentsByStatus map[string]int `json:"components_by_status"`
	ComponentsByType   map[string]int `json:"components_by_type"`
}

type Service struct {
	projects   ProjectSource
	components ComponentSource
}

func NewService(projects ProjectSource, components ComponentSource) *Service {
	return &Service{projects: projects, components: components}
}

func (s *Service) Summarize(ctx context.Context) Summary {
	out := Summary{
		ProjectsByStatus:   make(map[string]int),
		ComponentsByStatus: make(map[string]int),
		ComponentsByType:   make(map[string]int),
	}

	projects := s.projects.List(ctx)
	out.TotalProjects = len(projects)
	var progressSum int
	for _, p := range projects {
		out.ProjectsByStatus[p.Status]++
		progressSum += p.Progress
	}
	if len(projects) > 0 {
		out.AverageProgress = float64(progressSum) / float64(len(projects))
	}

	components := s.components.List(ctx)
	out.TotalComponents = len(components)
	for _, c := range components {
		out.ComponentsByStatus[c.Status]++
		out.ComponentsByType[c.Type]++
	}

	return out
}
