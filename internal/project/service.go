package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
)

var errProjectNotFound = internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)

type Service struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(durable storage.Store, logger *slog.Logger) *Service {
	return &Service{store: durable, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context) []Project {
	raw, ok, err := s.store.Get(ctx, storage.KeyProjects)
	if err != nil {
		s.logger.Error("failed to read projects collection", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var list []Project
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("malformed projects collection, treating as empty", "error", err)
		return nil
	}
	return list
}

func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errProjectNotFound
}

func (s *Service) Create(ctx context.Context, dto ProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rec := Project{
		ID:          s.now().UnixMilli(),
		Name:        dto.Name,
		Description: dto.Description,
		Status:      dto.Status,
		Progress:    dto.Progress,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		Team:        dto.Team,
		Components:  dto.Components,
	}
	if rec.Team == nil {
		rec.Team = []int64{}
	}
	if rec.Components == nil {
		rec.Components = []int64{}
	}

	list := append(s.List(ctx), rec)
	if err := s.persist(ctx, list); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", rec.ID, "name", rec.Name)
	return &rec, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto ProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	list := s.List(ctx)
	for i := range list {
		if list[i].ID == id {
			list[i].Name = dto.Name
			list[i].Description = dto.Description
			list[i].Status = dto.Status
			list[i].Progress = dto.Progress
			list[i].StartDate = dto.StartDate
			list[i].EndDate = dto.EndDate
			if dto.Team != nil {
				list[i].Team = dto.Team
			}
			if dto.Components != nil {
				list[i].Components = dto.Components
			}
			if err := s.persist(ctx, list); err != nil {
				return nil, err
			}
			return &list[i], nil
		}
	}
	return nil, errProjectNotFound
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	list := s.List(ctx)
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.persist(ctx, list)
		}
	}
	return errProjectNotFound
}

func (s *Service) persist(ctx context.Context, list []Project) error {
	if list == nil {
		list = []Project{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serialize projects collection: %w", err)
	}
	return s.store.Set(ctx, storage.KeyProjects, string(data))
}
