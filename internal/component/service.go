package component

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
)

var errComponentNotFound = internal.NewNotFoundError("Component not found", internal.ErrCodeComponentNotFound)

type Service struct {
	store    storage.Store
	sessions SessionAPI
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(durable storage.Store, sessions SessionAPI, logger *slog.Logger) *Service {
	return &Service{
		store:    durable,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the whole catalog; a missing or malformed collection is an
// empty one.
func (s *Service) List(ctx context.Context) []Component {
	raw, ok, err := s.store.Get(ctx, storage.KeyComponents)
	if err != nil {
		s.logger.Error("failed to read components collection", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var list []Component
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("malformed components collection, treating as empty", "error", err)
		return nil
	}
	return list
}

func (s *Service) Get(ctx context.Context, id int64) (*Component, error) {
	for _, c := range s.List(ctx) {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, errComponentNotFound
}

func (s *Service) Create(ctx context.Context, dto ComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var createdBy int64
	if slot, err := s.sessions.Current(ctx); err == nil && slot != nil {
		createdBy = slot.Record.ID
	}

	now := s.now()
	rec := Component{
		ID:        now.UnixMilli(),
		Name:      dto.Name,
		Type:      dto.Type,
		Specs:     dto.Specs,
		Status:    dto.Status,
		CreatedBy: createdBy,
		CreatedAt: now,
	}

	list := append(s.List(ctx), rec)
	if err := s.persist(ctx, list); err != nil {
		return nil, err
	}
	s.logger.Info("component created", "component_id", rec.ID, "name", rec.Name)
	return &rec, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto ComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	list := s.List(ctx)
	for i := range list {
		if list[i].ID == id {
			list[i].Name = dto.Name
			list[i].Type = dto.Type
			list[i].Specs = dto.Specs
			list[i].Status = dto.Status
			if err := s.persist(ctx, list); err != nil {
				return nil, err
			}
			return &list[i], nil
		}
	}
	return nil, errComponentNotFound
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	list := s.List(ctx)
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.persist(ctx, list)
		}
	}
	return errComponentNotFound
}

func (s *Service) persist(ctx context.Context, list []Component) error {
	if list == nil {
		list = []Component{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serialize components collection: %w", err)
	}
	return s.store.Set(ctx, storage.KeyComponents, string(data))
}
