package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"meetroom/internal/config"
	"meetroom/internal/models"
	"meetroom/internal/repo"
)

type RoomService interface {
	List(ctx context.Context) ([]models.Room, error)
	GetBySlug(ctx context.Context, slug string) (*models.Room, error)
	// Seed creates the rooms of the static registry that are missing and
	// backfills the color on rooms created before the palette existed.
	Seed(ctx context.Context) error
}

type roomService struct {
	rooms  repo.RoomRepo
	logger *zap.Logger
}

func NewRoomService(r repo.RoomRepo, logger *zap.Logger) RoomService {
	return &roomService{rooms: r, logger: logger}
}

func (s *roomService) List(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}

func (s *roomService) GetBySlug(ctx context.Context, slug string) (*models.Room, error) {
	if !config.ValidRoomSlug(slug) {
		return nil, repo.ErrNotFound
	}
	return s.rooms.GetBySlug(ctx, slug)
}

func (s *roomService) Seed(ctx context.Context) error {
	for _, rc := range config.Rooms {
		existing, err := s.rooms.GetBySlug(ctx, rc.Slug)
		if errors.Is(err, repo.ErrNotFound) {
			room := &models.Room{
				Slug:        rc.Slug,
				Name:        rc.Name,
				Description: rc.Description,
				Color:       rc.Color,
			}
			if err := s.rooms.Create(ctx, room); err != nil {
				return err
			}
			s.logger.Info("created room",
				zap.String("slug", rc.Slug), zap.String("color", string(rc.Color)))
			continue
		}
		if err != nil {
			return err
		}
		if existing.Color == "" {
			if err := s.rooms.UpdateColor(ctx, existing.ID, rc.Color); err != nil {
				return err
			}
			s.logger.Info("backfilled room color",
				zap.String("slug", rc.Slug), zap.String("color", string(rc.Color)))
		}
	}
	return nil
}
