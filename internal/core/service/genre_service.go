package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type GenreService struct {
	repo   ports.GenreRepository
	audit  auditor
	logger zerolog.Logger
}

func NewGenreService(repo ports.GenreRepository, audit ports.AuditLog, logger zerolog.Logger) *GenreService {
	return &GenreService{repo: repo, audit: auditor{log: audit, logger: logger}, logger: logger}
}

func (s *GenreService) List(ctx context.Context, offset int) (*ports.Page[domain.Genre], error) {
	offset = clampOffset(offset)
	items, total, err := s.repo.List(ctx, offset)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return &ports.Page[domain.Genre]{Items: items, Total: total, Offset: offset}, nil
}

func (s *GenreService) Get(ctx context.Context, id uint) (*domain.Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GenreService) Create(ctx context.Context, payload form.GenrePayload) (*domain.Genre, error) {
	genre, err := form.SubmitGenre(domain.Genre{}, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &genre); err != nil {
		return nil, uniqueViolation(err, "name")
	}

	s.logger.Info().Uint("genre_id", genre.ID).Str("name", genre.Name).Msg("genre created")
	s.audit.record(ctx, domain.EntityGenre, genre.ID, domain.AuditCreated, genre.Name)
	return &genre, nil
}

func (s *GenreService) Update(ctx context.Context, genre *domain.Genre, payload form.GenrePayload) (*domain.Genre, error) {
	updated, err := form.SubmitGenre(*genre, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, uniqueViolation(err, "name")
	}

	s.logger.Info().Uint("genre_id", updated.ID).Msg("genre updated")
	s.audit.record(ctx, domain.EntityGenre, updated.ID, domain.AuditUpdated, updated.Name)
	return &updated, nil
}

func (s *GenreService) Delete(ctx context.Context, genre *domain.Genre) error {
	if err := s.repo.Delete(ctx, genre.ID); err != nil {
		return fmt.Errorf("delete genre %d: %w", genre.ID, err)
	}

	s.logger.Info().Uint("genre_id", genre.ID).Msg("genre deleted")
	s.audit.record(ctx, domain.EntityGenre, genre.ID, domain.AuditDeleted, genre.Name)
	return nil
}
