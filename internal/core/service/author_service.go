package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

type AuthorService struct {
	repo   ports.AuthorRepository
	audit  auditor
	logger zerolog.Logger
}

func NewAuthorService(repo ports.AuthorRepository, audit ports.AuditLog, logger zerolog.Logger) *AuthorService {
	return &AuthorService{repo: repo, audit: auditor{log: audit, logger: logger}, logger: logger}
}

func (s *AuthorService) List(ctx context.Context, offset int) (*ports.Page[domain.Author], error) {
	offset = clampOffset(offset)
	items, total, err := s.repo.List(ctx, offset)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return &ports.Page[domain.Author]{Items: items, Total: total, Offset: offset}, nil
}

func (s *AuthorService) Get(ctx context.Context, id uint) (*domain.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthorService) Create(ctx context.Context, payload form.AuthorPayload) (*domain.Author, error) {
	author, err := form.SubmitAuthor(domain.Author{}, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &author); err != nil {
		return nil, uniqueViolation(err, "name")
	}

	s.logger.Info().Uint("author_id", author.ID).Str("name", author.Name).Msg("author created")
	s.audit.record(ctx, domain.EntityAuthor, author.ID, domain.AuditCreated, author.Name)
	return &author, nil
}

func (s *AuthorService) Update(ctx context.Context, author *domain.Author, payload form.AuthorPayload) (*domain.Author, error) {
	updated, err := form.SubmitAuthor(*author, payload)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, uniqueViolation(err, "name")
	}

	s.logger.Info().Uint("author_id", updated.ID).Msg("author updated")
	s.audit.record(ctx, domain.EntityAuthor, updated.ID, domain.AuditUpdated, updated.Name)
	return &updated, nil
}

func (s *AuthorService) Delete(ctx context.Context, author *domain.Author) error {
	if err := s.repo.Delete(ctx, author.ID); err != nil {
		return fmt.Errorf("delete author %d: %w", author.ID, err)
	}

	s.logger.Info().Uint("author_id", author.ID).Msg("author deleted")
	s.audit.record(ctx, domain.EntityAuthor, author.ID, domain.AuditDeleted, author.Name)
	return nil
}
