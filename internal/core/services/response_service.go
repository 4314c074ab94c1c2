package services

import (
	"context"
	"fmt"

	"github.com/survey/api/internal/core/domain"
	"github.com/survey/api/internal/core/ports"
	"github.com/survey/api/internal/validation"
)

// recentLimit is the fixed window the dashboard shows.
const recentLimit = 5

type responseService struct {
	repo ports.ResponseRepository
}

func NewResponseService(repo ports.ResponseRepository) ports.ResponseService {
	return &responseService{
		repo: repo,
	}
}

// Submit stores a new survey response. The duplicate pre-check gives a
// friendly conflict without attempting the insert; the unique
// constraint on the email column remains the authoritative guard, since
// the pre-check and the insert are not atomic with each other.
func (s *responseService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Response, error) {
	email := validation.NormalizeEmail(input.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	return s.repo.Create(ctx, email, input.Motivation, input.FavoriteLanguage)
}

func (s *responseService) CheckEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, validation.NormalizeEmail(email))
}

func (s *responseService) GetByEmail(ctx context.Context, email string) (*domain.Response, error) {
	return s.repo.FindByEmail(ctx, validation.NormalizeEmail(email))
}

func (s *responseService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *responseService) Recent(ctx context.Context) ([]*domain.Response, error) {
	return s.repo.Recent(ctx, recentLimit)
}

func (s *responseService) Stats(ctx context.Context) ([]domain.LanguageStat, error) {
	return s.repo.LanguageStats(ctx)
}

func (s *responseService) ListAll(ctx context.Context) ([]*domain.Response, error) {
	return s.repo.FindAll(ctx)
}
