package ports

import (
	"context"

	"github.com/survey/api/internal/core/domain"
)

type ResponseRepository interface {
	Create(ctx context.Context, email string, motivation *string, favoriteLanguage string) (*domain.Response, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]*domain.Response, error)
	LanguageStats(ctx context.Context) ([]domain.LanguageStat, error)
	FindByEmail(ctx context.Context, email string) (*domain.Response, error)
	FindAll(ctx context.Context) ([]*domain.Response, error)
}

type SubmitInput struct {
	Email            string
	Motivation       *string
	FavoriteLanguage string
}

type ResponseService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Response, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.Response, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context) ([]*domain.Response, error)
	Stats(ctx context.Context) ([]domain.LanguageStat, error)
	ListAll(ctx context.Context) ([]*domain.Response, error)
}
