// service содержит бизнес-логику шлюза: валидацию входа, вызовы
// провайдеров, нормализацию ответов и сборку промптов для модели.
//
// Ошибки наружу — всегда *apierrors.Error (или обёртка над ним):
// HTTP-слой только сериализует их.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/x-assistant/internal/models"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service_mock.go -package=mocks

// SocialSource — провайдер соцданных. Ответы — декодированный сырой JSON.
type SocialSource interface {
	UserDetails(ctx context.Context, handle string) (any, error)
	UserTweets(ctx context.Context, handle string, count int, cursor string) (any, error)
	Ping(ctx context.Context) error
}

// LanguageModel — генеративная модель.
type LanguageModel interface {
	Generate(ctx context.Context, apiKey, prompt string) (models.Completion, error)
}

// Options — статические параметры сервиса из конфигурации.
type Options struct {
	// LanguageKey — серверный ключ модели; имеет приоритет над ключом из запроса.
	LanguageKey string
	Model       string
	// SocialConfigured — задан ли ключ провайдера соцданных.
	SocialConfigured bool

	Env     string
	AppURL  string
	Version string
}

// Service — описывает бизнес-логику шлюза.
type Service struct {
	social SocialSource
	lm     LanguageModel
	opts   Options

	now   func() time.Time
	newID func() string
}

// New создает новый экземпляр Service.
func New(social SocialSource, lm LanguageModel, opts Options) *Service {
	return &Service{
		social: social,
		lm:     lm,
		opts:   opts,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}
