package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/x-assistant/internal/config"
	"github.com/pribylovaa/x-assistant/internal/http/handlers"
	"github.com/pribylovaa/x-assistant/internal/http/middleware"
	"github.com/pribylovaa/x-assistant/internal/ratelimit"
	"github.com/pribylovaa/x-assistant/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.

	Limiter      ratelimit.Limiter
	Limits       config.RateLimitConfig
	Secret       string // bearer-секрет изменяющих маршрутов /config
	MaxBodyBytes int64
	// TrustForwarded — брать адрес клиента из X-Forwarded-For / X-Real-IP.
	TrustForwarded bool
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
//
// Внешний слой (recover, request id, логирование) не зависит от chi и
// оборачивает весь роутер, поэтому покрывает и ответы самого chi (404/405).
// Метрикам нужен шаблон маршрута, поэтому они подключаются внутри chi.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	root.Use(
		middleware.Metrics(),
		middleware.BodyLimit(opts.MaxBodyBytes),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts)
		root.Mount(opts.BasePath, sub)
	} else {
		registerRoutes(root, h, opts)
	}

	// Порядок: внешний -> внутренний.
	return middleware.Chain(root,
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Порядок на маршруте: лимит -> авторизация -> обработчик.
func registerRoutes(r chi.Router, h *handlers.Handlers, opts Options) {
	l := opts.Limits
	limit := func(scope string, max int, window time.Duration) func(http.Handler) http.Handler {
		return middleware.RateLimit(opts.Limiter, scope, max, window, opts.TrustForwarded)
	}
	auth := middleware.RequireBearer(opts.Secret)

	// social
	r.With(limit("api", l.APIMax, l.APIWindow)).Get("/twitter/user", h.GetUser)
	r.With(limit("api", l.APIMax, l.APIWindow)).Get("/twitter/tweets", h.GetTweets)
	r.With(limit("api", l.APIMax, l.APIWindow)).Get("/twitter/test", h.TestSocial)

	// assistant
	r.Get("/gemini", h.ModelStatus)
	r.With(limit("assistant", l.AssistantMax, l.AssistantWindow)).Post("/gemini", h.Assist)

	// settings
	r.With(limit("config_read", l.ConfigMax*2, l.ConfigWindow)).Get("/config", h.GetConfig)
	r.With(limit("config", l.ConfigMax, l.ConfigWindow), auth).Post("/config", h.SaveConfig)
	r.With(limit("config", l.ConfigMax, l.ConfigWindow), auth).Put("/config", h.PatchConfig)
	r.With(limit("config_delete", l.DeleteMax, l.ConfigWindow), auth).Delete("/config", h.ClearConfig)
}
