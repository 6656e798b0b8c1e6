package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pribylovaa/x-assistant/internal/clients/language"
	"github.com/pribylovaa/x-assistant/internal/clients/social"
	"github.com/pribylovaa/x-assistant/internal/clients/transport"
	"github.com/pribylovaa/x-assistant/internal/config"

	"golang.org/x/time/rate"
)

const userAgent = "x-assistant"

// Clients агрегирует REST-клиенты провайдеров.
type Clients struct {
	Social   *social.Client
	Language *language.Client

	base *http.Transport
}

// New собирает клиенты поверх общего пула соединений.
// У каждого провайдера своя цепочка и свой троттлинг.
func New(cfg config.Config, log *slog.Logger) (*Clients, error) {
	const op = "internal/clients/New"

	for name, raw := range map[string]string{"social": cfg.Social.BaseURL, "language": cfg.Language.BaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%s: %s base url %q is invalid", op, name, raw)
		}
	}

	base := http.DefaultTransport.(*http.Transport).Clone()

	// Цепочка: metadata -> timeout -> logging -> metrics -> throttle.
	chain := func(provider string, rps float64, burst int) *http.Client {
		var lim *rate.Limiter
		if rps > 0 {
			lim = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}

		return &http.Client{
			Transport: transport.Chain(base,
				transport.Metadata(userAgent),
				transport.Timeout(cfg.Timeouts.Upstream),
				transport.Logging(log, provider),
				transport.Metrics(provider),
				transport.Throttle(lim),
			),
		}
	}

	return &Clients{
		Social:   social.New(chain("social", cfg.Social.RPS, cfg.Social.Burst), cfg.Social),
		Language: language.New(chain("language", cfg.Language.RPS, cfg.Language.Burst), cfg.Language),
		base:     base,
	}, nil
}

// Close освобождает простаивающие соединения.
func (c *Clients) Close() error {
	if c == nil || c.base == nil {
		return nil
	}

	c.base.CloseIdleConnections()
	return nil
}
