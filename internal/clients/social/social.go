// social — REST-клиент провайдера соцданных (RapidAPI twitter-v24).
// Возвращает декодированный, но не нормализованный JSON: разбор форм
// ответа живёт в internal/normalize.
package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pribylovaa/x-assistant/internal/config"
	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/normalize"
)

// Provider — имя провайдера в сообщениях об ошибках.
const Provider = "Twitter"

// pingHandle — заведомо существующий аккаунт для проверки связи.
const pingHandle = "twitter"

const maxBody = 8 << 20

// ErrNotConfigured — ключ RapidAPI не задан.
var ErrNotConfigured = errors.New("social api key is not configured")

type Client struct {
	http    *http.Client
	baseURL string
	host    string
	apiKey  string
}

func New(hc *http.Client, cfg config.SocialConfig) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    cfg.Host,
		apiKey:  cfg.APIKey,
	}
}

// Configured сообщает, задан ли ключ провайдера.
func (c *Client) Configured() bool { return c.apiKey != "" }

// UserDetails — GET /user/details?username=.
func (c *Client) UserDetails(ctx context.Context, handle string) (any, error) {
	return c.get(ctx, "/user/details", url.Values{"username": {handle}})
}

// UserTweets — GET /user/tweets?username=&count=[&cursor=].
func (c *Client) UserTweets(ctx context.Context, handle string, count int, cursor string) (any, error) {
	q := url.Values{
		"username": {handle},
		"count":    {strconv.Itoa(count)},
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	return c.get(ctx, "/user/tweets", q)
}

// Ping проверяет ключ и доступность провайдера запросом профиля известного аккаунта.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.UserDetails(ctx, pingHandle)
	return err
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (any, error) {
	const op = "internal/clients/social/get"

	if !c.Configured() {
		return nil, apierrors.Internal("Twitter API not configured", ErrNotConfigured)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierrors.Timeout(err)
		}
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, apierrors.Upstream(Provider, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierrors.Timeout(err)
		}
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	raw, err := normalize.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return raw, nil
}
