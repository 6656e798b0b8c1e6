// language — REST-клиент генеративной модели (generateContent).
package language

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/x-assistant/internal/config"
	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
)

// Provider — имя провайдера в сообщениях об ошибках.
const Provider = "Gemini"

const maxBody = 4 << 20

var (
	// ErrNoKey — ключ не передан ни вызывающим, ни в конфигурации.
	ErrNoKey = errors.New("language api key is empty")
	// ErrEmptyReply — модель не вернула ни одного кандидата.
	ErrEmptyReply = errors.New("model returned no candidates")
)

type Client struct {
	http    *http.Client
	baseURL string
	model   string
}

func New(hc *http.Client, cfg config.LanguageConfig) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Model — имя модели, к которой обращается клиент.
func (c *Client) Model() string { return c.model }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Generate отправляет prompt одной репликой пользователя и возвращает
// склеенный текст первого кандидата и счётчики токенов.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (models.Completion, error) {
	const op = "internal/clients/language/Generate"

	if apiKey == "" {
		return models.Completion{}, fmt.Errorf("%s: %w", op, ErrNoKey)
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return models.Completion{}, fmt.Errorf("%s: marshal: %w", op, err)
	}

	endpoint := c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.Completion{}, fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Completion{}, apierrors.Timeout(err)
		}
		return models.Completion{}, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return models.Completion{}, apierrors.Upstream(Provider, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Completion{}, apierrors.Timeout(err)
		}
		return models.Completion{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return models.Completion{}, fmt.Errorf("%s: %w: blocked: %s", op, ErrEmptyReply, out.PromptFeedback.BlockReason)
		}
		return models.Completion{}, fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return models.Completion{
		Text: sb.String(),
		Usage: models.Usage{
			PromptTokens:    out.UsageMetadata.PromptTokenCount,
			CandidateTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:     out.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
