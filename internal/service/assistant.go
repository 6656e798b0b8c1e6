package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/models"
	"github.com/pribylovaa/x-assistant/internal/normalize"
	"github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/pkg/redact"
	"github.com/pribylovaa/x-assistant/internal/validate"
)

const (
	// MaxAnalyzePosts — сколько постов уходит в один разбор стиля.
	MaxAnalyzePosts = 20
	// MaxMessageLen — предел длины сообщения чата (в рунах).
	MaxMessageLen = 2000

	msgProcess = "Failed to process request"
)

// Action — действие POST /gemini.
type Action string

const (
	ActionTest    Action = "test"
	ActionAnalyze Action = "analyze"
	ActionChat    Action = "chat"
)

// ParseAction проверяет действие запроса к модели.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionTest, ActionAnalyze, ActionChat:
		return a, nil
	default:
		return "", apierrors.Validation("Invalid action specified")
	}
}

// ResolveKey выбирает ключ модели: серверный ключ важнее присланного клиентом.
//
// Ошибки (Validation):
//   - "Gemini API key not configured" — ключа нет нигде;
//   - "Invalid API key format" — ключ короче validate.MinAPIKeyLen.
func (s *Service) ResolveKey(clientKey string) (string, error) {
	key := validate.SanitizeAPIKey(s.opts.LanguageKey)
	if key == "" {
		key = validate.SanitizeAPIKey(clientKey)
	}

	if key == "" {
		return "", apierrors.Validation("Gemini API key not configured")
	}
	if !validate.APIKeyFormat(key) {
		return "", apierrors.Validation("Invalid API key format")
	}

	return key, nil
}

// TestModel отправляет контрольный промпт; success — ответ содержит "OK".
func (s *Service) TestModel(ctx context.Context, key string) (models.ModelCheck, error) {
	const op = "service.assistant.TestModel"

	lg := log.From(ctx)

	out, err := s.lm.Generate(ctx, key, testPrompt)
	if err != nil {
		lg.Warn("model_test_failed", slog.String("op", op), slog.String("err", redact.Secrets(err.Error())))
		return models.ModelCheck{}, apierrors.Wrap(fmt.Errorf("%s: %w", op, err), msgProcess)
	}

	ok := strings.Contains(out.Text, "OK")
	lg.Info("model_test_ok", slog.String("op", op), slog.Bool("success", ok))

	return models.ModelCheck{Success: ok, Message: out.Text}, nil
}

// PrepareAnalysis проверяет тело analyze и готовит вход для модели.
//
// Ошибки (Validation):
//   - "Invalid analysis data" + details — нет постов, их больше
//     MaxAnalyzePosts, нет user или невалидный username;
//   - "No valid tweets to analyze" — после Sanitize не осталось текста.
func PrepareAnalysis(req models.AnalyzeRequest) (models.AnalyzeInput, error) {
	var details []string

	switch {
	case req.Tweets == nil:
		details = append(details, "Tweets array is required")
	case len(req.Tweets) == 0:
		details = append(details, "At least one tweet is required")
	case len(req.Tweets) > MaxAnalyzePosts:
		details = append(details, fmt.Sprintf("Maximum %d tweets allowed", MaxAnalyzePosts))
	}

	var username string
	if req.User == nil {
		details = append(details, "User object is required")
	} else {
		h, ok := validate.Handle(req.User.Username)
		if !ok {
			details = append(details, "Valid username is required")
		}
		username = h
	}

	if len(details) > 0 {
		return models.AnalyzeInput{}, apierrors.Validation("Invalid analysis data", details...)
	}

	texts := make([]string, 0, len(req.Tweets))
	for _, t := range req.Tweets {
		if s := validate.Sanitize(t.Text); s != "" {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return models.AnalyzeInput{}, apierrors.Validation("No valid tweets to analyze")
	}

	var followers int64
	if n, err := strconv.ParseInt(req.User.PublicMetrics.FollowersCount.String(), 10, 64); err == nil && n > 0 {
		followers = n
	}

	return models.AnalyzeInput{
		Texts:       texts,
		Name:        validate.Sanitize(req.User.Name),
		Username:    validate.Sanitize(username),
		Description: validate.Sanitize(req.User.Description),
		Followers:   followers,
	}, nil
}

// Analyze запрашивает у модели разбор стиля и разбирает JSON из ответа.
// Неразборчивый ответ — Parse "Failed to parse analysis response";
// сырой текст пишется в лог с вычищенными секретами.
func (s *Service) Analyze(ctx context.Context, key string, in models.AnalyzeInput) (models.StyleAnalysis, error) {
	const op = "service.assistant.Analyze"

	lg := log.From(ctx)

	prompt := analysisPrompt(in.Username, in.Name, in.Description, in.Followers, in.Texts)
	out, err := s.lm.Generate(ctx, key, prompt)
	if err != nil {
		lg.Warn("analysis_upstream_error", slog.String("op", op), slog.String("err", redact.Secrets(err.Error())))
		return models.StyleAnalysis{}, apierrors.Wrap(fmt.Errorf("%s: %w", op, err), msgProcess)
	}

	analysis, err := normalize.StyleAnalysis(out.Text)
	if err != nil {
		lg.Error("analysis_parse_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.String("raw", redact.Snippet(redact.Secrets(out.Text), 2000)),
		)
		return models.StyleAnalysis{}, apierrors.Parse("Failed to parse analysis response", fmt.Errorf("%s: %w", op, err))
	}

	lg.Info("analysis_ok",
		slog.String("op", op),
		slog.String("username", in.Username),
		slog.Int("tweets_analyzed", len(in.Texts)),
		slog.Int("score", analysis.Score),
	)

	return analysis, nil
}

// PrepareChat проверяет тело chat.
//
// Ошибки: "Invalid chat data" + details (нет сообщения, пусто после
// Sanitize, длиннее MaxMessageLen).
func PrepareChat(req models.ChatRequest) (models.ChatInput, error) {
	var details []string
	var msg string

	switch {
	case req.Message == nil || *req.Message == "":
		details = append(details, "Message is required")
	case utf8.RuneCountInString(*req.Message) > MaxMessageLen:
		details = append(details, fmt.Sprintf("Message too long (max %d characters)", MaxMessageLen))
	default:
		msg = validate.Sanitize(*req.Message)
		if msg == "" {
			details = append(details, "Message cannot be empty after sanitization")
		}
	}

	if len(details) > 0 {
		return models.ChatInput{}, apierrors.Validation("Invalid chat data", details...)
	}

	var chatCtx string
	if req.Context != nil {
		chatCtx = validate.Sanitize(*req.Context)
	}

	return models.ChatInput{Message: msg, Context: chatCtx}, nil
}

// Chat отправляет сообщение пользователя (с необязательным контекстом)
// и возвращает ответ модели со счётчиками токенов.
func (s *Service) Chat(ctx context.Context, key string, in models.ChatInput) (models.ChatReply, error) {
	const op = "service.assistant.Chat"

	lg := log.From(ctx)

	out, err := s.lm.Generate(ctx, key, chatPrompt(in.Message, in.Context))
	if err != nil {
		lg.Warn("chat_upstream_error", slog.String("op", op), slog.String("err", redact.Secrets(err.Error())))
		return models.ChatReply{}, apierrors.Wrap(fmt.Errorf("%s: %w", op, err), msgProcess)
	}

	lg.Info("chat_ok",
		slog.String("op", op),
		slog.Int("message_len", len(in.Message)),
		slog.Bool("has_context", in.Context != ""),
		slog.Int("total_tokens", out.Usage.TotalTokens),
	)

	return models.ChatReply{
		Content: out.Text,
		Usage:   out.Usage,
		Message: models.ChatMessage{
			ID:        s.newID(),
			Role:      "assistant",
			Content:   out.Text,
			Timestamp: s.now().UTC(),
		},
	}, nil
}

// ModelStatus — ответ GET /gemini.
func (s *Service) ModelStatus() models.ModelStatus {
	return models.ModelStatus{
		Status:     "Gemini API endpoint active",
		Configured: s.opts.LanguageKey != "",
		Model:      s.opts.Model,
		Version:    s.opts.Version,
		Timestamp:  s.now().UTC(),
	}
}
