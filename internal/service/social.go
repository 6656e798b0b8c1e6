package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apierrors "github.com/pribylovaa/x-assistant/internal/errors"
	"github.com/pribylovaa/x-assistant/internal/metrics"
	"github.com/pribylovaa/x-assistant/internal/models"
	"github.com/pribylovaa/x-assistant/internal/normalize"
	"github.com/pribylovaa/x-assistant/internal/pkg/log"
	"github.com/pribylovaa/x-assistant/internal/validate"
)

const (
	msgInvalidUsername = "Invalid username parameter"
	msgFetchUser       = "Failed to fetch user data"
	msgFetchTweets     = "Failed to fetch tweets"

	// MaxWalkPages — предел страниц за один проход Walk.
	MaxWalkPages = 5
)

// TimelineQuery — параметры ленты постов.
type TimelineQuery struct {
	Handle string
	Count  int
	Cursor string
}

// Profile возвращает нормализованный профиль по handle.
//
// Ошибки:
//   - Validation — handle не проходит проверку;
//   - ошибки провайдера — как вернул клиент (Upstream/Timeout/Internal);
//   - прочее — Internal "Failed to fetch user data".
func (s *Service) Profile(ctx context.Context, handle string) (models.UserProfile, error) {
	const op = "service.social.Profile"

	h, ok := validate.Handle(handle)
	if !ok {
		return models.UserProfile{}, apierrors.Validation(msgInvalidUsername)
	}

	lg := log.From(ctx)
	lg.Debug("profile_request", slog.String("op", op), slog.String("username", h))

	raw, err := s.social.UserDetails(ctx, h)
	if err != nil {
		lg.Warn("profile_upstream_error", slog.String("op", op), slog.String("err", err.Error()))
		return models.UserProfile{}, apierrors.Wrap(fmt.Errorf("%s: %w", op, err), msgFetchUser)
	}

	p := normalize.User(raw)
	lg.Info("profile_ok", slog.String("op", op), slog.String("username", h), slog.Bool("found", p.ID != ""))

	return p, nil
}

// Timeline возвращает страницу постов и профиль автора.
//
// Посты и профиль запрашиваются параллельно. Сбой профиля только логируется:
// посты возвращаются без поля user. hasMore = курсор есть && страница не пуста.
func (s *Service) Timeline(ctx context.Context, q TimelineQuery) (models.Timeline, error) {
	const op = "service.social.Timeline"

	h, ok := validate.Handle(q.Handle)
	if !ok {
		return models.Timeline{}, apierrors.Validation(msgInvalidUsername)
	}
	count, cursor := validate.Pagination(q.Count, q.Cursor)

	lg := log.From(ctx)
	lg.Debug("timeline_request",
		slog.String("op", op),
		slog.String("username", h),
		slog.Int("count", count),
		slog.Bool("has_cursor", cursor != ""),
	)

	var (
		raw     any
		profile *models.UserProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.social.UserTweets(gctx, h, count, cursor)
		return err
	})
	g.Go(func() error {
		u, err := s.social.UserDetails(gctx, h)
		if err != nil {
			lg.Warn("timeline_profile_failed", slog.String("op", op), slog.String("err", err.Error()))
			return nil
		}
		p := normalize.User(u)
		profile = &p
		return nil
	})

	if err := g.Wait(); err != nil {
		lg.Warn("timeline_upstream_error", slog.String("op", op), slog.String("err", err.Error()))
		return models.Timeline{}, apierrors.Wrap(fmt.Errorf("%s: %w", op, err), msgFetchTweets)
	}

	page := s.page(ctx, raw)
	page.User = profile

	lg.Info("timeline_ok",
		slog.String("op", op),
		slog.String("username", h),
		slog.Int("items", len(page.Tweets)),
		slog.Bool("has_more", page.HasMore),
	)

	return page, nil
}

// Walk проходит по курсорам до pages страниц (не больше MaxWalkPages)
// и склеивает посты. Останавливается на пустой странице, на отсутствующем
// или повторном курсоре. Ошибка на странице после первой не теряет уже
// собранное: возвращается накопленное с курсором, на котором случился сбой.
func (s *Service) Walk(ctx context.Context, q TimelineQuery, pages int) (models.Timeline, error) {
	const op = "service.social.Walk"

	pages = min(max(pages, 1), MaxWalkPages)

	out, err := s.Timeline(ctx, q)
	if err != nil || pages == 1 || !out.HasMore {
		return out, err
	}

	lg := log.From(ctx)
	h, _ := validate.Handle(q.Handle)
	count, _ := validate.Pagination(q.Count, "")
	seen := map[string]struct{}{q.Cursor: {}}

	for i := 1; i < pages && out.HasMore; i++ {
		cursor := *out.NextCursor
		if _, dup := seen[cursor]; dup {
			lg.Debug("walk_repeated_cursor", slog.String("op", op), slog.Int("page", i+1))
			out.HasMore = false
			break
		}
		seen[cursor] = struct{}{}

		raw, err := s.social.UserTweets(ctx, h, count, cursor)
		if err != nil {
			lg.Warn("walk_page_failed",
				slog.String("op", op),
				slog.Int("page", i+1),
				slog.String("err", err.Error()),
			)
			break
		}

		next := s.page(ctx, raw)
		out.Tweets = append(out.Tweets, next.Tweets...)
		out.NextCursor = next.NextCursor
		out.HasMore = next.HasMore
	}

	lg.Info("walk_ok",
		slog.String("op", op),
		slog.String("username", h),
		slog.Int("items", len(out.Tweets)),
		slog.Bool("has_more", out.HasMore),
	)

	return out, nil
}

// page нормализует одну страницу ленты.
func (s *Service) page(ctx context.Context, raw any) models.Timeline {
	posts, skipped := normalize.Posts(raw)
	if len(skipped) > 0 {
		metrics.SkippedPosts(len(skipped))
		for _, sp := range skipped {
			log.From(ctx).Debug("post_skipped", slog.Int("index", sp.Index), slog.String("reason", sp.Reason))
		}
	}

	t := models.Timeline{Tweets: posts}
	if c, ok := normalize.Cursor(raw); ok {
		t.NextCursor = &c
		t.HasMore = len(posts) > 0
	}

	return t
}

// CheckSocial проверяет связь с провайдером соцданных.
// Не-2xx провайдера отдаётся с его статусом и сообщением "API connection failed".
func (s *Service) CheckSocial(ctx context.Context) error {
	const op = "service.social.CheckSocial"

	lg := log.From(ctx)

	err := s.social.Ping(ctx)
	if err == nil {
		lg.Info("social_check_ok", slog.String("op", op))
		return nil
	}

	lg.Warn("social_check_failed", slog.String("op", op), slog.String("err", err.Error()))

	if e, ok := apierrors.As(err); ok && e.Kind == apierrors.KindUpstream {
		failed := *e
		failed.Message = "API connection failed"
		return &failed
	}

	return apierrors.Wrap(fmt.Errorf("%s: %w", op, err), "Connection test failed")
}
