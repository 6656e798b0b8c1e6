// normalize переводит ответы провайдера соцданных (форма которых менялась
// от версии к версии) в фиксированные записи models.UserProfile и models.Post,
// извлекает курсор пагинации и разбирает ответ модели с анализом стиля.
//
// Формы ответа описаны упорядоченными списками матчеров: каждый матчер —
// чистая функция "сырое дерево -> найденный узел", первый сработавший побеждает.
// Внутри найденного узла значения полей берутся по цепочкам фолбэков:
// legacy-подобъект, затем внешний объект, затем альтернативные имена ключей.
package normalize

import (
	"github.com/pribylovaa/x-assistant/internal/models"
	"github.com/pribylovaa/x-assistant/internal/validate"
)

// userShape находит объект пользователя и его legacy-источник.
type userShape struct {
	name  string
	match func(root any) (user, legacy object, ok bool)
}

// userShapes — порядок важен.
var userShapes = []userShape{
	{name: "data.user.result", match: func(root any) (object, object, bool) {
		u, ok := objectAt(root, "data", "user", "result")
		if !ok {
			return nil, nil, false
		}

		l, _ := objectAt(u, "legacy")
		return u, l, true
	}},
	{name: "data.user", match: nestedUser("data", "user")},
	{name: "data", match: nestedUser("data")},
	{name: "user", match: nestedUser("user")},
	{name: "root", match: nestedUser()},
}

// nestedUser — матчер для плоских форм: legacy отсутствует — им служит сам объект.
func nestedUser(keys ...string) func(any) (object, object, bool) {
	return func(root any) (object, object, bool) {
		u, ok := objectAt(root, keys...)
		if !ok {
			return nil, nil, false
		}

		if l, ok := objectAt(u, "legacy"); ok {
			return u, l, true
		}

		return u, u, true
	}
}

// User нормализует профиль. Никогда не паникует: на непредвиденной форме
// возвращается пустой, но корректный профиль.
func User(raw any) (p models.UserProfile) {
	defer func() {
		if rec := recover(); rec != nil {
			p = models.UserProfile{}
		}
	}()

	for _, s := range userShapes {
		u, l, ok := s.match(raw)
		if !ok {
			continue
		}

		return userFrom(u, l)
	}

	return models.UserProfile{}
}

// userFrom — цепочки фолбэков по полям профиля.
func userFrom(u, l object) models.UserProfile {
	// Новые ответы GraphQL переносят имя и handle в core.
	core, _ := objectAt(u, "core")

	p := models.UserProfile{
		ID:               firstStr(get(u, "rest_id"), get(u, "id_str"), get(u, "id"), get(l, "id_str"), get(l, "id")),
		Name:             firstStr(get(l, "name"), get(u, "name"), get(core, "name"), get(l, "full_name"), get(u, "display_name")),
		Username:         firstStr(get(l, "screen_name"), get(u, "screen_name"), get(core, "screen_name"), get(u, "username")),
		Description:      firstStr(get(l, "description"), get(u, "description"), get(u, "bio")),
		ProfileImageURL:  firstStr(get(l, "profile_image_url_https"), get(l, "profile_image_url"), get(u, "profile_image_url"), at(u, "avatar", "image_url"), get(u, "avatar")),
		ProfileBannerURL: firstStr(get(l, "profile_banner_url"), get(u, "profile_banner_url"), get(u, "banner")),
		Protected:        firstBool(get(l, "protected"), get(u, "protected"), at(u, "privacy", "protected")),
		Verified:         firstBool(get(l, "verified"), get(u, "is_blue_verified"), get(u, "verified"), get(u, "is_verified")),
		PublicMetrics: models.UserMetrics{
			FollowersCount: firstCount(get(l, "followers_count"), get(u, "followers_count"), get(u, "followers"), at(u, "public_metrics", "followers_count")),
			FollowingCount: firstCount(get(l, "friends_count"), get(u, "friends_count"), get(u, "following_count"), get(u, "following"), at(u, "public_metrics", "following_count")),
			TweetCount:     firstCount(get(l, "statuses_count"), get(u, "statuses_count"), get(u, "tweet_count"), get(u, "tweets"), at(u, "public_metrics", "tweet_count")),
			ListedCount:    firstCount(get(l, "listed_count"), get(u, "listed_count"), at(u, "public_metrics", "listed_count")),
			LikeCount:      firstCount(get(l, "favourites_count"), get(u, "favourites_count"), get(u, "like_count"), get(u, "likes"), at(u, "public_metrics", "like_count")),
		},
		CreatedAt:     firstStr(get(l, "created_at"), get(u, "created_at"), get(core, "created_at")),
		Location:      firstStr(get(l, "location"), get(u, "location")),
		URL:           firstStr(get(l, "url"), get(u, "url")),
		PinnedTweetID: firstStr(firstElem(get(l, "pinned_tweet_ids_str")), get(u, "pinned_tweet_id")),
	}

	// Невалидный handle не отдаём наружу.
	if p.Username != "" {
		p.Username, _ = validate.Handle(p.Username)
	}

	return p
}

func firstElem(v any) any {
	if a, ok := asArray(v); ok && len(a) > 0 {
		return a[0]
	}

	return nil
}
