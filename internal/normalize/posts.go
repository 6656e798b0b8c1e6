package normalize

import (
	"fmt"

	"github.com/pribylovaa/x-assistant/internal/models"
)

const (
	instrAddEntries   = "TimelineAddEntries"
	instrReplaceEntry = "TimelineReplaceEntry"
	entryItem         = "TimelineTimelineItem"
	entryCursor       = "TimelineTimelineCursor"
)

// postShape находит список сырых постов.
// ok=true означает "форма распознана", даже если список пуст.
type postShape struct {
	name  string
	match func(root any) (items []any, ok bool)
}

// postShapes — порядок важен.
var postShapes = []postShape{
	{name: "timeline", match: timelineItems("timeline")},
	{name: "timeline_v2", match: timelineItems("timeline_v2")},
	{name: "data.tweets", match: func(root any) ([]any, bool) { return arrayAt(root, "data", "tweets") }},
	{name: "tweets", match: func(root any) ([]any, bool) { return arrayAt(root, "tweets") }},
	{name: "data[]", match: func(root any) ([]any, bool) { return arrayAt(root, "data") }},
}

// SkippedPost описывает элемент, который не удалось превратить в пост.
type SkippedPost struct {
	Index  int
	Reason string
}

// Posts нормализует список постов. Сбой на отдельном элементе не роняет
// всю страницу: элемент пропускается и попадает в skipped.
// Нераспознанная форма даёт пустой список.
func Posts(raw any) (posts []models.Post, skipped []SkippedPost) {
	items := rawPosts(raw)
	posts = make([]models.Post, 0, len(items))

	for i, item := range items {
		p, err := safePost(item, i)
		if err != nil {
			skipped = append(skipped, SkippedPost{Index: i, Reason: err.Error()})
			continue
		}
		posts = append(posts, p)
	}

	return posts, skipped
}

func rawPosts(raw any) []any {
	for _, s := range postShapes {
		if items, ok := s.match(raw); ok {
			return items
		}
	}

	return nil
}

// timelineItems — data.user.result.<key>.timeline.instructions[]:
// первая инструкция TimelineAddEntries, из неё записи-элементы с результатом поста.
func timelineItems(key string) func(any) ([]any, bool) {
	return func(root any) ([]any, bool) {
		tl, ok := objectAt(root, "data", "user", "result", key, "timeline")
		if !ok {
			return nil, false
		}

		var out []any
		for _, e := range addEntries(tl) {
			if str(at(e, "content", "entryType")) != entryItem {
				continue
			}

			res := at(e, "content", "itemContent", "tweet_results", "result")
			if !truthy(res) {
				continue
			}
			out = append(out, unwrapResult(res))
		}

		return out, true
	}
}

// addEntries — записи первой инструкции TimelineAddEntries.
func addEntries(tl object) []any {
	instructions, _ := arrayAt(tl, "instructions")
	for _, inst := range instructions {
		if str(at(inst, "type")) != instrAddEntries {
			continue
		}

		entries, _ := arrayAt(inst, "entries")
		return entries
	}

	return nil
}

// unwrapResult снимает обёртку TweetWithVisibilityResults.
func unwrapResult(v any) any {
	if str(at(v, "__typename")) == "TweetWithVisibilityResults" {
		if inner, ok := objectAt(v, "tweet"); ok {
			return inner
		}
	}

	return v
}

// safePost — post с изоляцией паники на уровне одного элемента.
func safePost(item any, index int) (p models.Post, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	return post(item, index)
}

func post(item any, index int) (models.Post, error) {
	t, ok := asObject(item)
	if !ok {
		return models.Post{}, fmt.Errorf("item is %T, not an object", item)
	}

	l, ok := objectAt(t, "legacy")
	if !ok {
		l = t
	}
	pm, _ := objectAt(t, "public_metrics")

	id := firstStr(get(t, "rest_id"), get(t, "id_str"), get(t, "id"))
	if id == "" {
		id = fmt.Sprintf("temp_%d", index)
	}

	return models.Post{
		ID:        id,
		Text:      firstStr(get(l, "full_text"), get(l, "text")),
		CreatedAt: firstStr(get(l, "created_at"), get(t, "created_at")),
		AuthorID:  firstStr(get(l, "user_id_str"), get(t, "user_id"), get(t, "author_id")),
		PublicMetrics: models.PostMetrics{
			RetweetCount:    firstCount(get(l, "retweet_count"), get(t, "retweet_count"), get(pm, "retweet_count")),
			LikeCount:       firstCount(get(l, "favorite_count"), get(t, "favorite_count"), get(t, "like_count"), get(pm, "like_count")),
			ReplyCount:      firstCount(get(l, "reply_count"), get(t, "reply_count"), get(pm, "reply_count")),
			QuoteCount:      firstCount(get(l, "quote_count"), get(t, "quote_count"), get(pm, "quote_count")),
			BookmarkCount:   firstCount(get(l, "bookmark_count"), get(t, "bookmark_count"), get(pm, "bookmark_count")),
			ImpressionCount: firstCount(at(t, "views", "count"), get(pm, "impression_count")),
		},
		Entities:          entities(first(get(l, "entities"), get(t, "entities"))),
		ReferencedTweets:  reference(t, l),
		Lang:              firstStr(get(l, "lang"), get(t, "lang")),
		Source:            firstStr(get(t, "source"), get(l, "source")),
		PossiblySensitive: firstBool(get(l, "possibly_sensitive"), get(t, "possibly_sensitive")),
	}, nil
}

// entities поддерживает обе схемы: v1.1 (indices, text, user_mentions)
// и v2 (start/end, tag, mentions). Пустые списки — не nil.
func entities(v any) models.Entities {
	out := models.Entities{
		URLs:     []models.URLEntity{},
		Hashtags: []models.HashtagEntity{},
		Mentions: []models.MentionEntity{},
	}

	e, ok := asObject(v)
	if !ok {
		return out
	}

	urls, _ := arrayAt(e, "urls")
	for _, u := range urls {
		o, ok := asObject(u)
		if !ok {
			continue
		}
		start, end := span(o)
		out.URLs = append(out.URLs, models.URLEntity{
			Start:       start,
			End:         end,
			URL:         str(get(o, "url")),
			ExpandedURL: str(get(o, "expanded_url")),
			DisplayURL:  str(get(o, "display_url")),
		})
	}

	tags, _ := arrayAt(e, "hashtags")
	for _, h := range tags {
		o, ok := asObject(h)
		if !ok {
			continue
		}
		start, end := span(o)
		out.Hashtags = append(out.Hashtags, models.HashtagEntity{
			Start: start,
			End:   end,
			Tag:   firstStr(get(o, "tag"), get(o, "text")),
		})
	}

	mentions, ok := arrayAt(e, "mentions")
	if !ok {
		mentions, _ = arrayAt(e, "user_mentions")
	}
	for _, m := range mentions {
		o, ok := asObject(m)
		if !ok {
			continue
		}
		start, end := span(o)
		out.Mentions = append(out.Mentions, models.MentionEntity{
			Start:    start,
			End:      end,
			Username: firstStr(get(o, "username"), get(o, "screen_name")),
			ID:       firstStr(get(o, "id"), get(o, "id_str")),
		})
	}

	return out
}

// span — позиция сущности: start/end или indices[0..1].
func span(o object) (int, int) {
	if idx, ok := arrayAt(o, "indices"); ok && len(idx) == 2 {
		return integer(idx[0]), integer(idx[1])
	}

	return integer(get(o, "start")), integer(get(o, "end"))
}

// reference выбирает одну ссылку на другой пост.
// Приоритет: ретвит, цитата, ответ, затем v2-массив referenced_tweets.
func reference(t, l object) []models.Reference {
	if rt := get(l, "retweeted_status_result"); truthy(rt) {
		return []models.Reference{{
			Type: models.RefRetweeted,
			ID:   firstStr(at(unwrapResult(at(rt, "result")), "rest_id"), at(rt, "rest_id")),
		}}
	}

	if id := firstStr(get(l, "quoted_status_id_str"), at(unwrapResult(at(t, "quoted_status_result", "result")), "rest_id")); id != "" {
		return []models.Reference{{Type: models.RefQuoted, ID: id}}
	}

	if id := str(get(l, "in_reply_to_status_id_str")); id != "" {
		return []models.Reference{{Type: models.RefRepliedTo, ID: id}}
	}

	refs, _ := arrayAt(t, "referenced_tweets")
	for _, r := range refs {
		kind := models.ReferenceKind(str(at(r, "type")))
		switch kind {
		case models.RefRetweeted, models.RefQuoted, models.RefRepliedTo:
			return []models.Reference{{Type: kind, ID: str(at(r, "id"))}}
		}
	}

	return nil
}
