package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/x-assistant/internal/models"
)

const timelinePage = `{
  "data": {"user": {"result": {"timeline": {"timeline": {"instructions": [
    {"type": "TimelineClearCache"},
    {"type": "TimelinePinEntry", "entry": {"entryId": "tweet-0"}},
    {"type": "TimelineAddEntries", "entries": [
      {"entryId": "tweet-1", "content": {"entryType": "TimelineTimelineItem", "itemContent": {"tweet_results": {"result": {
        "__typename": "Tweet",
        "rest_id": "1001",
        "source": "<a>Web App</a>",
        "views": {"count": "1000"},
        "legacy": {
          "full_text": "hello #go @jack https://t.co/x",
          "created_at": "Wed Oct 10 20:19:24 +0000 2018",
          "user_id_str": "12",
          "retweet_count": 3, "favorite_count": 10, "reply_count": 1, "quote_count": 2, "bookmark_count": 4,
          "lang": "en",
          "possibly_sensitive": false,
          "entities": {
            "hashtags": [{"text": "go", "indices": [6, 9]}],
            "user_mentions": [{"screen_name": "jack", "id_str": "12", "indices": [10, 15]}],
            "urls": [{"url": "https://t.co/x", "expanded_url": "https://go.dev", "display_url": "go.dev", "indices": [16, 30]}]
          }
        }
      }}}}},
      {"entryId": "tweet-2", "content": {"entryType": "TimelineTimelineItem", "itemContent": {"tweet_results": {"result": {
        "__typename": "TweetWithVisibilityResults",
        "tweet": {"rest_id": "1002", "legacy": {"full_text": "limited", "retweeted_status_result": {"result": {"rest_id": "900"}}}}
      }}}}},
      {"entryId": "tweet-3", "content": {"entryType": "TimelineTimelineItem", "itemContent": {"tweet_results": {}}}},
      {"entryId": "who-to-follow-1", "content": {"entryType": "TimelineTimelineModule"}},
      {"entryId": "cursor-top-1", "content": {"entryType": "TimelineTimelineCursor", "cursorType": "Top", "value": "TOP"}},
      {"entryId": "cursor-bottom-1", "content": {"entryType": "TimelineTimelineCursor", "cursorType": "Bottom", "value": "BOTTOM"}}
    ]}
  ]}}}}}
}`

func TestPosts_Timeline(t *testing.T) {
	t.Parallel()

	posts, skipped := Posts(mustDecode(t, timelinePage))
	require.Empty(t, skipped)
	require.Len(t, posts, 2)

	p := posts[0]
	require.Equal(t, "1001", p.ID)
	require.Equal(t, "hello #go @jack https://t.co/x", p.Text)
	require.Equal(t, "Wed Oct 10 20:19:24 +0000 2018", p.CreatedAt)
	require.Equal(t, "12", p.AuthorID)
	require.Equal(t, models.PostMetrics{
		RetweetCount: 3, LikeCount: 10, ReplyCount: 1, QuoteCount: 2, BookmarkCount: 4, ImpressionCount: 1000,
	}, p.PublicMetrics)
	require.Equal(t, "en", p.Lang)
	require.Equal(t, "<a>Web App</a>", p.Source)
	require.Equal(t, []models.HashtagEntity{{Start: 6, End: 9, Tag: "go"}}, p.Entities.Hashtags)
	require.Equal(t, []models.MentionEntity{{Start: 10, End: 15, Username: "jack", ID: "12"}}, p.Entities.Mentions)
	require.Equal(t, []models.URLEntity{{Start: 16, End: 30, URL: "https://t.co/x", ExpandedURL: "https://go.dev", DisplayURL: "go.dev"}}, p.Entities.URLs)
	require.Empty(t, p.ReferencedTweets)

	rt := posts[1]
	require.Equal(t, "1002", rt.ID)
	require.Equal(t, "limited", rt.Text)
	require.Equal(t, []models.Reference{{Type: models.RefRetweeted, ID: "900"}}, rt.ReferencedTweets)
}

func TestPosts_TimelineV2(t *testing.T) {
	t.Parallel()

	raw := `{"data":{"user":{"result":{"timeline_v2":{"timeline":{"instructions":[
	  {"type":"TimelineAddEntries","entries":[
	    {"content":{"entryType":"TimelineTimelineItem","itemContent":{"tweet_results":{"result":{"rest_id":"5","legacy":{"full_text":"v2"}}}}}}
	  ]}
	]}}}}}}`

	posts, _ := Posts(mustDecode(t, raw))
	require.Len(t, posts, 1)
	require.Equal(t, "v2", posts[0].Text)
}

func TestPosts_FlatShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		ids  []string
	}{
		{"data.tweets", `{"data":{"tweets":[{"id_str":"1","text":"a"},{"id":"2","text":"b"}]}}`, []string{"1", "2"}},
		{"tweets", `{"tweets":[{"id":3,"full_text":"c"}]}`, []string{"3"}},
		{"data_array", `{"data":[{"id":"4","text":"d"}]}`, []string{"4"}},
		{"priority_data.tweets_over_tweets", `{"data":{"tweets":[{"id":"5"}]},"tweets":[{"id":"6"}]}`, []string{"5"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posts, skipped := Posts(mustDecode(t, tt.raw))
			require.Empty(t, skipped)

			ids := make([]string, 0, len(posts))
			for _, p := range posts {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tt.ids, ids)
		})
	}
}

// TestPosts_NoMatchingEntries_EmptyList — ни одна форма не дала записей: пустой список.
func TestPosts_NoMatchingEntries_EmptyList(t *testing.T) {
	t.Parallel()

	raws := []string{
		`{}`,
		`null`,
		`"text"`,
		`{"data":{"user":{"result":{"timeline":{"timeline":{"instructions":[]}}}}}}`,
		`{"data":{"user":{"result":{"timeline":{"timeline":{"instructions":[{"type":"TimelineAddEntries","entries":[]}]}}}}}}`,
		`{"data":{"user":{"result":{"timeline":{"timeline":{"instructions":[{"type":"TimelineAddEntries","entries":[{"content":{"entryType":"TimelineTimelineCursor","cursorType":"Bottom","value":"x"}}]}]}}}}}}`,
		`{"data":{"tweets":[]}}`,
		`{"tweets":[]}`,
		`{"data":[]}`,
		`{"data":{"user":{"result":{}}}}`,
	}

	for _, raw := range raws {
		var posts []models.Post
		require.NotPanics(t, func() { posts, _ = Posts(mustDecode(t, raw)) }, raw)
		require.NotNil(t, posts, raw)
		require.Empty(t, posts, raw)
	}
}

// TestPosts_BadItemIsSkipped — один битый элемент не портит страницу.
func TestPosts_BadItemIsSkipped(t *testing.T) {
	t.Parallel()

	raw := `{"tweets":[{"id":"1","text":"ok"}, "garbage", null, 42, {"text":"no id"}]}`

	posts, skipped := Posts(mustDecode(t, raw))
	require.Len(t, posts, 2)
	require.Equal(t, "1", posts[0].ID)
	require.Equal(t, "temp_4", posts[1].ID)
	require.Equal(t, "no id", posts[1].Text)

	require.Len(t, skipped, 3)
	require.Equal(t, 1, skipped[0].Index)
	require.Equal(t, 2, skipped[1].Index)
	require.Equal(t, 3, skipped[2].Index)
}

func TestPosts_DefaultsAndV2Entities(t *testing.T) {
	t.Parallel()

	raw := `{"data":[{"id":"7","text":"t","author_id":"8","possibly_sensitive":true,
	  "public_metrics":{"retweet_count":1,"like_count":2,"reply_count":3,"quote_count":4,"bookmark_count":5,"impression_count":6},
	  "entities":{"hashtags":[{"start":0,"end":3,"tag":"go"}],"mentions":[{"start":4,"end":9,"username":"jack","id":"12"}]},
	  "referenced_tweets":[{"type":"quoted","id":"99"}]}]}`

	posts, _ := Posts(mustDecode(t, raw))
	require.Len(t, posts, 1)

	p := posts[0]
	require.Equal(t, "8", p.AuthorID)
	require.True(t, p.PossiblySensitive)
	require.Equal(t, models.PostMetrics{RetweetCount: 1, LikeCount: 2, ReplyCount: 3, QuoteCount: 4, BookmarkCount: 5, ImpressionCount: 6}, p.PublicMetrics)
	require.Equal(t, []models.HashtagEntity{{Start: 0, End: 3, Tag: "go"}}, p.Entities.Hashtags)
	require.Equal(t, []models.MentionEntity{{Start: 4, End: 9, Username: "jack", ID: "12"}}, p.Entities.Mentions)
	require.NotNil(t, p.Entities.URLs)
	require.Empty(t, p.Entities.URLs)
	require.Equal(t, []models.Reference{{Type: models.RefQuoted, ID: "99"}}, p.ReferencedTweets)
}

func TestPosts_ReferencePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []models.Reference
	}{
		{"quoted", `{"tweets":[{"id":"1","legacy":{"quoted_status_id_str":"50","in_reply_to_status_id_str":"60"}}]}`, []models.Reference{{Type: models.RefQuoted, ID: "50"}}},
		{"reply", `{"tweets":[{"id":"1","legacy":{"in_reply_to_status_id_str":"60"}}]}`, []models.Reference{{Type: models.RefRepliedTo, ID: "60"}}},
		{"none", `{"tweets":[{"id":"1","legacy":{}}]}`, nil},
		{"unknown_v2_kind", `{"tweets":[{"id":"1","referenced_tweets":[{"type":"mystery","id":"1"}]}]}`, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posts, _ := Posts(mustDecode(t, tt.raw))
			require.Len(t, posts, 1)
			require.Equal(t, tt.want, posts[0].ReferencedTweets)
		})
	}
}
