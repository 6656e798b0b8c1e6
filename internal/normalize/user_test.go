package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/x-assistant/internal/models"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

const graphQLUser = `{
  "data": {"user": {"result": {
    "__typename": "User",
    "rest_id": "44196397",
    "name": "Outer Name",
    "is_blue_verified": true,
    "legacy": {
      "name": "Legacy Name",
      "screen_name": "elonmusk",
      "description": "bio here",
      "profile_image_url_https": "https://pbs.twimg.com/a.jpg",
      "profile_banner_url": "https://pbs.twimg.com/b.jpg",
      "followers_count": 1000,
      "friends_count": 50,
      "statuses_count": 3000,
      "listed_count": 7,
      "favourites_count": 12,
      "created_at": "Tue Jun 02 20:12:29 +0000 2009",
      "location": "Mars",
      "url": "https://t.co/x",
      "pinned_tweet_ids_str": ["1790000000000000000"]
    }
  }}}
}`

func TestUser_GraphQLResult(t *testing.T) {
	t.Parallel()

	p := User(mustDecode(t, graphQLUser))

	require.Equal(t, "44196397", p.ID)
	require.Equal(t, "Legacy Name", p.Name, "legacy должен побеждать внешний объект")
	require.Equal(t, "elonmusk", p.Username)
	require.Equal(t, "bio here", p.Description)
	require.Equal(t, "https://pbs.twimg.com/a.jpg", p.ProfileImageURL)
	require.Equal(t, "https://pbs.twimg.com/b.jpg", p.ProfileBannerURL)
	require.True(t, p.Verified)
	require.False(t, p.Protected)
	require.Equal(t, models.UserMetrics{
		FollowersCount: 1000, FollowingCount: 50, TweetCount: 3000, ListedCount: 7, LikeCount: 12,
	}, p.PublicMetrics)
	require.Equal(t, "Tue Jun 02 20:12:29 +0000 2009", p.CreatedAt)
	require.Equal(t, "Mars", p.Location)
	require.Equal(t, "https://t.co/x", p.URL)
	require.Equal(t, "1790000000000000000", p.PinnedTweetID)
}

// TestUser_LegacyNameWinsOverTopLevel — на всех формах legacy.name приоритетнее name.
func TestUser_LegacyNameWinsOverTopLevel(t *testing.T) {
	t.Parallel()

	shapes := map[string]string{
		"data.user.result": `{"data":{"user":{"result":{"name":"top","legacy":{"name":"legacy"}}}}}`,
		"data.user":        `{"data":{"user":{"name":"top","legacy":{"name":"legacy"}}}}`,
		"data":             `{"data":{"name":"top","legacy":{"name":"legacy"}}}`,
		"user":             `{"user":{"name":"top","legacy":{"name":"legacy"}}}`,
		"root":             `{"name":"top","legacy":{"name":"legacy"}}`,
	}

	for name, raw := range shapes {
		require.Equal(t, "legacy", User(mustDecode(t, raw)).Name, name)
	}
}

func TestUser_FlatShapesAndAlternateNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want models.UserProfile
	}{
		{
			name: "data_user_flat",
			raw:  `{"data":{"user":{"id_str":"1","display_name":"Disp","username":"jack","bio":"b","followers":"1,234","following_count":3,"tweets":9,"likes":4,"avatar":"a.png","banner":"b.png","is_verified":true}}}`,
			want: models.UserProfile{
				ID: "1", Name: "Disp", Username: "jack", Description: "b",
				ProfileImageURL: "a.png", ProfileBannerURL: "b.png", Verified: true,
				PublicMetrics: models.UserMetrics{FollowersCount: 1234, FollowingCount: 3, TweetCount: 9, LikeCount: 4},
			},
		},
		{
			name: "user_key",
			raw:  `{"user":{"id":42,"name":"N","screen_name":"@abc","protected":true}}`,
			want: models.UserProfile{ID: "42", Name: "N", Username: "abc", Protected: true},
		},
		{
			name: "root_v2_public_metrics",
			raw:  `{"id":"7","name":"V2","username":"v2user","public_metrics":{"followers_count":10,"following_count":2,"tweet_count":5,"listed_count":1}}`,
			want: models.UserProfile{
				ID: "7", Name: "V2", Username: "v2user",
				PublicMetrics: models.UserMetrics{FollowersCount: 10, FollowingCount: 2, TweetCount: 5, ListedCount: 1},
			},
		},
		{
			name: "core_block",
			raw:  `{"data":{"user":{"result":{"rest_id":"9","core":{"name":"Core","screen_name":"core_h"},"legacy":{}}}}}`,
			want: models.UserProfile{ID: "9", Name: "Core", Username: "core_h"},
		},
		{
			name: "result_without_legacy_uses_outer",
			raw:  `{"data":{"user":{"result":{"rest_id":"5","name":"Outer","screen_name":"outer"}}}}`,
			want: models.UserProfile{ID: "5", Name: "Outer", Username: "outer"},
		},
		{
			name: "invalid_handle_dropped",
			raw:  `{"user":{"name":"N","screen_name":"not a handle!"}}`,
			want: models.UserProfile{Name: "N"},
		},
		{
			name: "zero_falls_through",
			raw:  `{"user":{"legacy":{"followers_count":0},"followers_count":77}}`,
			want: models.UserProfile{PublicMetrics: models.UserMetrics{FollowersCount: 77}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, User(mustDecode(t, tt.raw)))
		})
	}
}

// TestUser_NeverFailsOnGarbage — любая форма даёт корректный (пустой) профиль.
func TestUser_NeverFailsOnGarbage(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{nil, "string", 42.0, []any{1, 2}, map[string]any{}, map[string]any{"data": []any{}}} {
		require.NotPanics(t, func() { _ = User(raw) })
	}
	require.Equal(t, models.UserProfile{}, User(nil))
	require.Equal(t, models.UserProfile{}, User("oops"))
}

func TestUser_NegativeCountsClampToZero(t *testing.T) {
	t.Parallel()

	p := User(mustDecode(t, `{"followers_count":-5,"friends_count":"-1"}`))
	require.Zero(t, p.PublicMetrics.FollowersCount)
	require.Zero(t, p.PublicMetrics.FollowingCount)
}
