package models

// Профиль аккаунта в нормализованном виде.
// Все поля опциональны; отсутствующие значения остаются нулевыми.
type UserProfile struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Username         string      `json:"username"` // либо пусто, либо ^[A-Za-z0-9_]{1,15}$
	Description      string      `json:"description,omitempty"`
	ProfileImageURL  string      `json:"profile_image_url,omitempty"`
	ProfileBannerURL string      `json:"profile_banner_url,omitempty"`
	Protected        bool        `json:"protected"`
	Verified         bool        `json:"verified"`
	PublicMetrics    UserMetrics `json:"public_metrics"`
	CreatedAt        string      `json:"created_at,omitempty"`
	Location         string      `json:"location,omitempty"`
	URL              string      `json:"url,omitempty"`
	PinnedTweetID    string      `json:"pinned_tweet_id,omitempty"`
}

type UserMetrics struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	TweetCount     int64 `json:"tweet_count"`
	ListedCount    int64 `json:"listed_count"`
	LikeCount      int64 `json:"like_count"`
}

// Пост в нормализованном виде.
type Post struct {
	ID                string      `json:"id"`
	Text              string      `json:"text"`
	CreatedAt         string      `json:"created_at"`
	AuthorID          string      `json:"author_id,omitempty"`
	PublicMetrics     PostMetrics `json:"public_metrics"`
	Entities          Entities    `json:"entities"`
	ReferencedTweets  []Reference `json:"referenced_tweets,omitempty"` // не больше одного элемента
	Lang              string      `json:"lang,omitempty"`
	Source            string      `json:"source,omitempty"`
	PossiblySensitive bool        `json:"possibly_sensitive"`
}

// Счётчики поста; все неотрицательные.
type PostMetrics struct {
	RetweetCount    int64 `json:"retweet_count"`
	LikeCount       int64 `json:"like_count"`
	ReplyCount      int64 `json:"reply_count"`
	QuoteCount      int64 `json:"quote_count"`
	BookmarkCount   int64 `json:"bookmark_count"`
	ImpressionCount int64 `json:"impression_count"`
}

type Entities struct {
	URLs     []URLEntity     `json:"urls"`
	Hashtags []HashtagEntity `json:"hashtags"`
	Mentions []MentionEntity `json:"mentions"`
}

type URLEntity struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
	DisplayURL  string `json:"display_url"`
}

type HashtagEntity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Tag   string `json:"tag"`
}

type MentionEntity struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Username string `json:"username"`
	ID       string `json:"id"`
}

type ReferenceKind string

const (
	RefRetweeted ReferenceKind = "retweeted"
	RefQuoted    ReferenceKind = "quoted"
	RefRepliedTo ReferenceKind = "replied_to"
)

// Ссылка на другой пост.
type Reference struct {
	Type ReferenceKind `json:"type"`
	ID   string        `json:"id"`
}

// Страница постов с курсором на следующую.
// User может отсутствовать: ошибка профиля не мешает отдать посты.
type Timeline struct {
	Tweets     []Post       `json:"tweets"`
	User       *UserProfile `json:"user"`
	NextCursor *string      `json:"nextCursor"`
	HasMore    bool         `json:"hasMore"`
}
