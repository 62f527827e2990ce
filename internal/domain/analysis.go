package domain

// MuseumMetrics aggregates audio-guide reaction signals for one museum.
type MuseumMetrics struct {
	Museum            string         `json:"museum"`
	Forum             string         `json:"forum"`
	TotalPosts        int            `json:"total_posts"`
	TotalReplies      int            `json:"total_replies"`
	PositiveReactions int            `json:"positive_reactions"`
	NegativeReactions int            `json:"negative_reactions"`
	NeutralReactions  int            `json:"neutral_reactions"`
	SentimentScore    float64        `json:"audio_guide_sentiment_score"`
	CommonThemes      []string       `json:"common_themes"`
	UserEngagement    map[string]int `json:"user_engagement"`
	TimeDistribution  map[string]int `json:"time_distribution"`
}

// EnhancedReply is a ReplyRecord annotated with sentiment fields.
type EnhancedReply struct {
	ReplyRecord
	AudioGuideMention bool    `json:"audio_guide_mention"`
	Sentiment         string  `json:"sentiment"`
	SentimentScore    float64 `json:"sentiment_score"`
}

// EnhancedPost is a PostDetail annotated with sentiment fields, the
// schema downstream dashboards consume.
type EnhancedPost struct {
	URL               string          `json:"url,omitempty"`
	Title             string          `json:"title,omitempty"`
	Content           string          `json:"content"`
	AudioGuideMention bool            `json:"audio_guide_mention"`
	Sentiment         string          `json:"sentiment"`
	SentimentScore    float64         `json:"sentiment_score"`
	Replies           []EnhancedReply `json:"replies"`
}

// EngagementEntry ranks one museum by post and reply volume.
type EngagementEntry struct {
	Museum          string `json:"museum"`
	Forum           string `json:"forum"`
	TotalPosts      int    `json:"total_posts"`
	TotalReplies    int    `json:"total_replies"`
	TotalEngagement int    `json:"total_engagement"`
}

// SentimentEntry ranks one museum by average sentiment score.
type SentimentEntry struct {
	Museum            string  `json:"museum"`
	Forum             string  `json:"forum"`
	SentimentScore    float64 `json:"sentiment_score"`
	PositiveReactions int     `json:"positive_reactions"`
	NegativeReactions int     `json:"negative_reactions"`
}

// ComparisonSummary totals the whole dataset.
type ComparisonSummary struct {
	TotalMuseums            int `json:"total_museums"`
	TotalPosts              int `json:"total_posts"`
	TotalReplies            int `json:"total_replies"`
	TotalAudioGuideMentions int `json:"total_audio_guide_mentions"`
}

// Comparison is the cross-museum comparison artifact.
type Comparison struct {
	Summary                ComparisonSummary `json:"summary"`
	TopMuseumsByEngagement []EngagementEntry `json:"top_museums_by_engagement"`
	TopMuseumsBySentiment  []SentimentEntry  `json:"top_museums_by_sentiment"`
	ForumDistribution      map[string]int    `json:"forum_distribution"`
	ThemeDistribution      map[string]int    `json:"theme_distribution"`
	TimeTrends             map[string]int    `json:"time_trends"`
}
