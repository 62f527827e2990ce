package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/audioguide-scraper/internal/analyze"
	"github.com/minjipark/audioguide-scraper/internal/domain"
)

func testPosts() []domain.PostDetail {
	return []domain.PostDetail{
		{
			URL:     "https://community.example.com/uffizi",
			Title:   "Uffizi audio guide",
			Content: "The audio guide was excellent and helpful.",
			Replies: []domain.ReplyRecord{
				{Author: "anna", Content: "It was a terrible waste.", Time: "2024-05-01T10:30:00Z"},
				{Content: "lovely paintings"},
			},
		},
		{
			URL:     "https://community.example.com/louvre",
			Title:   "Louvre crowds",
			Content: "Skip the audio tour.",
			Replies: []domain.ReplyRecord{},
		},
	}
}

func TestMentionsAudioGuide(t *testing.T) {
	t.Parallel()

	assert.True(t, analyze.MentionsAudioGuide("the audio guide was useful"))
	assert.True(t, analyze.MentionsAudioGuide("we rented an AudioGuide device"))
	assert.False(t, analyze.MentionsAudioGuide("lovely paintings"))
	assert.False(t, analyze.MentionsAudioGuide(""))
}

func TestSentiment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, analyze.SentimentPositive, analyze.Sentiment("excellent and helpful"))
	assert.Equal(t, analyze.SentimentNegative, analyze.Sentiment("terrible waste"))
	assert.Equal(t, analyze.SentimentNeutral, analyze.Sentiment("it was fine"))
	assert.Equal(t, analyze.SentimentNeutral, analyze.Sentiment(""))
}

func TestSentimentScore(t *testing.T) {
	t.Parallel()

	// One positive word, one word total.
	assert.InDelta(t, 1.0, analyze.SentimentScore("excellent"), 1e-9)
	assert.InDelta(t, -1.0, analyze.SentimentScore("terrible"), 1e-9)

	// Four words: base 1.0 normalized by sqrt(4).
	assert.InDelta(t, 0.5, analyze.SentimentScore("excellent excellent excellent excellent"), 1e-9)

	assert.Zero(t, analyze.SentimentScore(""))
}

func TestMuseumName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Uffizi Gallery", analyze.MuseumName("Uffizi audio guide", ""))
	assert.Equal(t, "Louvre Museum", analyze.MuseumName("Visiting the Louvre", ""))
	assert.Equal(t, "Museo del Prado", analyze.MuseumName("", "we loved the prado"))

	// Generic site word with a prefix.
	assert.Equal(t, "Some City Museum", analyze.MuseumName("Some city museum tips", ""))

	assert.Equal(t, "Unknown Museum", analyze.MuseumName("Random topic", ""))
}

func TestThemes(t *testing.T) {
	t.Parallel()

	themes := analyze.Themes("the app was free to download")
	assert.Contains(t, themes, "mobile app")
	assert.Contains(t, themes, "free service")
	assert.Contains(t, themes, "digital download")
	assert.NotContains(t, themes, "physical device")
}

func TestUserEngagement(t *testing.T) {
	t.Parallel()

	engagement := analyze.UserEngagement(testPosts())
	assert.Equal(t, 1, engagement["anna"])
	assert.Equal(t, 1, engagement["Unknown"])
}

func TestTimeDistribution(t *testing.T) {
	t.Parallel()

	a := analyze.New()
	a.ReferenceYear = 2025

	posts := []domain.PostDetail{{
		Replies: []domain.ReplyRecord{
			{Time: "2024-05-01T10:30:00Z"},
			{Time: "2024-07-12T08:00:00Z"},
			{Time: "3 years ago"},
			{Time: ""},
		},
	}}

	dist := a.TimeDistribution(posts)
	assert.Equal(t, map[string]int{"2024": 2, "2022": 1}, dist)
}

func TestAnalyzeAll(t *testing.T) {
	t.Parallel()

	a := analyze.New()
	a.ForumByURL = map[string]string{
		"https://community.example.com/uffizi": "Italy",
	}

	metrics := a.AnalyzeAll(testPosts())
	require.Len(t, metrics, 2)

	uffizi := metrics[0]
	assert.Equal(t, "Uffizi Gallery", uffizi.Museum)
	assert.Equal(t, "Italy", uffizi.Forum)
	assert.Equal(t, 1, uffizi.TotalPosts)
	assert.Equal(t, 2, uffizi.TotalReplies)
	assert.Equal(t, 1, uffizi.PositiveReactions)
	assert.Zero(t, uffizi.NegativeReactions)
	assert.Positive(t, uffizi.SentimentScore)

	louvre := metrics[1]
	assert.Equal(t, "Louvre Museum", louvre.Museum)
	assert.Equal(t, "Unknown", louvre.Forum)
	assert.Equal(t, 1, louvre.NeutralReactions)
	assert.Zero(t, louvre.TotalReplies)
}

func TestEnhancedPosts(t *testing.T) {
	t.Parallel()

	a := analyze.New()
	enhanced := a.EnhancedPosts(testPosts())
	require.Len(t, enhanced, 2)

	first := enhanced[0]
	assert.True(t, first.AudioGuideMention)
	assert.Equal(t, analyze.SentimentPositive, first.Sentiment)
	assert.Positive(t, first.SentimentScore)

	require.Len(t, first.Replies, 2)
	// "terrible waste" does not mention an audio guide, so it stays
	// unflagged and neutral.
	assert.False(t, first.Replies[0].AudioGuideMention)
	assert.Equal(t, analyze.SentimentNeutral, first.Replies[0].Sentiment)
	assert.Zero(t, first.Replies[0].SentimentScore)
}

func TestBuildComparison(t *testing.T) {
	t.Parallel()

	a := analyze.New()
	metrics := a.AnalyzeAll(testPosts())

	cmp := analyze.BuildComparison(metrics)

	assert.Equal(t, 2, cmp.Summary.TotalMuseums)
	assert.Equal(t, 2, cmp.Summary.TotalPosts)
	assert.Equal(t, 2, cmp.Summary.TotalReplies)
	assert.Equal(t, 2, cmp.Summary.TotalAudioGuideMentions)

	require.NotEmpty(t, cmp.TopMuseumsByEngagement)
	assert.Equal(t, "Uffizi Gallery", cmp.TopMuseumsByEngagement[0].Museum)
	assert.Equal(t, 3, cmp.TopMuseumsByEngagement[0].TotalEngagement)

	require.NotEmpty(t, cmp.TopMuseumsBySentiment)
	assert.Equal(t, "Uffizi Gallery", cmp.TopMuseumsBySentiment[0].Museum)
}

func TestCommonThemes_CapAndOrder(t *testing.T) {
	t.Parallel()

	posts := []domain.PostDetail{
		{Title: "audio guide", Content: "the app was free, download it in advance"},
		{Title: "audio guide", Content: "get the app"},
	}

	themes := analyze.CommonThemes(posts)
	require.NotEmpty(t, themes)
	// "mobile app" fires for both posts, everything else at most once.
	assert.Equal(t, "mobile app", themes[0])
	assert.LessOrEqual(t, len(themes), 10)
}
