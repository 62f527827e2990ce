// Package analyze derives audio-guide reaction metrics from scraped
// post details. It is a downstream consumer of the scraper's JSON
// artifacts: everything here is in-memory data transformation over the
// PostDetail schema.
package analyze

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/minjipark/audioguide-scraper/internal/domain"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	unknownMuseum = "Unknown Museum"
	unknownForum  = "Unknown"

	topMuseums = 10
	topThemes  = 10
)

var (
	yearRe     = regexp.MustCompile(`\d{4}`)
	yearsAgoRe = regexp.MustCompile(`(\d+)\s+years? ago`)
)

// Analyzer groups posts by museum and scores audio-guide reactions.
type Analyzer struct {
	// ReferenceYear anchors relative "N years ago" timestamps.
	ReferenceYear int
	// ForumByURL resolves a post's forum from the listing artifact.
	// Posts that do not resolve fall back to "Unknown".
	ForumByURL map[string]string
}

func New() *Analyzer {
	return &Analyzer{ReferenceYear: time.Now().Year()}
}

// MentionsAudioGuide reports whether text contains any audio-guide term.
func MentionsAudioGuide(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range audioGuideTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Sentiment classifies text by comparing positive and negative keyword
// counts.
func Sentiment(text string) string {
	positive, negative := keywordCounts(text)
	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// SentimentScore returns the classification as +1/-1/0 normalized by the
// square root of the word count, so long texts do not dominate.
func SentimentScore(text string) float64 {
	positive, negative := keywordCounts(text)

	var base float64
	switch {
	case positive > negative:
		base = 1.0
	case negative > positive:
		base = -1.0
	}

	words := len(strings.Fields(text))
	if words == 0 {
		return base
	}
	return base / math.Sqrt(float64(words))
}

func keywordCounts(text string) (positive, negative int) {
	lower := strings.ToLower(text)
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	return positive, negative
}

// MuseumName extracts a canonical museum name from a post's title and
// content, falling back to "<prefix> Museum/Gallery/Palace/Castle" when
// only a generic site word appears.
func MuseumName(title, content string) string {
	text := strings.ToLower(title + " " + content)

	for _, m := range museumMappings {
		if strings.Contains(text, m.fragment) {
			return m.name
		}
	}

	lowerTitle := strings.ToLower(title)
	for _, site := range []string{"museum", "gallery", "palace", "castle"} {
		if !strings.Contains(lowerTitle, site) {
			continue
		}
		prefix := strings.TrimSpace(strings.SplitN(lowerTitle, site, 2)[0])
		if prefix != "" {
			return titleCase(prefix) + " " + titleCase(site)
		}
	}

	return unknownMuseum
}

// Themes collects theme labels triggered by text, one per rule at most.
func Themes(text string) []string {
	lower := strings.ToLower(text)
	var themes []string
	for _, rule := range themeRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				themes = append(themes, rule.theme)
				break
			}
		}
	}
	return themes
}

// CommonThemes returns the most frequent themes across all audio-guide
// mentions in posts, capped at ten. Ties break by first appearance.
func CommonThemes(posts []domain.PostDetail) []string {
	counts := map[string]int{}
	var order []string

	record := func(text string) {
		for _, theme := range Themes(text) {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}

	for _, post := range posts {
		if MentionsAudioGuide(post.Title) || MentionsAudioGuide(post.Content) {
			record(post.Title + " " + post.Content)
		}
		for _, reply := range post.Replies {
			if MentionsAudioGuide(reply.Content) {
				record(reply.Content)
			}
		}
	}

	firstSeen := make(map[string]int, len(order))
	for i, theme := range order {
		firstSeen[theme] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > topThemes {
		order = order[:topThemes]
	}
	return order
}

// UserEngagement counts contributions per reply author. Replies without
// an author count under "Unknown".
func UserEngagement(posts []domain.PostDetail) map[string]int {
	engagement := map[string]int{}
	for _, post := range posts {
		for _, reply := range post.Replies {
			author := reply.Author
			if author == "" {
				author = unknownForum
			}
			engagement[author]++
		}
	}
	return engagement
}

// TimeDistribution buckets reply timestamps by year. ISO datetimes yield
// their four-digit year directly; relative "N years ago" strings are
// anchored to ReferenceYear.
func (a *Analyzer) TimeDistribution(posts []domain.PostDetail) map[string]int {
	dist := map[string]int{}
	for _, post := range posts {
		for _, reply := range post.Replies {
			if reply.Time == "" {
				continue
			}
			if year := yearRe.FindString(reply.Time); year != "" {
				dist[year]++
				continue
			}
			if m := yearsAgoRe.FindStringSubmatch(reply.Time); m != nil {
				ago, _ := strconv.Atoi(m[1])
				dist[strconv.Itoa(a.ReferenceYear-ago)]++
			}
		}
	}
	return dist
}

// MuseumMetrics scores one museum's posts. Sentiment is counted only on
// texts that actually mention an audio guide.
func (a *Analyzer) MuseumMetrics(museum string, posts []domain.PostDetail) domain.MuseumMetrics {
	metrics := domain.MuseumMetrics{
		Museum:           museum,
		Forum:            a.forumFor(posts),
		TotalPosts:       len(posts),
		CommonThemes:     CommonThemes(posts),
		UserEngagement:   UserEngagement(posts),
		TimeDistribution: a.TimeDistribution(posts),
	}

	var totalScore float64
	var scored int

	count := func(text string) {
		switch Sentiment(text) {
		case SentimentPositive:
			metrics.PositiveReactions++
		case SentimentNegative:
			metrics.NegativeReactions++
		default:
			metrics.NeutralReactions++
		}
		totalScore += SentimentScore(text)
		scored++
	}

	for _, post := range posts {
		metrics.TotalReplies += len(post.Replies)
		if MentionsAudioGuide(post.Title) || MentionsAudioGuide(post.Content) {
			count(post.Title + " " + post.Content)
		}
		for _, reply := range post.Replies {
			if MentionsAudioGuide(reply.Content) {
				count(reply.Content)
			}
		}
	}

	if scored > 0 {
		metrics.SentimentScore = totalScore / float64(scored)
	}
	return metrics
}

// AnalyzeAll groups posts by detected museum and scores each group.
// Group order follows first appearance in the input.
func (a *Analyzer) AnalyzeAll(posts []domain.PostDetail) []domain.MuseumMetrics {
	groups := map[string][]domain.PostDetail{}
	var order []string

	for _, post := range posts {
		museum := MuseumName(post.Title, post.Content)
		if _, seen := groups[museum]; !seen {
			order = append(order, museum)
		}
		groups[museum] = append(groups[museum], post)
	}

	metrics := make([]domain.MuseumMetrics, 0, len(order))
	for _, museum := range order {
		metrics = append(metrics, a.MuseumMetrics(museum, groups[museum]))
	}
	return metrics
}

// EnhancedPosts annotates every post and reply with mention flags and
// sentiment fields, preserving the input order and shape.
func (a *Analyzer) EnhancedPosts(posts []domain.PostDetail) []domain.EnhancedPost {
	enhanced := make([]domain.EnhancedPost, 0, len(posts))

	for _, post := range posts {
		ep := domain.EnhancedPost{
			URL:       post.URL,
			Title:     post.Title,
			Content:   post.Content,
			Sentiment: SentimentNeutral,
			Replies:   make([]domain.EnhancedReply, 0, len(post.Replies)),
		}

		combined := post.Title + " " + post.Content
		if MentionsAudioGuide(combined) {
			ep.AudioGuideMention = true
			ep.Sentiment = Sentiment(combined)
			ep.SentimentScore = SentimentScore(combined)
		}

		for _, reply := range post.Replies {
			er := domain.EnhancedReply{ReplyRecord: reply, Sentiment: SentimentNeutral}
			if MentionsAudioGuide(reply.Content) {
				er.AudioGuideMention = true
				er.Sentiment = Sentiment(reply.Content)
				er.SentimentScore = SentimentScore(reply.Content)
			}
			ep.Replies = append(ep.Replies, er)
		}

		enhanced = append(enhanced, ep)
	}
	return enhanced
}

// BuildComparison assembles the cross-museum comparison artifact from
// per-museum metrics.
func BuildComparison(metrics []domain.MuseumMetrics) domain.Comparison {
	cmp := domain.Comparison{
		ForumDistribution: map[string]int{},
		ThemeDistribution: map[string]int{},
		TimeTrends:        map[string]int{},
	}

	cmp.Summary.TotalMuseums = len(metrics)
	for _, m := range metrics {
		cmp.Summary.TotalPosts += m.TotalPosts
		cmp.Summary.TotalReplies += m.TotalReplies
		cmp.Summary.TotalAudioGuideMentions += m.PositiveReactions + m.NegativeReactions + m.NeutralReactions

		cmp.ForumDistribution[m.Forum]++
		for _, theme := range m.CommonThemes {
			cmp.ThemeDistribution[theme]++
		}
		for year, count := range m.TimeDistribution {
			cmp.TimeTrends[year] += count
		}
	}

	byEngagement := append([]domain.MuseumMetrics(nil), metrics...)
	sort.SliceStable(byEngagement, func(i, j int) bool {
		return byEngagement[i].TotalPosts+byEngagement[i].TotalReplies >
			byEngagement[j].TotalPosts+byEngagement[j].TotalReplies
	})
	for _, m := range truncate(byEngagement, topMuseums) {
		cmp.TopMuseumsByEngagement = append(cmp.TopMuseumsByEngagement, domain.EngagementEntry{
			Museum:          m.Museum,
			Forum:           m.Forum,
			TotalPosts:      m.TotalPosts,
			TotalReplies:    m.TotalReplies,
			TotalEngagement: m.TotalPosts + m.TotalReplies,
		})
	}

	bySentiment := append([]domain.MuseumMetrics(nil), metrics...)
	sort.SliceStable(bySentiment, func(i, j int) bool {
		return bySentiment[i].SentimentScore > bySentiment[j].SentimentScore
	})
	for _, m := range truncate(bySentiment, topMuseums) {
		cmp.TopMuseumsBySentiment = append(cmp.TopMuseumsBySentiment, domain.SentimentEntry{
			Museum:            m.Museum,
			Forum:             m.Forum,
			SentimentScore:    m.SentimentScore,
			PositiveReactions: m.PositiveReactions,
			NegativeReactions: m.NegativeReactions,
		})
	}

	return cmp
}

func (a *Analyzer) forumFor(posts []domain.PostDetail) string {
	if len(posts) == 0 {
		return unknownForum
	}
	if forum, ok := a.ForumByURL[posts[0].URL]; ok && forum != "" {
		return forum
	}
	return unknownForum
}

func truncate(metrics []domain.MuseumMetrics, n int) []domain.MuseumMetrics {
	if len(metrics) > n {
		return metrics[:n]
	}
	return metrics
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
