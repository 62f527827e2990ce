// Package reactions loads hand-written audio-guide reaction digests
// from markdown files so the dashboard can show them next to the
// computed metrics. Files are optional; a missing file just means no
// digest for that museum.
package reactions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Summary is one museum's reaction digest.
type Summary struct {
	Museum         string   `json:"museum"`
	OverallSummary string   `json:"overall_summary"`
	PositivePoints []string `json:"positive_points"`
	NegativePoints []string `json:"negative_points"`
	Recommendation string   `json:"recommendation"`
	RawContent     string   `json:"raw_content"`
}

// museumFiles maps file slugs to canonical museum names. Digest files
// are named {slug}_audio_guide_reactions.md.
var museumFiles = []struct {
	slug string
	name string
}{
	{"british_museum", "British Museum"},
	{"louvre", "Louvre Museum"},
	{"prado", "Museo del Prado"},
	{"tate_modern", "Tate Modern"},
	{"uffizi", "Uffizi Gallery"},
}

var (
	summaryRe = regexp.MustCompile(`(?s)## Overall Summary\s*\n\s*(.*?)(?:\n##|\n\*\*|$)`)

	// Both heading variants the hand-written files use.
	positiveRes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\*\*Positive:\*\*\s*\n(.*?)(?:\n\*\*Negative|\n\*\*General|\n\*\*Recommendation|$)`),
		regexp.MustCompile(`(?s)\*\*Positive \(Official Guide\):\*\*\s*\n(.*?)(?:\n\*\*Negative|\n\*\*General|\n\*\*Recommendation|$)`),
	}
	negativeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)\*\*Negative:\*\*\s*\n(.*?)(?:\n\*\*General|\n\*\*Recommendation|$)`),
		regexp.MustCompile(`(?s)\*\*Negative \(Rick Steves Guide\):\*\*\s*\n(.*?)(?:\n\*\*General|\n\*\*Recommendation|$)`),
	}

	recommendationRe = regexp.MustCompile(`\*\*Recommendation:\*\*\s*(.*)`)
)

// Loader holds parsed digests keyed by museum name.
type Loader struct {
	byMuseum map[string]Summary
}

// Load reads every known digest file under dir. Missing files are
// skipped; an unreadable file fails the load.
func Load(dir string) (*Loader, error) {
	l := &Loader{byMuseum: make(map[string]Summary, len(museumFiles))}

	for _, mf := range museumFiles {
		path := filepath.Join(dir, mf.slug+"_audio_guide_reactions.md")
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read reactions for %s: %w", mf.name, err)
		}
		l.byMuseum[mf.name] = Parse(string(content), mf.name)
	}
	return l, nil
}

// Parse extracts the structured digest from markdown content.
func Parse(content, museum string) Summary {
	s := Summary{Museum: museum, RawContent: content}

	if m := summaryRe.FindStringSubmatch(content); m != nil {
		s.OverallSummary = strings.TrimSpace(m[1])
	}

	for _, re := range positiveRes {
		if m := re.FindStringSubmatch(content); m != nil {
			s.PositivePoints = append(s.PositivePoints, bullets(m[1])...)
		}
	}
	for _, re := range negativeRes {
		if m := re.FindStringSubmatch(content); m != nil {
			s.NegativePoints = append(s.NegativePoints, bullets(m[1])...)
		}
	}

	if m := recommendationRe.FindStringSubmatch(content); m != nil {
		s.Recommendation = strings.TrimSpace(m[1])
	}
	return s
}

// bullets splits a markdown section into its "* " items, folding
// continuation lines into the current item.
func bullets(section string) []string {
	var points []string
	var current string

	flush := func() {
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			points = append(points, trimmed)
		}
		current = ""
	}

	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "* "):
			flush()
			current = strings.TrimPrefix(trimmed, "* ")
		case trimmed == "":
			flush()
		case current != "":
			current += " " + trimmed
		}
	}
	flush()
	return points
}

// ForMuseum finds the digest for a museum, tolerating partial name
// matches in either direction.
func (l *Loader) ForMuseum(museum string) (Summary, bool) {
	if s, ok := l.byMuseum[museum]; ok {
		return s, true
	}

	lower := strings.ToLower(museum)
	for name, s := range l.byMuseum {
		lowerName := strings.ToLower(name)
		if strings.Contains(lower, "prado") && strings.Contains(lowerName, "prado") {
			return s, true
		}
		if strings.Contains(lowerName, lower) || strings.Contains(lower, lowerName) {
			return s, true
		}
	}
	return Summary{}, false
}

// Museums lists the museums that have a digest, in file order.
func (l *Loader) Museums() []string {
	var names []string
	for _, mf := range museumFiles {
		if _, ok := l.byMuseum[mf.name]; ok {
			names = append(names, mf.name)
		}
	}
	return names
}
